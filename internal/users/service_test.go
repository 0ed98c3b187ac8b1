package users

import (
	"context"
	"errors"
	"testing"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user    *models.User
	users   []models.User
	err     error
	updated *models.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.updated = user
	return nil
}

func baseUser() *models.User {
	return &models.User{
		ID:          uuid.New(),
		Email:       "vendor@example.com",
		DisplayName: "Vendor One",
		Role:        enums.RoleVendor,
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := NewService(&stubUserRepo{err: gorm.ErrRecordNotFound})
	_, err := svc.GetProfile(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{user: user}
	svc, _ := NewService(repo)

	name := "Renamed"
	dto, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{DisplayName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if dto.DisplayName != "Renamed" {
		t.Fatalf("display name not applied: %q", dto.DisplayName)
	}
	if dto.Phone != nil {
		t.Fatalf("phone must stay untouched, got %v", dto.Phone)
	}
	if repo.updated == nil {
		t.Fatal("expected repo update call")
	}
}

func TestListMapsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubUserRepo{err: errors.New("boom")})
	_, err := svc.List(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}
