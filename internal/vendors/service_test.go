package vendors

import (
	"context"
	"errors"
	"testing"

	"github.com/trosone/tros-backend/internal/users"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubVendorRepo struct {
	vendor  *models.Vendor
	vendors []models.Vendor
	err     error
	deleted []uuid.UUID
	linked  map[uuid.UUID]uuid.UUID
}

func (s *stubVendorRepo) Create(ctx context.Context, vendor *models.Vendor) error { return s.err }

func (s *stubVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vendor, nil
}

func (s *stubVendorRepo) List(ctx context.Context) ([]models.Vendor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vendors, nil
}

func (s *stubVendorRepo) Update(ctx context.Context, vendor *models.Vendor) error { return s.err }

func (s *stubVendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubVendorRepo) SetLinkedUser(ctx context.Context, id, userID uuid.UUID) error {
	if s.linked == nil {
		s.linked = map[uuid.UUID]uuid.UUID{}
	}
	s.linked[id] = userID
	return nil
}

type stubShopNamer struct {
	names []string
	err   error
}

func (s stubShopNamer) NamesByAssignedVendor(ctx context.Context, vendorID uuid.UUID) ([]string, error) {
	return s.names, s.err
}

type stubUserCreator struct {
	created *models.User
	err     error
}

func (s *stubUserCreator) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = dto.ToModel()
	return s.created, nil
}

func passwordCfg() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func baseVendor() *models.Vendor {
	return &models.Vendor{ID: uuid.New(), Name: "Acme Foods", Email: "acme@vendors.com", Status: enums.VendorStatusActive}
}

func TestCreateRequiresNameAndEmail(t *testing.T) {
	svc, _ := NewService(&stubVendorRepo{}, stubShopNamer{}, &stubUserCreator{}, passwordCfg())

	_, _, err := svc.Create(context.Background(), CreateVendorInput{Email: "a@b.c"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, _, err = svc.Create(context.Background(), CreateVendorInput{Name: "Acme", Email: "nope"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateWithLinkedLogin(t *testing.T) {
	repo := &stubVendorRepo{}
	creator := &stubUserCreator{}
	svc, _ := NewService(repo, stubShopNamer{}, creator, passwordCfg())

	dto, tempPassword, err := svc.Create(context.Background(), CreateVendorInput{
		Name:        "Acme Foods",
		Email:       "acme@vendors.com",
		CreateLogin: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tempPassword == "" {
		t.Fatal("expected a temp password")
	}
	if creator.created == nil || creator.created.Role != enums.RoleVendor {
		t.Fatalf("linked login must be a Vendor, got %+v", creator.created)
	}
	if dto.LinkedUserID == nil || *dto.LinkedUserID != creator.created.ID {
		t.Fatal("vendor must record the linked user id")
	}
	if repo.linked[dto.ID] != creator.created.ID {
		t.Fatal("expected SetLinkedUser write")
	}
}

func TestGetByIDIncludesComputedAssignments(t *testing.T) {
	vendor := baseVendor()
	svc, _ := NewService(&stubVendorRepo{vendor: vendor}, stubShopNamer{names: []string{"Downtown", "Airport"}}, &stubUserCreator{}, passwordCfg())

	dto, err := svc.GetByID(context.Background(), vendor.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(dto.AssignedShops) != 2 || dto.AssignedShops[0] != "Downtown" {
		t.Fatalf("unexpected assignments %v", dto.AssignedShops)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := NewService(&stubVendorRepo{err: gorm.ErrRecordNotFound}, stubShopNamer{}, &stubUserCreator{}, passwordCfg())
	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	vendor := baseVendor()
	svc, _ := NewService(&stubVendorRepo{vendor: vendor}, stubShopNamer{}, &stubUserCreator{}, passwordCfg())

	bad := enums.VendorStatus("Dormant")
	_, err := svc.Update(context.Background(), vendor.ID, UpdateVendorInput{Status: &bad})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteLeavesReferencesDangling(t *testing.T) {
	vendor := baseVendor()
	repo := &stubVendorRepo{vendor: vendor}
	svc, _ := NewService(repo, stubShopNamer{}, &stubUserCreator{}, passwordCfg())

	if err := svc.Delete(context.Background(), vendor.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != vendor.ID {
		t.Fatalf("unexpected delete calls %v", repo.deleted)
	}
}

func TestListMapsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubVendorRepo{err: errors.New("boom")}, stubShopNamer{}, &stubUserCreator{}, passwordCfg())
	_, err := svc.List(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
