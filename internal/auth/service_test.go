package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/trosone/tros-backend/internal/users"
	"github.com/trosone/tros-backend/pkg/auth/session"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail     map[string]*models.User
	findErr     error
	createErr   error
	roleWrites  map[string]enums.Role
	loginWrites int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail:    map[string]*models.User{},
		roleWrites: map[string]enums.Role{},
	}
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, exists := s.byEmail[dto.Email]; exists {
		return nil, errors.New(`duplicate key value violates unique constraint "users_email_key"`)
	}
	user := dto.ToModel()
	s.byEmail[dto.Email] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.loginWrites++
	return nil
}

func (s *stubUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role enums.Role) error {
	for email, user := range s.byEmail {
		if user.ID == id {
			user.Role = role
			s.roleWrites[email] = role
		}
	}
	return nil
}

type stubSessions struct {
	generateErr error
	revoked     []string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if provided != "refresh-"+oldAccessID {
		return "", "", session.ErrInvalidRefreshToken
	}
	next := session.NewAccessID()
	return next, "refresh-" + next, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
	svc, err := NewService(repo, &stubSessions{}, testJWT(), testPassword(), logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "trosone", ExpirationMinutes: 15}
}

func testPassword() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role enums.Role) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPassword())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: role}
	repo.byEmail[email] = user
	return user
}

func TestRegisterAssignsRoleFromEmailHeuristic(t *testing.T) {
	repo := newStubUserRepo()
	svc := testService(t, repo)

	sess, err := svc.Register(context.Background(), RegisterInput{Email: "admin@corp.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Role != enums.RoleAdministrator {
		t.Fatalf("expected Administrator, got %s", sess.Role)
	}

	sess, err = svc.Register(context.Background(), RegisterInput{Email: "greens@farm.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Role != enums.RoleVendor {
		t.Fatalf("expected Vendor, got %s", sess.Role)
	}
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := testService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "hunter22"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "hunter22"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "v@x.com", "correct-pw", enums.RoleVendor)
	svc := testService(t, repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "v@x.com", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	repo := newStubUserRepo()
	svc := testService(t, repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@x.com", Password: "pw"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUpgradesBootstrapAdmin(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, bootstrapAdminEmail, "root-pw", enums.RoleVendor)
	svc := testService(t, repo)

	sess, err := svc.Login(context.Background(), LoginInput{Email: bootstrapAdminEmail, Password: "root-pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Role != enums.RoleAdministrator {
		t.Fatalf("bootstrap admin must be upgraded, got %s", sess.Role)
	}
	if repo.roleWrites[bootstrapAdminEmail] != enums.RoleAdministrator {
		t.Fatal("expected a role write during repair")
	}
}

func TestRepairProfileIsIdempotent(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, bootstrapAdminEmail, "root-pw", enums.RoleVendor)
	svc := testService(t, repo)
	ctx := context.Background()

	if err := svc.RepairProfile(ctx, bootstrapAdminEmail); err != nil {
		t.Fatalf("first repair: %v", err)
	}
	writes := len(repo.roleWrites)
	if err := svc.RepairProfile(ctx, bootstrapAdminEmail); err != nil {
		t.Fatalf("second repair: %v", err)
	}
	if len(repo.roleWrites) != writes {
		t.Fatal("second repair must not write again")
	}

	res := svc.ResolveRole(ctx, bootstrapAdminEmail)
	if res.Role != enums.RoleAdministrator || res.Diagnostic != "" {
		t.Fatalf("unexpected resolution %+v", res)
	}
}

func TestResolveRoleFailsOpenOnReadError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("network down")
	svc := testService(t, repo)

	res := svc.ResolveRole(context.Background(), "admin@corp.com")
	if res.Role != enums.RoleAdministrator {
		t.Fatalf("expected optimistic Administrator, got %s", res.Role)
	}
	if !strings.Contains(res.Diagnostic, "role lookup failed") {
		t.Fatalf("expected diagnostic, got %q", res.Diagnostic)
	}

	res = svc.ResolveRole(context.Background(), "vendor@corp.com")
	if res.Role != enums.RoleVendor {
		t.Fatalf("expected optimistic Vendor, got %s", res.Role)
	}
}

func TestResolveRoleReturnsStoredRoleVerbatim(t *testing.T) {
	repo := newStubUserRepo()
	// Stored role wins even when the email would guess Administrator.
	seedUser(t, repo, "admin-helper@corp.com", "pw", enums.RoleVendor)
	svc := testService(t, repo)

	res := svc.ResolveRole(context.Background(), "admin-helper@corp.com")
	if res.Role != enums.RoleVendor {
		t.Fatalf("stored role must win, got %s", res.Role)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "v@x.com", "correct-pw", enums.RoleVendor)
	svc := testService(t, repo)
	ctx := context.Background()

	sess, err := svc.Login(ctx, LoginInput{Email: "v@x.com", Password: "correct-pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	next, err := svc.Refresh(ctx, sess.AccessToken, sess.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.AccessToken == sess.AccessToken {
		t.Fatal("expected a new access token")
	}
	if next.RefreshToken == sess.RefreshToken {
		t.Fatal("expected a new refresh token")
	}

	if _, err := svc.Refresh(ctx, sess.AccessToken, "bogus"); err == nil {
		t.Fatal("expected invalid refresh token to fail")
	}
}
