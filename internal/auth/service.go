package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trosone/tros-backend/internal/users"
	pkgauth "github.com/trosone/tros-backend/pkg/auth"
	"github.com/trosone/tros-backend/pkg/auth/session"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/db"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/trosone/tros-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.Role) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service exposes signup, signin, and role resolution.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Refresh(ctx context.Context, expiredAccessToken, refreshToken string) (*Session, error)
	Logout(ctx context.Context, accessID string) error
	RepairProfile(ctx context.Context, email string) error
	ResolveRole(ctx context.Context, email string) RoleResolution
}

type service struct {
	repo        userRepository
	sessions    sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds the auth service with its dependencies.
func NewService(repo userRepository, sessions sessionManager, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	if len(input.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         optimisticRole(email),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return s.issueSession(ctx, user, "")
}

func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	// Profile repair and role resolution never block a verified sign-in.
	if err := s.RepairProfile(ctx, email); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "email", email), "profile repair failed")
	}
	resolution := s.ResolveRole(ctx, email)
	user.Role = resolution.Role

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logg.Warn(ctx, "updating last login failed")
	}

	return s.issueSession(ctx, user, resolution.Diagnostic)
}

// RepairProfile is idempotent: it upgrades the bootstrap admin account and
// backfills a missing or unreadable role with the optimistic guess.
func (s *service) RepairProfile(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user for repair")
	}

	want := user.Role
	if !want.IsValid() {
		want = optimisticRole(email)
	}
	if email == bootstrapAdminEmail && want != roleAdministrator {
		want = roleAdministrator
	}

	if want == user.Role {
		return nil
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"email": email,
		"from":  user.Role.String(),
		"to":    want.String(),
	}), "repairing stored role")

	if err := s.repo.UpdateRole(ctx, user.ID, want); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return nil
}

// ResolveRole returns the stored role verbatim. Any read failure falls back
// to the optimistic guess with a diagnostic; it never fails the caller.
func (s *service) ResolveRole(ctx context.Context, email string) RoleResolution {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		fallback := optimisticRole(email)
		return RoleResolution{
			Role:       fallback,
			Diagnostic: fmt.Sprintf("role lookup failed (%v); assumed %s from email", err, fallback),
		}
	}
	if !user.Role.IsValid() {
		fallback := optimisticRole(email)
		return RoleResolution{
			Role:       fallback,
			Diagnostic: fmt.Sprintf("stored role %q is unknown; assumed %s from email", user.Role, fallback),
		}
	}
	return RoleResolution{Role: user.Role}
}

func (s *service) Refresh(ctx context.Context, expiredAccessToken, refreshToken string) (*Session, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, expiredAccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	signed, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &Session{
		UserID:       claims.UserID,
		Email:        claims.Email,
		Role:         claims.Role,
		AccessToken:  signed,
		RefreshToken: newRefresh,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, user *models.User, diagnostic string) (*Session, error) {
	accessID := session.NewAccessID()

	signed, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return &Session{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		AccessToken:    signed,
		RefreshToken:   refresh,
		RoleDiagnostic: diagnostic,
	}, nil
}
