package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trosone/tros-backend/internal/users"
	"github.com/trosone/tros-backend/pkg/config"
	"github.com/trosone/tros-backend/pkg/db"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type vendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetLinkedUser(ctx context.Context, id, userID uuid.UUID) error
}

type shopNamer interface {
	NamesByAssignedVendor(ctx context.Context, vendorID uuid.UUID) ([]string, error)
}

type userCreator interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// Service exposes administrator-only vendor operations.
type Service interface {
	Create(ctx context.Context, input CreateVendorInput) (*VendorDTO, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	List(ctx context.Context) ([]VendorDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        vendorRepository
	shops       shopNamer
	users       userCreator
	passwordCfg config.PasswordConfig
}

// NewService builds a vendor service with the provided dependencies.
func NewService(repo vendorRepository, shops shopNamer, usersRepo userCreator, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop namer required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{
		repo:        repo,
		shops:       shops,
		users:       usersRepo,
		passwordCfg: passwordCfg,
	}, nil
}

// Create inserts the vendor and, when requested, a linked login account with
// a temporary password. The password is returned once and never stored in
// the clear.
func (s *service) Create(ctx context.Context, input CreateVendorInput) (*VendorDTO, string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor email")
	}

	vendor := input.ToModel()
	if err := s.repo.Create(ctx, vendor); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, "", pkgerrors.New(pkgerrors.CodeConflict, "vendor email already in use")
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}

	var tempPassword string
	if input.CreateLogin {
		pw, err := s.createLinkedLogin(ctx, vendor)
		if err != nil {
			return nil, "", err
		}
		tempPassword = pw
	}

	return FromModel(vendor), tempPassword, nil
}

func (s *service) createLinkedLogin(ctx context.Context, vendor *models.Vendor) (string, error) {
	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash temp password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        vendor.Email,
		PasswordHash: hash,
		DisplayName:  vendor.Name,
		Role:         enums.RoleVendor,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return "", pkgerrors.New(pkgerrors.CodeConflict, "login email already in use")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor login")
	}

	if err := s.repo.SetLinkedUser(ctx, vendor.ID, user.ID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link vendor login")
	}
	vendor.LinkedUserID = &user.ID

	return tempPassword, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	dto := FromModel(vendor)
	names, err := s.shops.NamesByAssignedVendor(ctx, vendor.ID)
	if err == nil {
		dto.AssignedShops = names
	}
	return dto, nil
}

func (s *service) List(ctx context.Context) ([]VendorDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	out := make([]VendorDTO, 0, len(rows))
	for i := range rows {
		dto := FromModel(&rows[i])
		if names, err := s.shops.NamesByAssignedVendor(ctx, rows[i].ID); err == nil {
			dto.AssignedShops = names
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.Owner != nil {
		vendor.Owner = *input.Owner
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.Address != nil {
		vendor.Address = input.Address
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor status")
		}
		vendor.Status = *input.Status
	}
	if input.TaxID != nil {
		vendor.TaxID = input.TaxID
	}
	if input.LicenseNumber != nil {
		vendor.LicenseNumber = input.LicenseNumber
	}
	if input.Website != nil {
		vendor.Website = input.Website
	}
	if input.Documents != nil {
		vendor.Documents = *input.Documents
	}
	if input.CustomFields != nil {
		vendor.CustomFields = *input.CustomFields
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return FromModel(vendor), nil
}

// Delete removes the vendor only. Products keep their vendor_email and shops
// keep assigned_vendor_id; both dangle by design.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapLookupErr(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	return nil
}

func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
}
