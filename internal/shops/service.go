package shops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trosone/tros-backend/pkg/db/models"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	List(ctx context.Context) ([]models.Shop, error)
	FindByAssignedVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	SetAssignedVendor(ctx context.Context, shopID uuid.UUID, vendorID *uuid.UUID, vendorName *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vendorLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
}

// Service exposes shop operations including the direct vendor assignment.
type Service interface {
	Create(ctx context.Context, input CreateShopInput) (*ShopDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ShopDTO, error)
	List(ctx context.Context) ([]ShopDTO, error)
	ListForVendorEmail(ctx context.Context, email string) ([]ShopDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error)
	AssignVendor(ctx context.Context, shopID, vendorID uuid.UUID) (*ShopDTO, error)
	UnassignVendor(ctx context.Context, shopID uuid.UUID) (*ShopDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    shopRepository
	vendors vendorLookup
}

// NewService builds a shop service with the provided repositories.
func NewService(repo shopRepository, vendors vendorLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor lookup required")
	}
	return &service{repo: repo, vendors: vendors}, nil
}

func (s *service) Create(ctx context.Context, input CreateShopInput) (*ShopDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	shop := input.ToModel()
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return FromModel(shop), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ShopDTO, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return FromModel(shop), nil
}

func (s *service) List(ctx context.Context) ([]ShopDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return toDTOs(rows), nil
}

// ListForVendorEmail is the vendor read scope: caller email to vendor row to
// shops assigned to that vendor. A missing vendor row yields an empty list,
// not an error.
func (s *service) ListForVendorEmail(ctx context.Context, email string) ([]ShopDTO, error) {
	vendor, err := s.vendors.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ShopDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve vendor")
	}

	rows, err := s.repo.FindByAssignedVendor(ctx, vendor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned shops")
	}
	return toDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Manager != nil {
		shop.Manager = input.Manager
	}
	if input.Location != nil {
		shop.Location = input.Location
	}
	if input.Address != nil {
		shop.Address = input.Address
	}
	if input.Phone != nil {
		shop.Phone = input.Phone
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop status")
		}
		shop.Status = *input.Status
	}
	if input.ShopType != nil {
		shop.ShopType = input.ShopType
	}
	if input.OperatingHours != nil {
		shop.OperatingHours = input.OperatingHours
	}
	if input.SquareFootage != nil {
		shop.SquareFootage = input.SquareFootage
	}
	if input.Documents != nil {
		shop.Documents = *input.Documents
	}
	if input.CustomFields != nil {
		shop.CustomFields = *input.CustomFields
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return FromModel(shop), nil
}

// AssignVendor writes both direct assignment columns. Last write wins; there
// is no optimistic lock and the join rows are not touched.
func (s *service) AssignVendor(ctx context.Context, shopID, vendorID uuid.UUID) (*ShopDTO, error) {
	if _, err := s.repo.FindByID(ctx, shopID); err != nil {
		return nil, mapLookupErr(err)
	}

	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	if err := s.repo.SetAssignedVendor(ctx, shopID, &vendor.ID, &vendor.Name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign vendor")
	}

	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return FromModel(shop), nil
}

// UnassignVendor clears both direct assignment columns.
func (s *service) UnassignVendor(ctx context.Context, shopID uuid.UUID) (*ShopDTO, error) {
	if _, err := s.repo.FindByID(ctx, shopID); err != nil {
		return nil, mapLookupErr(err)
	}

	if err := s.repo.SetAssignedVendor(ctx, shopID, nil, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unassign vendor")
	}

	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return FromModel(shop), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapLookupErr(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

func toDTOs(rows []models.Shop) []ShopDTO {
	out := make([]ShopDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
}
