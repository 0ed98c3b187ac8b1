package assignments

import (
	"context"
	"errors"
	"fmt"

	"github.com/trosone/tros-backend/pkg/db/models"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type assignmentRepository interface {
	FindByPair(ctx context.Context, vendorID, shopID uuid.UUID) (*models.Assignment, error)
	Create(ctx context.Context, row *models.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Assignment, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Assignment, error)
}

// ToggleResult reports what the toggle did.
type ToggleResult struct {
	Assigned bool        `json:"assigned"`
	VendorID uuid.UUID   `json:"vendor_id"`
	ShopID   uuid.UUID   `json:"shop_id"`
	ID       *uuid.UUID  `json:"id,omitempty"`
}

// Service exposes the join-collection assignment surface. These rows are an
// independent mechanism and never touch the shop's direct assignment columns.
type Service interface {
	Toggle(ctx context.Context, vendorID, shopID uuid.UUID) (*ToggleResult, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Assignment, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Assignment, error)
}

type service struct {
	repo assignmentRepository
}

// NewService builds an assignments service with the provided repository.
func NewService(repo assignmentRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	return &service{repo: repo}, nil
}

// Toggle deletes the join row when present and inserts it when absent.
// Toggling twice returns the pair to its original state.
func (s *service) Toggle(ctx context.Context, vendorID, shopID uuid.UUID) (*ToggleResult, error) {
	existing, err := s.repo.FindByPair(ctx, vendorID, shopID)
	switch {
	case err == nil:
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove assignment")
		}
		return &ToggleResult{Assigned: false, VendorID: vendorID, ShopID: shopID}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		row := &models.Assignment{ID: uuid.New(), VendorID: vendorID, ShopID: shopID}
		if err := s.repo.Create(ctx, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create assignment")
		}
		return &ToggleResult{Assigned: true, VendorID: vendorID, ShopID: shopID, ID: &row.ID}, nil

	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
	}
}

func (s *service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Assignment, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	return rows, nil
}

func (s *service) ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Assignment, error) {
	rows, err := s.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	return rows, nil
}
