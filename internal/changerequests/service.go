package changerequests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type changeRequestRepository interface {
	Create(ctx context.Context, cr *models.ChangeRequest) error
	List(ctx context.Context) ([]models.ChangeRequest, error)
	ListByVendorName(ctx context.Context, vendorName string) ([]models.ChangeRequest, error)
}

type vendorLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
}

// Actor identifies the caller.
type Actor struct {
	Email string
	Role  enums.Role
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdministrator
}

// Service exposes the change request surface. Requests are submitted and
// listed only; there is no transition operation.
type Service interface {
	Submit(ctx context.Context, actor Actor, input SubmitInput) (*ChangeRequestDTO, error)
	List(ctx context.Context, actor Actor) ([]ChangeRequestDTO, error)
}

type service struct {
	repo    changeRequestRepository
	vendors vendorLookup
}

// NewService builds a change request service.
func NewService(repo changeRequestRepository, vendors vendorLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("change request repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor lookup required")
	}
	return &service{repo: repo, vendors: vendors}, nil
}

// Submit creates a Pending request attributed to the caller's vendor record.
func (s *service) Submit(ctx context.Context, actor Actor, input SubmitInput) (*ChangeRequestDTO, error) {
	if strings.TrimSpace(input.TargetCollection) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target_collection is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	requestType, err := enums.ParseChangeRequestType(input.RequestType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	cr := &models.ChangeRequest{
		ID:               uuid.New(),
		TargetCollection: input.TargetCollection,
		TargetID:         input.TargetID,
		TargetName:       input.TargetName,
		RequestType:      requestType,
		Description:      input.Description,
		Status:           enums.ChangeRequestStatusPending,
	}

	vendor, err := s.vendors.FindByEmail(ctx, actor.Email)
	switch {
	case err == nil:
		cr.VendorID = &vendor.ID
		cr.VendorName = vendor.Name
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No vendor row yet. Attribute by email so the request is not lost.
		cr.VendorName = actor.Email
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "vendor lookup")
	}

	if err := s.repo.Create(ctx, cr); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create change request")
	}
	return FromModel(cr), nil
}

// List returns all requests for administrators and the caller's own
// requests for vendors.
func (s *service) List(ctx context.Context, actor Actor) ([]ChangeRequestDTO, error) {
	if actor.IsAdmin() {
		rows, err := s.repo.List(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list change requests")
		}
		return fromModels(rows), nil
	}

	vendorName := actor.Email
	if vendor, err := s.vendors.FindByEmail(ctx, actor.Email); err == nil {
		vendorName = vendor.Name
	}
	rows, err := s.repo.ListByVendorName(ctx, vendorName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list change requests")
	}
	return fromModels(rows), nil
}
