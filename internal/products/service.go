package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByVendorEmail(ctx context.Context, email string) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignVendorEmail(ctx context.Context, ids []uuid.UUID, email string) (int64, error)
	AssignShop(ctx context.Context, ids []uuid.UUID, shopID uuid.UUID, shopName string) (int64, error)
}

type vendorLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type shopLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

// Actor identifies the caller for permission and scoping decisions.
type Actor struct {
	Role  enums.Role
	Email string
}

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdministrator
}

// Service exposes catalog operations with role-aware scoping.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	GetByBarcode(ctx context.Context, barcode string) (*ProductDTO, error)
	List(ctx context.Context, actor Actor) ([]ProductDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	BulkAssign(ctx context.Context, actor Actor, input BulkAssignInput) (*BulkAssignResult, error)
}

type service struct {
	repo      productRepository
	vendors   vendorLookup
	shops     shopLookup
	logg      *logger.Logger
	batchSize int
}

// NewService builds a product service. batchSize caps each bulk-assign chunk.
func NewService(repo productRepository, vendors vendorLookup, shops shopLookup, logg *logger.Logger, batchSize int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor lookup required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &service{repo: repo, vendors: vendors, shops: shops, logg: logg, batchSize: batchSize}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateProductInput) (*ProductDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only administrators can create products")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}

	p := input.ToModel()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(p), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return FromModel(p), nil
}

func (s *service) GetByBarcode(ctx context.Context, barcode string) (*ProductDTO, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return FromModel(p), nil
}

func (s *service) List(ctx context.Context, actor Actor) ([]ProductDTO, error) {
	var (
		rows []models.Product
		err  error
	)
	if actor.IsAdmin() {
		rows, err = s.repo.List(ctx)
	} else {
		rows, err = s.repo.ListByVendorEmail(ctx, actor.Email)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return fromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	if actor.IsAdmin() {
		if err := applyAdminUpdate(p, input); err != nil {
			return nil, err
		}
	} else {
		if p.VendorEmail != actor.Email {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another vendor")
		}
		// Vendors reach only the operational fields. Everything else in
		// the payload is dropped without error.
		if err := applyVendorUpdate(p, input); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(p), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only administrators can delete products")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapLookupErr(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// BulkAssign rewrites ownership columns in sequential chunks. A failing
// chunk stops the run; earlier chunks stay committed and later ones are
// never attempted.
func (s *service) BulkAssign(ctx context.Context, actor Actor, input BulkAssignInput) (*BulkAssignResult, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only administrators can bulk assign products")
	}
	if len(input.ProductIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_ids is required")
	}
	if (input.VendorID == nil) == (input.ShopID == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of vendor_id or shop_id is required")
	}

	apply, err := s.bulkApplier(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &BulkAssignResult{Requested: len(input.ProductIDs)}
	for batch, chunk := range chunkIDs(input.ProductIDs, s.batchSize) {
		result.Batches++
		affected, err := apply(ctx, chunk)
		if err != nil {
			failed := batch + 1
			result.FailedBatch = &failed
			s.logg.Error(ctx, "bulk assign batch failed", err)
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("bulk assign batch %d of %d", failed, batchCount(len(input.ProductIDs), s.batchSize)))
		}
		result.Updated += int(affected)
	}
	return result, nil
}

type bulkApplyFunc func(ctx context.Context, ids []uuid.UUID) (int64, error)

func (s *service) bulkApplier(ctx context.Context, input BulkAssignInput) (bulkApplyFunc, error) {
	if input.VendorID != nil {
		vendor, err := s.vendors.FindByID(ctx, *input.VendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "vendor lookup")
		}
		// The ownership column stores the vendor email; older vendor rows
		// without one fall back to the display name.
		target := vendor.Email
		if strings.TrimSpace(target) == "" {
			target = vendor.Name
		}
		return func(ctx context.Context, ids []uuid.UUID) (int64, error) {
			return s.repo.AssignVendorEmail(ctx, ids, target)
		}, nil
	}

	shop, err := s.shops.FindByID(ctx, *input.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "shop lookup")
	}
	return func(ctx context.Context, ids []uuid.UUID) (int64, error) {
		return s.repo.AssignShop(ctx, ids, shop.ID, shop.Name)
	}, nil
}

func applyAdminUpdate(p *models.Product, in UpdateProductInput) error {
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		p.Name = *in.Name
	}
	if in.Brand != nil {
		p.Brand = in.Brand
	}
	if in.SKU != nil {
		p.SKU = in.SKU
	}
	if in.Barcode != nil {
		p.Barcode = in.Barcode
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CostPrice != nil {
		p.CostPrice = in.CostPrice
	}
	if in.TaxRate != nil {
		p.TaxRate = in.TaxRate
	}
	if in.Category != nil {
		p.Category = in.Category
	}
	if in.SubCategory != nil {
		p.SubCategory = in.SubCategory
	}
	if in.VendorEmail != nil {
		p.VendorEmail = *in.VendorEmail
	}
	if in.ShopID != nil {
		p.ShopID = in.ShopID
	}
	if in.ShopName != nil {
		p.ShopName = in.ShopName
	}
	if in.Manufacturer != nil {
		p.Manufacturer = in.Manufacturer
	}
	if in.Origin != nil {
		p.Origin = in.Origin
	}
	if in.ExpiryDate != nil {
		p.ExpiryDate = in.ExpiryDate
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.CustomFields != nil {
		p.CustomFields = *in.CustomFields
	}
	return applyVendorUpdate(p, in)
}

func applyVendorUpdate(p *models.Product, in UpdateProductInput) error {
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.Status != nil {
		status, err := enums.ParseProductStatus(*in.Status)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		p.Status = status
	}
	return nil
}

func chunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	chunks := make([][]uuid.UUID, 0, batchCount(len(ids), size))
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

func batchCount(n, size int) int {
	return (n + size - 1) / size
}

func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "product lookup")
}
