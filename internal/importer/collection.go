package importer

import (
	"context"
	"strings"

	"github.com/trosone/tros-backend/pkg/csvkit"
	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collection adapts one entity type to the CSV import/export pipeline.
type Collection interface {
	Name() string
	Headers() []string
	Encoder() *csvkit.Encoder
	ExportRows(ctx context.Context) ([]csvkit.Row, error)
	CreateBatch(ctx context.Context, rows []csvkit.Row) error
}

type productSource interface {
	List(ctx context.Context) ([]models.Product, error)
	CreateBatch(ctx context.Context, rows []models.Product) error
}

type vendorSource interface {
	List(ctx context.Context) ([]models.Vendor, error)
	CreateBatch(ctx context.Context, rows []models.Vendor) error
}

type shopNamer interface {
	NamesByAssignedVendor(ctx context.Context, vendorID uuid.UUID) ([]string, error)
}

type shopSource interface {
	List(ctx context.Context) ([]models.Shop, error)
	CreateBatch(ctx context.Context, rows []models.Shop) error
}

// ProductCollection wires products into the pipeline.
type ProductCollection struct {
	source productSource
}

// NewProductCollection builds the products adapter.
func NewProductCollection(source productSource) *ProductCollection {
	return &ProductCollection{source: source}
}

func (c *ProductCollection) Name() string { return "products" }

func (c *ProductCollection) Headers() []string {
	return []string{"name", "brand", "sku", "barcode", "price", "stock", "min_stock", "category", "status", "vendor_email", "shop_name"}
}

func (c *ProductCollection) Encoder() *csvkit.Encoder {
	return csvkit.NewEncoder()
}

func (c *ProductCollection) ExportRows(ctx context.Context) ([]csvkit.Row, error) {
	products, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]csvkit.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, csvkit.Row{
			"name":         p.Name,
			"brand":        deref(p.Brand),
			"sku":          deref(p.SKU),
			"barcode":      deref(p.Barcode),
			"price":        p.Price.String(),
			"stock":        float64(p.Stock),
			"min_stock":    float64(p.MinStock),
			"category":     deref(p.Category),
			"status":       p.Status.String(),
			"vendor_email": p.VendorEmail,
			"shop_name":    deref(p.ShopName),
		})
	}
	return rows, nil
}

func (c *ProductCollection) CreateBatch(ctx context.Context, rows []csvkit.Row) error {
	batch := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p := models.Product{
			ID:           uuid.New(),
			Name:         rowString(row, "name"),
			Price:        rowDecimal(row, "price"),
			Stock:        rowInt(row, "stock"),
			MinStock:     rowInt(row, "min_stock"),
			Status:       enums.ProductStatusActive,
			VendorEmail:  rowString(row, "vendor_email"),
			CustomFields: dbtypes.JSONMap{},
			Documents:    dbtypes.Documents{},
		}
		if status, err := enums.ParseProductStatus(rowString(row, "status")); err == nil {
			p.Status = status
		}
		setOptional(&p.Brand, row, "brand")
		setOptional(&p.SKU, row, "sku")
		setOptional(&p.Barcode, row, "barcode")
		setOptional(&p.Category, row, "category")
		setOptional(&p.ShopName, row, "shop_name")
		batch = append(batch, p)
	}
	return c.source.CreateBatch(ctx, batch)
}

// VendorCollection wires vendors into the pipeline. The export includes the
// computed assigned-shop list flattened by a field formatter.
type VendorCollection struct {
	source vendorSource
	shops  shopNamer
}

// NewVendorCollection builds the vendors adapter.
func NewVendorCollection(source vendorSource, shops shopNamer) *VendorCollection {
	return &VendorCollection{source: source, shops: shops}
}

func (c *VendorCollection) Name() string { return "vendors" }

func (c *VendorCollection) Headers() []string {
	return []string{"name", "owner", "email", "phone", "address", "status", "_assignments"}
}

func (c *VendorCollection) Encoder() *csvkit.Encoder {
	enc := csvkit.NewEncoder()
	enc.Register("_assignments", func(value any) string {
		names, ok := value.([]string)
		if !ok || len(names) == 0 {
			return ""
		}
		return strings.Join(names, ", ")
	})
	return enc
}

func (c *VendorCollection) ExportRows(ctx context.Context) ([]csvkit.Row, error) {
	vendors, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]csvkit.Row, 0, len(vendors))
	for _, v := range vendors {
		names, _ := c.shops.NamesByAssignedVendor(ctx, v.ID)
		rows = append(rows, csvkit.Row{
			"name":         v.Name,
			"owner":        v.Owner,
			"email":        v.Email,
			"phone":        deref(v.Phone),
			"address":      deref(v.Address),
			"status":       v.Status.String(),
			"_assignments": names,
		})
	}
	return rows, nil
}

func (c *VendorCollection) CreateBatch(ctx context.Context, rows []csvkit.Row) error {
	batch := make([]models.Vendor, 0, len(rows))
	for _, row := range rows {
		v := models.Vendor{
			ID:           uuid.New(),
			Name:         rowString(row, "name"),
			Owner:        rowString(row, "owner"),
			Email:        rowString(row, "email"),
			Status:       enums.VendorStatusActive,
			CustomFields: dbtypes.JSONMap{},
			Documents:    dbtypes.Documents{},
		}
		if status, err := enums.ParseVendorStatus(rowString(row, "status")); err == nil {
			v.Status = status
		}
		setOptional(&v.Phone, row, "phone")
		setOptional(&v.Address, row, "address")
		batch = append(batch, v)
	}
	return c.source.CreateBatch(ctx, batch)
}

// ShopCollection wires shops into the pipeline.
type ShopCollection struct {
	source shopSource
}

// NewShopCollection builds the shops adapter.
func NewShopCollection(source shopSource) *ShopCollection {
	return &ShopCollection{source: source}
}

func (c *ShopCollection) Name() string { return "shops" }

func (c *ShopCollection) Headers() []string {
	return []string{"name", "manager", "location", "address", "phone", "status", "assigned_vendor_name"}
}

func (c *ShopCollection) Encoder() *csvkit.Encoder {
	return csvkit.NewEncoder()
}

func (c *ShopCollection) ExportRows(ctx context.Context) ([]csvkit.Row, error) {
	shops, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]csvkit.Row, 0, len(shops))
	for _, s := range shops {
		rows = append(rows, csvkit.Row{
			"name":                 s.Name,
			"manager":              deref(s.Manager),
			"location":             deref(s.Location),
			"address":              deref(s.Address),
			"phone":                deref(s.Phone),
			"status":               s.Status.String(),
			"assigned_vendor_name": deref(s.AssignedVendorName),
		})
	}
	return rows, nil
}

func (c *ShopCollection) CreateBatch(ctx context.Context, rows []csvkit.Row) error {
	batch := make([]models.Shop, 0, len(rows))
	for _, row := range rows {
		s := models.Shop{
			ID:           uuid.New(),
			Name:         rowString(row, "name"),
			Status:       enums.ShopStatusOpen,
			CustomFields: dbtypes.JSONMap{},
			Documents:    dbtypes.Documents{},
		}
		if status, err := enums.ParseShopStatus(rowString(row, "status")); err == nil {
			s.Status = status
		}
		setOptional(&s.Manager, row, "manager")
		setOptional(&s.Location, row, "location")
		setOptional(&s.Address, row, "address")
		setOptional(&s.Phone, row, "phone")
		setOptional(&s.AssignedVendorName, row, "assigned_vendor_name")
		batch = append(batch, s)
	}
	return c.source.CreateBatch(ctx, batch)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rowString(row csvkit.Row, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return ""
	}
}

func rowInt(row csvkit.Row, key string) int {
	if v, ok := row[key].(float64); ok {
		return int(v)
	}
	return 0
}

func rowDecimal(row csvkit.Row, key string) decimal.Decimal {
	switch v := row[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func setOptional(target **string, row csvkit.Row, key string) {
	if s := rowString(row, key); s != "" {
		*target = &s
	}
}
