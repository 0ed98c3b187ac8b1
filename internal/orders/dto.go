package orders

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the wire shape of a placed order.
type OrderDTO struct {
	ID         uuid.UUID          `json:"id"`
	VendorName string             `json:"vendor_name"`
	Shop       string             `json:"shop"`
	ShopID     *uuid.UUID         `json:"shop_id,omitempty"`
	Date       time.Time          `json:"date"`
	TotalItems int                `json:"total_items"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Status     string             `json:"status"`
	Items      dbtypes.OrderItems `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// FromModel converts a persistence model into the wire shape.
func FromModel(o *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:         o.ID,
		VendorName: o.VendorName,
		Shop:       o.Shop,
		ShopID:     o.ShopID,
		Date:       o.Date,
		TotalItems: o.TotalItems,
		TotalValue: o.TotalValue,
		Status:     o.Status.String(),
		Items:      o.Items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func fromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
