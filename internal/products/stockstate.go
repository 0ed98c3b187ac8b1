package products

// Stock states displayed on the dashboard and list filters.
const (
	StockStateOut = "Out of Stock"
	StockStateLow = "Low"
	StockStateIn  = "In Stock"
)

// StockState derives the display state from current and minimum stock.
// Out of Stock wins over Low when both conditions hold.
func StockState(stock, minStock int) string {
	switch {
	case stock <= 0:
		return StockStateOut
	case stock <= minStock:
		return StockStateLow
	default:
		return StockStateIn
	}
}
