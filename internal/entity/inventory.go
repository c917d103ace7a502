package domain

import "github.com/shopspring/decimal"

// InventoryRecord mirrors one row of the Inventario table. The service reads
// it to populate cart lines and decrements its stock on checkout.
type InventoryRecord struct {
	ProductID   string          `json:"product_id"`
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Stock       int             `json:"stock"`
}
