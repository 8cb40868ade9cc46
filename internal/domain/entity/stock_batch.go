package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un lote de un producto en una sucursal.
// Las ventas descuentan en orden FEFO (first-expired-first-out): primero el
// lote con vencimiento más próximo; si no alcanza, la línea sigue con el
// siguiente lote hasta cubrirse.
type StockBatch struct {
	ID         string
	ProductID  string
	BranchID   string
	BatchCode  string          // código de lote del proveedor; puede ser vacío
	ExpiryDate *time.Time      // nil = sin vencimiento declarado
	Quantity   decimal.Decimal // nunca negativa
	UnitCost   decimal.Decimal // costo de compra por unidad
	SupplierID string          // vacío si se desconoce el proveedor
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExpiresWithin indica si el lote vence dentro de los próximos days días.
// Un lote sin fecha de vencimiento nunca "vence".
func (b *StockBatch) ExpiresWithin(days int, now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return !b.ExpiryDate.After(limit)
}
