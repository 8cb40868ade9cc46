package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock (las ventas no generan movimiento: cada
// SaleItem ya registra lote y cantidad descontada).
const (
	MovementTypeReceive = "RECEIVE" // ingreso de mercancía de proveedor
	MovementTypeAdjust  = "ADJUST"  // corrección manual de un encargado
)

// StockMovement representa un cambio de stock fuera de caja: ingresos de
// mercancía y ajustes manuales. Sirve de rastro auditable por lote.
type StockMovement struct {
	ID           string
	StockBatchID string
	ProductID    string
	BranchID     string
	Type         string
	Quantity     decimal.Decimal // positiva ingreso, negativa ajuste a la baja
	UnitCost     decimal.Decimal
	Reason       string // motivo del ajuste; vacío en ingresos
	Date         time.Time
	CreatedBy    string
}
