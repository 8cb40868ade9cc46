package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta de mostrador.
// Inmutable una vez creada: no existe flujo de edición ni borrado.
// Invariante: Total = suma de LineTotal de sus items.
type Sale struct {
	ID           string
	BranchID     string
	CashierID    string
	CustomerID   string // vacío para venta anónima
	Date         time.Time
	Total        decimal.Decimal
	CashReceived decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}

// Change devuelve el vuelto a entregar (nunca negativo).
func (s *Sale) Change() decimal.Decimal {
	change := s.CashReceived.Sub(s.Total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}
