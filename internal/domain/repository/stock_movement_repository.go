package repository

import (
	"time"

	"github.com/amigopos/amigo-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto para el rastro de ingresos y ajustes de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct lista movimientos de un producto en un rango de fechas (nil = sin límite).
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByBranch(branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
