package repository

import (
	"time"

	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockBatchRepository define el puerto para consultar/actualizar lotes de stock.
// Usado dentro de transacciones para garantizar consistencia al vender y recibir.
type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)
	// GetByKey busca el lote por su llave natural (producto, sucursal, código, vencimiento).
	GetByKey(productID, branchID, batchCode string, expiry *time.Time) (*entity.StockBatch, error)
	Update(batch *entity.StockBatch) error
	// ListForUpdate bloquea todos los lotes vendibles (quantity > 0) del
	// producto en la sucursal (SELECT FOR UPDATE), en orden FEFO: vencimiento
	// más próximo primero, lotes sin vencimiento al final. Una venta descuenta
	// recorriendo la lista hasta cubrir la línea.
	ListForUpdate(productID, branchID string) ([]*entity.StockBatch, error)
	// GetForUpdate bloquea un lote puntual por ID (ajustes manuales).
	GetForUpdate(id string) (*entity.StockBatch, error)
	ListByProduct(productID, branchID string) ([]*entity.StockBatch, error)
	// TotalQuantity suma las cantidades de todos los lotes del producto.
	// branchID vacío = todas las sucursales.
	TotalQuantity(productID, branchID string) (decimal.Decimal, error)
}
