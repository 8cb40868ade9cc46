package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo de farmacia del catálogo.
// El stock NO es un campo del producto: vive por lote y sucursal en StockBatch;
// el total disponible de un producto es la suma de las cantidades de sus lotes.
type Product struct {
	ID          string
	Name        string
	Category    string // texto libre: tabletas, jarabe, inyectable...
	Description string
	Price       decimal.Decimal // precio de venta sugerido
	MinPrice    decimal.Decimal // piso fijo: el cajero no puede vender por debajo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
