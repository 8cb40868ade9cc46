package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de venta. Captura el precio unitario al momento
// de la venta (el precio del producto puede cambiar después) y el lote que la
// sirvió, para poder calcular utilidad contra el costo de ese lote.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	StockBatchID string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal // Quantity * UnitPrice
}
