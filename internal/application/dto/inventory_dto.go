package dto

import "github.com/shopspring/decimal"

// ReceiveStockRequest body para POST /api/stock/receive (ingreso de mercancía).
// Si ya existe un lote con el mismo (producto, sucursal, código, vencimiento)
// se suma la cantidad y se actualiza el costo; si no, se crea el lote.
type ReceiveStockRequest struct {
	ProductID  string          `json:"product_id"`
	BranchID   string          `json:"branch_id"`
	BatchCode  string          `json:"batch_code,omitempty"`
	ExpiryDate string          `json:"expiry_date,omitempty"` // YYYY-MM-DD; vacío = sin vencimiento
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SupplierID string          `json:"supplier_id,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/adjust (corrección manual).
// Quantity es el delta: positivo suma, negativo resta; el lote nunca queda
// bajo cero.
type AdjustStockRequest struct {
	StockBatchID string          `json:"stock_batch_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
}

// StockBatchResponse lote en respuestas.
type StockBatchResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	BranchID   string          `json:"branch_id"`
	BatchCode  string          `json:"batch_code,omitempty"`
	ExpiryDate string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SupplierID string          `json:"supplier_id,omitempty"`
}

// StockMovementResponse movimiento de stock (ingreso o ajuste) en respuestas.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	StockBatchID string          `json:"stock_batch_id"`
	ProductID    string          `json:"product_id"`
	BranchID     string          `json:"branch_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Reason       string          `json:"reason,omitempty"`
	Date         string          `json:"date"`
	CreatedBy    string          `json:"created_by,omitempty"`
}

// ProductStockResponse stock de un producto desglosado por lote.
type ProductStockResponse struct {
	ProductID   string                `json:"product_id"`
	ProductName string                `json:"product_name"`
	Total       decimal.Decimal       `json:"total"`
	Batches     []*StockBatchResponse `json:"batches"`
}

// LowStockAlertDTO lote en o bajo el umbral de stock.
type LowStockAlertDTO struct {
	BatchID     string          `json:"batch_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BranchName  string          `json:"branch_name"`
	BatchCode   string          `json:"batch_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NearExpiryAlertDTO lote con vencimiento dentro de la ventana de alerta.
type NearExpiryAlertDTO struct {
	BatchID     string          `json:"batch_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BranchName  string          `json:"branch_name"`
	BatchCode   string          `json:"batch_code,omitempty"`
	ExpiryDate  string          `json:"expiry_date"` // YYYY-MM-DD
	Quantity    decimal.Decimal `json:"quantity"`
}

// AlertsResponse respuesta de GET /api/alerts.
type AlertsResponse struct {
	LowStock   []LowStockAlertDTO   `json:"low_stock"`
	NearExpiry []NearExpiryAlertDTO `json:"near_expiry"`
}
