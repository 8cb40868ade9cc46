package dto

import "github.com/shopspring/decimal"

// SaleCustomerRequest datos opcionales del cliente en caja. Si llega Phone se
// busca el cliente por teléfono y se crea si no existe.
type SaleCustomerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// SaleItemRequest línea de venta. UnitPrice es opcional: en cero se usa el
// precio vigente del producto; si viene, no puede bajar del precio mínimo ni
// del costo del lote que sirve la línea.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales. La sucursal y el cajero salen
// del token; no se aceptan en el body.
type CreateSaleRequest struct {
	Customer     *SaleCustomerRequest `json:"customer,omitempty"`
	CashReceived decimal.Decimal      `json:"cash_received"`
	Notes        string               `json:"notes,omitempty"`
	Items        []SaleItemRequest    `json:"items"`
}

// SaleItemResponse línea en la respuesta de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BatchCode   string          `json:"batch_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse venta con líneas para POST /api/sales y GET /api/sales/:id.
type SaleResponse struct {
	ID           string             `json:"id"`
	BranchID     string             `json:"branch_id"`
	BranchName   string             `json:"branch_name,omitempty"`
	CashierName  string             `json:"cashier_name,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	Date         string             `json:"date"`
	Total        decimal.Decimal    `json:"total"`
	CashReceived decimal.Decimal    `json:"cash_received"`
	Change       decimal.Decimal    `json:"change"`
	Notes        string             `json:"notes,omitempty"`
	Items        []SaleItemResponse `json:"items"`
}

// SaleListResponse listado paginado de ventas (cabeceras, sin líneas).
type SaleListResponse struct {
	Items []*SaleResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ReceiptResponse recibo de una venta: objeto de valor compuesto al momento de
// imprimir, nunca almacenado. Es lo que se renderiza en JSON, PDF y correo.
type ReceiptResponse struct {
	SaleID       string             `json:"sale_id"`
	Pharmacy     string             `json:"pharmacy"`
	BranchName   string             `json:"branch_name"`
	BranchPhone  string             `json:"branch_phone,omitempty"`
	CashierName  string             `json:"cashier_name"`
	CustomerName string             `json:"customer_name,omitempty"`
	Date         string             `json:"date"`
	Items        []SaleItemResponse `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	CashReceived decimal.Decimal    `json:"cash_received"`
	Change       decimal.Decimal    `json:"change"`
	Currency     string             `json:"currency"`
}

// SendReceiptRequest body para reenviar el recibo de una venta por correo.
type SendReceiptRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateCustomerRequest body para registrar clientes fuera de caja.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}
