package dto

import "github.com/shopspring/decimal"

// SalesReportResponse respuesta de GET /api/reports/sales.
// Todos los agregados usan el rango semiabierto [from, to+1d) resuelto del
// preset o de las fechas; con rango vacío devuelve ceros, nunca error.
type SalesReportResponse struct {
	Preset   string `json:"preset"`
	From     string `json:"from"` // YYYY-MM-DD inclusivo
	To       string `json:"to"`   // YYYY-MM-DD inclusivo
	BranchID string `json:"branch_id,omitempty"`

	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
	COGS      decimal.Decimal `json:"cogs"` // Revenue - Profit
	ItemsSold decimal.Decimal `json:"items_sold"`
	SaleCount int             `json:"sale_count"`

	// Rotación de inventario del período: COGS / costo promedio de inventario.
	InventoryTurnover decimal.Decimal `json:"inventory_turnover"`

	TopProducts []TopProductDTO    `json:"top_products"`
	ByProduct   []ProductReportRow `json:"by_product,omitempty"`
	Daily       []DailyReportPoint `json:"daily"`
}

// ProductReportRow fila por producto del reporte: unidades, dinero y rotación.
// Opening se reconstruye como Closing + Sold (el cierre actual más lo vendido).
type ProductReportRow struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	OpeningQty  decimal.Decimal `json:"opening_qty"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	ClosingQty  decimal.Decimal `json:"closing_qty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	Turnover    decimal.Decimal `json:"turnover"`
}

// DailyReportPoint punto de la serie diaria con la recta de tendencia
// (mínimos cuadrados) ya evaluada para graficar.
type DailyReportPoint struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	TrendSales  decimal.Decimal `json:"trend_sales"`
	TrendProfit decimal.Decimal `json:"trend_profit"`
}
