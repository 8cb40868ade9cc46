package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// KPIs del día más el pulso de la semana; las fechas se calculan en el servidor.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – ahora)
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	TodayProfit    decimal.Decimal `json:"today_profit"`
	TodaySaleCount int             `json:"today_sale_count"`

	// Tamaño del catálogo y alertas vigentes
	ProductCount    int `json:"product_count"`
	LowStockCount   int `json:"low_stock_count"`
	NearExpiryCount int `json:"near_expiry_count"`

	// Últimos 7 días con recta de tendencia para la gráfica
	Last7Days []DailyReportPoint `json:"last_7_days"`

	// Top 5 productos por unidades vendidas del día
	TopProducts []TopProductDTO `json:"top_products"`

	// Últimas ventas registradas
	RecentSales []RecentSaleDTO `json:"recent_sales"`

	DateLabel string `json:"date_label"` // ej: "25 de agosto de 2026"
}

// TopProductDTO resumen de un producto para el widget de más vendidos.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// RecentSaleDTO venta reciente para el widget del dashboard.
type RecentSaleDTO struct {
	SaleID       string          `json:"sale_id"`
	BranchName   string          `json:"branch_name"`
	CustomerName string          `json:"customer_name,omitempty"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
	Date         string          `json:"date"`
}
