package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes, dashboard y alertas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSalesSummary agrega ingresos, utilidad, unidades y número de ventas del período.
// Fórmula de utilidad: line_total - (qty × unit_cost del lote que sirvió la línea).
// Usa COALESCE para devolver ceros si el rango no tiene ventas.
func (r *ReportRepo) GetSalesSummary(
	ctx context.Context,
	branchID string,
	start, end time.Time,
) (repository.SalesSummaryResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(i.line_total), 0)                               AS revenue,
	    COALESCE(SUM(i.line_total - i.quantity * b.unit_cost), 0)    AS profit,
	    COALESCE(SUM(i.quantity), 0)                                 AS items_sold,
	    COUNT(DISTINCT s.id)                                         AS sale_count
	FROM sales s
	JOIN sale_items   i ON i.sale_id = s.id
	JOIN stock_batches b ON b.id     = i.stock_batch_id
	WHERE s.sale_date >= $2 AND s.sale_date < $3
	  AND ($1 = '' OR s.branch_id = $1)`

	var result repository.SalesSummaryResult
	err := r.pool.QueryRow(ctx, query, branchID, start, end).Scan(
		&result.Revenue, &result.Profit, &result.ItemsSold, &result.SaleCount,
	)
	if err != nil {
		return repository.SalesSummaryResult{}, fmt.Errorf("reports.GetSalesSummary: %w", err)
	}
	return result, nil
}

// GetSalesByProduct agrupa las ventas del período por producto, ordenadas por nombre.
// limit <= 0 devuelve todos los productos con ventas.
func (r *ReportRepo) GetSalesByProduct(
	ctx context.Context,
	branchID string,
	start, end time.Time,
	limit int,
) ([]repository.ProductSalesResult, error) {
	query := `
	SELECT
	    p.id                                        AS product_id,
	    p.name                                      AS product_name,
	    SUM(i.quantity)                             AS units_sold,
	    SUM(i.line_total)                           AS revenue,
	    SUM(i.quantity * b.unit_cost)               AS cogs
	FROM sale_items i
	JOIN sales        s ON s.id = i.sale_id
	JOIN products     p ON p.id = i.product_id
	JOIN stock_batches b ON b.id = i.stock_batch_id
	WHERE s.sale_date >= $2 AND s.sale_date < $3
	  AND ($1 = '' OR s.branch_id = $1)
	GROUP BY p.id, p.name
	ORDER BY p.name`
	args := []any{branchID, start, end}
	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.UnitsSold,
			&row.Revenue,
			&row.COGS,
		); err != nil {
			return nil, fmt.Errorf("reports.GetSalesByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los `limit` productos con más unidades vendidas en el período.
func (r *ReportRepo) GetTopProducts(
	ctx context.Context,
	branchID string,
	start, end time.Time,
	limit int,
) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    p.id                                        AS product_id,
	    p.name                                      AS product_name,
	    SUM(i.quantity)                             AS units_sold,
	    SUM(i.line_total)                           AS revenue,
	    SUM(i.quantity * b.unit_cost)               AS cogs
	FROM sale_items i
	JOIN sales        s ON s.id = i.sale_id
	JOIN products     p ON p.id = i.product_id
	JOIN stock_batches b ON b.id = i.stock_batch_id
	WHERE s.sale_date >= $2 AND s.sale_date < $3
	  AND ($1 = '' OR s.branch_id = $1)
	GROUP BY p.id, p.name
	ORDER BY units_sold DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, branchID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.UnitsSold,
			&row.Revenue,
			&row.COGS,
		); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts rows: %w", err)
	}
	if results == nil {
		results = []repository.ProductSalesResult{}
	}
	return results, nil
}

// GetStockSnapshot devuelve cantidades y costos actuales de los productos con
// ventas en el período (insumo del cálculo de rotación por producto).
// LEFT JOIN: un producto agotado aparece con cierre en cero.
func (r *ReportRepo) GetStockSnapshot(
	ctx context.Context,
	branchID string,
	start, end time.Time,
) ([]repository.ProductStockSnapshot, error) {
	const query = `
	SELECT
	    p.id                                        AS product_id,
	    p.name                                      AS product_name,
	    COALESCE(SUM(b.quantity), 0)                AS closing_qty,
	    COALESCE(SUM(b.quantity * b.unit_cost), 0)  AS closing_cost
	FROM products p
	LEFT JOIN stock_batches b ON b.product_id = p.id AND ($1 = '' OR b.branch_id = $1)
	WHERE p.id IN (
	    SELECT i.product_id
	    FROM sale_items i
	    JOIN sales s ON s.id = i.sale_id
	    WHERE s.sale_date >= $2 AND s.sale_date < $3
	      AND ($1 = '' OR s.branch_id = $1)
	)
	GROUP BY p.id, p.name`

	rows, err := r.pool.Query(ctx, query, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.GetStockSnapshot: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductStockSnapshot
	for rows.Next() {
		var row repository.ProductStockSnapshot
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.ClosingQty, &row.ClosingCost); err != nil {
			return nil, fmt.Errorf("reports.GetStockSnapshot scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetDailySeries devuelve un punto por día calendario del rango [start, end),
// con ceros en los días sin ventas (generate_series garantiza la densidad).
func (r *ReportRepo) GetDailySeries(
	ctx context.Context,
	branchID string,
	start, end time.Time,
) ([]repository.DailyPointResult, error) {
	const query = `
	WITH days AS (
	    SELECT generate_series($2::date, $3::date - 1, interval '1 day')::date AS day
	)
	SELECT
	    d.day,
	    COALESCE(SUM(i.line_total), 0)                               AS revenue,
	    COALESCE(SUM(i.line_total - i.quantity * b.unit_cost), 0)    AS profit
	FROM days d
	LEFT JOIN sales s        ON s.sale_date::date = d.day
	                        AND ($1 = '' OR s.branch_id = $1)
	LEFT JOIN sale_items i   ON i.sale_id = s.id
	LEFT JOIN stock_batches b ON b.id = i.stock_batch_id
	GROUP BY d.day
	ORDER BY d.day`

	rows, err := r.pool.Query(ctx, query, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.GetDailySeries: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyPointResult
	for rows.Next() {
		var row repository.DailyPointResult
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Profit); err != nil {
			return nil, fmt.Errorf("reports.GetDailySeries scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetInventoryCost devuelve el valor del inventario actual a costo.
func (r *ReportRepo) GetInventoryCost(ctx context.Context, branchID string) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(quantity * unit_cost), 0)
	FROM stock_batches
	WHERE ($1 = '' OR branch_id = $1)`

	var cost decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, branchID).Scan(&cost); err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetInventoryCost: %w", err)
	}
	return cost, nil
}

// ── Alertas ──────────────────────────────────────────────────────────────────

// GetLowStock lista lotes con cantidad en o bajo el umbral (incluye lotes en cero:
// un lote agotado también pide reposición).
func (r *ReportRepo) GetLowStock(
	ctx context.Context,
	branchID string,
	threshold decimal.Decimal,
) ([]repository.LowStockResult, error) {
	const query = `
	SELECT
	    b.id                                        AS batch_id,
	    b.product_id,
	    p.name                                      AS product_name,
	    br.name                                     AS branch_name,
	    b.batch_code,
	    b.quantity
	FROM stock_batches b
	JOIN products p  ON p.id  = b.product_id
	JOIN branches br ON br.id = b.branch_id
	WHERE b.quantity <= $2
	  AND ($1 = '' OR b.branch_id = $1)
	ORDER BY b.quantity ASC, p.name`

	rows, err := r.pool.Query(ctx, query, branchID, threshold)
	if err != nil {
		return nil, fmt.Errorf("reports.GetLowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockResult
	for rows.Next() {
		var row repository.LowStockResult
		if err := rows.Scan(&row.BatchID, &row.ProductID, &row.ProductName,
			&row.BranchName, &row.BatchCode, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.GetLowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetNearExpiry lista lotes con existencias que vencen dentro de `days` días.
// Excluye lotes sin fecha de vencimiento y lotes ya agotados.
func (r *ReportRepo) GetNearExpiry(
	ctx context.Context,
	branchID string,
	days int,
) ([]repository.NearExpiryResult, error) {
	const query = `
	SELECT
	    b.id                                        AS batch_id,
	    b.product_id,
	    p.name                                      AS product_name,
	    br.name                                     AS branch_name,
	    b.batch_code,
	    b.expiry_date,
	    b.quantity
	FROM stock_batches b
	JOIN products p  ON p.id  = b.product_id
	JOIN branches br ON br.id = b.branch_id
	WHERE b.expiry_date IS NOT NULL
	  AND b.expiry_date <= CURRENT_DATE + $2
	  AND b.quantity > 0
	  AND ($1 = '' OR b.branch_id = $1)
	ORDER BY b.expiry_date ASC`

	rows, err := r.pool.Query(ctx, query, branchID, days)
	if err != nil {
		return nil, fmt.Errorf("reports.GetNearExpiry: %w", err)
	}
	defer rows.Close()

	var results []repository.NearExpiryResult
	for rows.Next() {
		var row repository.NearExpiryResult
		if err := rows.Scan(&row.BatchID, &row.ProductID, &row.ProductName,
			&row.BranchName, &row.BatchCode, &row.ExpiryDate, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.GetNearExpiry scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetRecentSales devuelve las últimas `limit` ventas con sucursal y cliente.
func (r *ReportRepo) GetRecentSales(
	ctx context.Context,
	branchID string,
	limit int,
) ([]repository.RecentSaleResult, error) {
	const query = `
	SELECT
	    s.id                                                        AS sale_id,
	    br.name                                                     AS branch_name,
	    COALESCE(c.name, '')                                        AS customer_name,
	    s.total,
	    (SELECT COUNT(*) FROM sale_items i WHERE i.sale_id = s.id)  AS item_count,
	    s.sale_date
	FROM sales s
	JOIN branches br     ON br.id = s.branch_id
	LEFT JOIN customers c ON c.id = s.customer_id
	WHERE ($1 = '' OR s.branch_id = $1)
	ORDER BY s.sale_date DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetRecentSales: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentSaleResult
	for rows.Next() {
		var row repository.RecentSaleResult
		if err := rows.Scan(&row.SaleID, &row.BranchName, &row.CustomerName,
			&row.Total, &row.ItemCount, &row.Date); err != nil {
			return nil, fmt.Errorf("reports.GetRecentSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountProducts devuelve el tamaño del catálogo.
func (r *ReportRepo) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("reports.CountProducts: %w", err)
	}
	return count, nil
}
