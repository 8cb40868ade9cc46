package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación de StockBatchRepository sobre PostgreSQL
// (usable con pool o tx). Los métodos *ForUpdate solo tienen sentido dentro
// de una transacción del TxRunner.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const stockBatchColumns = `id, product_id, branch_id, batch_code, expiry_date, quantity, unit_cost, supplier_id, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, product_id, branch_id, batch_code, expiry_date, quantity, unit_cost, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.BranchID, batch.BatchCode, batch.ExpiryDate,
		batch.Quantity, batch.UnitCost, nullIfEmpty(batch.SupplierID),
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	query := `SELECT ` + stockBatchColumns + ` FROM stock_batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByKey busca el lote por su llave natural. expiry nil matchea expiry_date NULL.
func (r *StockBatchRepo) GetByKey(productID, branchID, batchCode string, expiry *time.Time) (*entity.StockBatch, error) {
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE product_id = $1 AND branch_id = $2 AND batch_code = $3
		  AND expiry_date IS NOT DISTINCT FROM $4`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, branchID, batchCode, expiry))
}

// Update actualiza cantidad, costo y vencimiento del lote.
func (r *StockBatchRepo) Update(batch *entity.StockBatch) error {
	query := `
		UPDATE stock_batches
		SET quantity = $2, unit_cost = $3, expiry_date = $4, supplier_id = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Quantity, batch.UnitCost, batch.ExpiryDate, nullIfEmpty(batch.SupplierID),
	)
	if err != nil {
		return fmt.Errorf("update stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListForUpdate bloquea (SELECT FOR UPDATE) todos los lotes vendibles del
// producto en la sucursal, en orden FEFO (vencimiento más próximo primero,
// lotes sin vencimiento al final). Dos ventas concurrentes del mismo producto
// serializan aquí; la segunda ve las cantidades ya descontadas.
func (r *StockBatchRepo) ListForUpdate(productID, branchID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE product_id = $1 AND branch_id = $2 AND quantity > 0
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, branchID)
	if err != nil {
		return nil, fmt.Errorf("lock stock batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockBatch
	for rows.Next() {
		b, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetForUpdate bloquea un lote puntual por ID (ajustes manuales).
func (r *StockBatchRepo) GetForUpdate(id string) (*entity.StockBatch, error) {
	query := `SELECT ` + stockBatchColumns + ` FROM stock_batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByProduct lista los lotes de un producto ordenados por vencimiento.
// branchID vacío = todas las sucursales.
func (r *StockBatchRepo) ListByProduct(productID, branchID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE product_id = $1`
	args := []any{productID}
	if branchID != "" {
		query += ` AND branch_id = $2`
		args = append(args, branchID)
	}
	query += ` ORDER BY expiry_date ASC NULLS LAST, created_at ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockBatch
	for rows.Next() {
		b, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// TotalQuantity suma las cantidades de todos los lotes del producto.
// branchID vacío = todas las sucursales. COALESCE: sin lotes devuelve cero.
func (r *StockBatchRepo) TotalQuantity(productID, branchID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_batches WHERE product_id = $1`
	args := []any{productID}
	if branchID != "" {
		query += ` AND branch_id = $2`
		args = append(args, branchID)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total quantity: %w", err)
	}
	return total, nil
}

func (r *StockBatchRepo) scanOne(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	var supplierID *string
	err := row.Scan(&b.ID, &b.ProductID, &b.BranchID, &b.BatchCode, &b.ExpiryDate,
		&b.Quantity, &b.UnitCost, &supplierID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	if supplierID != nil {
		b.SupplierID = *supplierID
	}
	return &b, nil
}

func (r *StockBatchRepo) scanRow(rows pgx.Rows) (*entity.StockBatch, error) {
	var b entity.StockBatch
	var supplierID *string
	if err := rows.Scan(&b.ID, &b.ProductID, &b.BranchID, &b.BatchCode, &b.ExpiryDate,
		&b.Quantity, &b.UnitCost, &supplierID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan stock batch: %w", err)
	}
	if supplierID != nil {
		b.SupplierID = *supplierID
	}
	return &b, nil
}
