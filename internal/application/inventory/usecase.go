package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockUseCase gestiona el stock por lote: ingresos de mercancía, ajustes
// manuales y consultas. Los cambios corren dentro de una transacción con
// bloqueo de fila (SELECT FOR UPDATE) y dejan rastro en stock_movements.
type StockUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	supplierRepo repository.SupplierRepository
	batchRepo    repository.StockBatchRepository
	movementRepo repository.StockMovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	supplierRepo repository.SupplierRepository,
	batchRepo repository.StockBatchRepository,
	movementRepo repository.StockMovementRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		supplierRepo: supplierRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
	}
}

// ReceiveStock registra un ingreso de mercancía. Si ya existe un lote con la
// misma llave natural (producto, sucursal, código, vencimiento) suma la
// cantidad y toma el costo del ingreso más reciente; si no, crea el lote.
// Siempre deja un movimiento RECEIVE.
func (uc *StockUseCase) ReceiveStock(ctx context.Context, userID string, in dto.ReceiveStockRequest) (*dto.StockBatchResponse, error) {
	if in.ProductID == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad a ingresar debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
	}

	expiry, err := parseExpiry(in.ExpiryDate)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil || supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var batch *entity.StockBatch

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		existing, err := batchRepo.GetByKey(in.ProductID, in.BranchID, in.BatchCode, expiry)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Quantity = existing.Quantity.Add(in.Quantity)
			existing.UnitCost = in.UnitCost
			if in.SupplierID != "" {
				existing.SupplierID = in.SupplierID
			}
			existing.UpdatedAt = now
			if err := batchRepo.Update(existing); err != nil {
				return err
			}
			batch = existing
		} else {
			batch = &entity.StockBatch{
				ID:         uuid.New().String(),
				ProductID:  in.ProductID,
				BranchID:   in.BranchID,
				BatchCode:  in.BatchCode,
				ExpiryDate: expiry,
				Quantity:   in.Quantity,
				UnitCost:   in.UnitCost,
				SupplierID: in.SupplierID,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := batchRepo.Create(batch); err != nil {
				return err
			}
		}

		return movementRepo.Create(&entity.StockMovement{
			ID:           uuid.New().String(),
			StockBatchID: batch.ID,
			ProductID:    in.ProductID,
			BranchID:     in.BranchID,
			Type:         entity.MovementTypeReceive,
			Quantity:     in.Quantity,
			UnitCost:     in.UnitCost,
			Date:         now,
			CreatedBy:    userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// AdjustStock aplica una corrección manual sobre un lote puntual. Quantity es
// el delta firmado; un ajuste a la baja mayor que la existencia del lote se
// rechaza. El motivo es obligatorio: el ajuste es rastro de auditoría.
func (uc *StockUseCase) AdjustStock(ctx context.Context, userID string, in dto.AdjustStockRequest) (*dto.StockBatchResponse, error) {
	if in.StockBatchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: el ajuste requiere un motivo", domain.ErrInvalidInput)
	}

	now := time.Now()
	var batch *entity.StockBatch

	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		locked, err := batchRepo.GetForUpdate(in.StockBatchID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		newQty := locked.Quantity.Add(in.Quantity)
		if newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		locked.Quantity = newQty
		locked.UpdatedAt = now
		if err := batchRepo.Update(locked); err != nil {
			return err
		}
		batch = locked

		return movementRepo.Create(&entity.StockMovement{
			ID:           uuid.New().String(),
			StockBatchID: locked.ID,
			ProductID:    locked.ProductID,
			BranchID:     locked.BranchID,
			Type:         entity.MovementTypeAdjust,
			Quantity:     in.Quantity,
			UnitCost:     locked.UnitCost,
			Reason:       in.Reason,
			Date:         now,
			CreatedBy:    userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// ProductStock devuelve el stock de un producto desglosado por lote.
// branchID vacío = todas las sucursales.
func (uc *StockUseCase) ProductStock(productID, branchID string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	batches, err := uc.batchRepo.ListByProduct(productID, branchID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductStockResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Total:       decimal.Zero,
		Batches:     make([]*dto.StockBatchResponse, 0, len(batches)),
	}
	for _, b := range batches {
		resp.Total = resp.Total.Add(b.Quantity)
		resp.Batches = append(resp.Batches, toBatchResponse(b))
	}
	return resp, nil
}

// ListMovements lista el rastro de ingresos y ajustes de un producto.
func (uc *StockUseCase) ListMovements(productID, branchID string, from, to *time.Time, page dto.PageRequest) ([]*dto.StockMovementResponse, error) {
	page.DefaultPage()

	var (
		movements []*entity.StockMovement
		err       error
	)
	if productID != "" {
		movements, err = uc.movementRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	} else {
		movements, err = uc.movementRepo.ListByBranch(branchID, from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, &dto.StockMovementResponse{
			ID:           m.ID,
			StockBatchID: m.StockBatchID,
			ProductID:    m.ProductID,
			BranchID:     m.BranchID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			UnitCost:     m.UnitCost,
			Reason:       m.Reason,
			Date:         m.Date.Format(time.RFC3339),
			CreatedBy:    m.CreatedBy,
		})
	}
	return out, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func parseExpiry(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de vencimiento inválida %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

func toBatchResponse(b *entity.StockBatch) *dto.StockBatchResponse {
	resp := &dto.StockBatchResponse{
		ID:         b.ID,
		ProductID:  b.ProductID,
		BranchID:   b.BranchID,
		BatchCode:  b.BatchCode,
		Quantity:   b.Quantity,
		UnitCost:   b.UnitCost,
		SupplierID: b.SupplierID,
	}
	if b.ExpiryDate != nil {
		resp.ExpiryDate = b.ExpiryDate.Format("2006-01-02")
	}
	return resp
}
