package sales

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

// RecordSaleUseCase registra una venta de mostrador: valida precios, elige lote
// por línea (FEFO), descuenta stock y persiste venta + líneas en una sola
// transacción. Todo-o-nada: si cualquier línea falla no se persiste nada.
type RecordSaleUseCase struct {
	txRunner     SalesTxRunner
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	userRepo     repository.UserRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	batchRepo    repository.StockBatchRepository
	receipts     *ReceiptUseCase // nil deshabilita el correo post-venta
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(
	txRunner SalesTxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	batchRepo repository.StockBatchRepository,
	receipts *ReceiptUseCase,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		userRepo:     userRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		batchRepo:    batchRepo,
		receipts:     receipts,
	}
}

// RecordSale registra la venta. branchID y cashierID salen del token, nunca del body.
//
// Reglas por línea:
//   - precio unitario: el del request, o el precio vigente del producto si viene en cero;
//   - piso: no puede bajar del precio mínimo del producto (ErrInvalidInput);
//   - lotes FEFO: la línea se reparte entre los lotes de la sucursal empezando
//     por el de vencimiento más próximo; si la suma disponible no cubre la
//     cantidad pedida, InsufficientStockError nombra el producto;
//   - sin pérdida: el precio no puede bajar del costo de ningún lote usado (ErrInvalidInput).
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, branchID, cashierID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if branchID == "" || cashierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}

	// Validar productos y resolver precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	prices := make([]decimal.Decimal, len(in.Items))
	var total decimal.Decimal
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product

		price := item.UnitPrice
		if price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if price.IsZero() {
			price = product.Price
		}
		if price.LessThan(product.MinPrice) {
			return nil, fmt.Errorf("%w: el precio de %s no puede bajar del mínimo %s",
				domain.ErrInvalidInput, product.Name, product.MinPrice.StringFixed(2))
		}
		prices[i] = price
		total = total.Add(item.Quantity.Mul(price))
	}

	cashReceived := in.CashReceived
	if cashReceived.IsZero() {
		cashReceived = total // pago exacto
	}
	if cashReceived.LessThan(total) {
		return nil, fmt.Errorf("%w: efectivo recibido %s menor que el total %s",
			domain.ErrInvalidInput, cashReceived.StringFixed(2), total.StringFixed(2))
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var items []*entity.SaleItem
	var customer *entity.Customer
	batchCodes := make(map[string]string) // StockBatchID -> BatchCode para la respuesta

	err = uc.txRunner.RunSale(ctx, func(
		batchRepo repository.StockBatchRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// 1) Cliente: buscar por teléfono o crear, dentro de la misma transacción
		if in.Customer != nil && in.Customer.Phone != "" {
			existing, err := customerRepo.GetByPhone(in.Customer.Phone)
			if err != nil {
				return err
			}
			if existing == nil {
				existing = &entity.Customer{
					ID:        uuid.New().String(),
					Name:      in.Customer.Name,
					Phone:     in.Customer.Phone,
					Email:     in.Customer.Email,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := customerRepo.Create(existing); err != nil {
					return err
				}
			}
			customer = existing
		}

		// 2) Por cada línea: bloquear los lotes del producto en la sucursal (FEFO)
		// y repartir el descuento entre ellos hasta cubrir la cantidad pedida.
		// ListForUpdate ve los descuentos de las líneas anteriores de esta misma venta.
		for i := range in.Items {
			item := &in.Items[i]
			product := productsByID[item.ProductID]

			batches, err := batchRepo.ListForUpdate(item.ProductID, branchID)
			if err != nil {
				return err
			}
			var available decimal.Decimal
			for _, b := range batches {
				available = available.Add(b.Quantity)
			}
			if available.LessThan(item.Quantity) {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   available,
				}
			}

			remaining := item.Quantity
			for _, batch := range batches {
				if !remaining.GreaterThan(decimal.Zero) {
					break
				}
				if prices[i].LessThan(batch.UnitCost) {
					return fmt.Errorf("%w: no se puede vender %s a pérdida (precio %s < costo %s)",
						domain.ErrInvalidInput, product.Name,
						prices[i].StringFixed(2), batch.UnitCost.StringFixed(2))
				}
				take := decimal.Min(remaining, batch.Quantity)
				batch.Quantity = batch.Quantity.Sub(take)
				batch.UpdatedAt = now
				if err := batchRepo.Update(batch); err != nil {
					return err
				}
				batchCodes[batch.ID] = batch.BatchCode

				// Una fila de venta por cada lote usado: trazabilidad del lote en el recibo.
				items = append(items, &entity.SaleItem{
					ID:           uuid.New().String(),
					SaleID:       saleID,
					ProductID:    item.ProductID,
					StockBatchID: batch.ID,
					Quantity:     take,
					UnitPrice:    prices[i],
					LineTotal:    take.Mul(prices[i]),
				})
				remaining = remaining.Sub(take)
			}
		}

		// 3) Cabecera y líneas
		customerID := ""
		if customer != nil {
			customerID = customer.ID
		}
		sale = &entity.Sale{
			ID:           saleID,
			BranchID:     branchID,
			CashierID:    cashierID,
			CustomerID:   customerID,
			Date:         now,
			Total:        total,
			CashReceived: cashReceived,
			Notes:        in.Notes,
			CreatedAt:    now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Correo del recibo: mejor esfuerzo, nunca afecta la venta ya confirmada
	if uc.receipts != nil && customer != nil && customer.Email != "" {
		uc.receipts.SendReceiptAsync(sale.ID, customer.Email)
	}

	cashierName := ""
	if cashier, err := uc.userRepo.GetByID(cashierID); err == nil && cashier != nil {
		cashierName = cashier.Name
	}
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	names := make(map[string]string, len(productsByID))
	for id, p := range productsByID {
		names[id] = p.Name
	}
	return toSaleResponse(sale, items, names, batchCodes, branch.Name, cashierName, customerName), nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *RecordSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	batchCodes := make(map[string]string)
	for _, it := range items {
		if _, ok := names[it.ProductID]; !ok {
			name := "Producto " + it.ProductID // fallback
			if product, pErr := uc.productRepo.GetByID(it.ProductID); pErr == nil && product != nil {
				name = product.Name
			}
			names[it.ProductID] = name
		}
		if _, ok := batchCodes[it.StockBatchID]; !ok {
			if batch, bErr := uc.batchRepo.GetByID(it.StockBatchID); bErr == nil && batch != nil {
				batchCodes[it.StockBatchID] = batch.BatchCode
			}
		}
	}

	branchName := ""
	if branch, err := uc.branchRepo.GetByID(sale.BranchID); err == nil && branch != nil {
		branchName = branch.Name
	}
	cashierName := ""
	if cashier, err := uc.userRepo.GetByID(sale.CashierID); err == nil && cashier != nil {
		cashierName = cashier.Name
	}
	customerName := ""
	if sale.CustomerID != "" {
		if c, err := uc.customerRepo.GetByID(sale.CustomerID); err == nil && c != nil {
			customerName = c.Name
		}
	}
	return toSaleResponse(sale, items, names, batchCodes, branchName, cashierName, customerName), nil
}

// ListSales lista cabeceras de venta del rango [from, to), sin líneas.
// branchID vacío = todas las sucursales.
func (uc *RecordSaleUseCase) ListSales(ctx context.Context, branchID string, from, to time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByBranch(branchID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, &dto.SaleResponse{
			ID:           s.ID,
			BranchID:     s.BranchID,
			Date:         s.Date.Format(time.RFC3339),
			Total:        s.Total,
			CashReceived: s.CashReceived,
			Change:       s.Change(),
			Notes:        s.Notes,
			Items:        []dto.SaleItemResponse{},
		})
	}
	return &dto.SaleListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toSaleResponse(
	sale *entity.Sale,
	items []*entity.SaleItem,
	productNames, batchCodes map[string]string,
	branchName, cashierName, customerName string,
) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           sale.ID,
		BranchID:     sale.BranchID,
		BranchName:   branchName,
		CashierName:  cashierName,
		CustomerName: customerName,
		Date:         sale.Date.Format(time.RFC3339),
		Total:        sale.Total,
		CashReceived: sale.CashReceived,
		Change:       sale.Change(),
		Notes:        sale.Notes,
		Items:        make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: productNames[it.ProductID],
			BatchCode:   batchCodes[it.StockBatchID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return resp
}
