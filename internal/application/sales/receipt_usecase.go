package sales

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

// ReceiptConfig datos fijos del encabezado del recibo.
type ReceiptConfig struct {
	Pharmacy string // nombre comercial de la farmacia
	Currency string // p.ej. "COP"
}

// ReceiptUseCase compone el recibo de una venta (objeto de valor, nunca
// almacenado) y lo entrega en JSON, PDF o correo.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	batchRepo    repository.StockBatchRepository
	generator    ReceiptPDFGenerator // nil: sin PDF (correo solo texto)
	mailer       ReceiptMailer       // nil: correo deshabilitado
	config       ReceiptConfig
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	batchRepo repository.StockBatchRepository,
	generator ReceiptPDFGenerator,
	mailer ReceiptMailer,
	config ReceiptConfig,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		batchRepo:    batchRepo,
		generator:    generator,
		mailer:       mailer,
		config:       config,
	}
}

// BuildReceipt arma el recibo completo de una venta ya persistida.
func (uc *ReceiptUseCase) BuildReceipt(ctx context.Context, saleID string) (*dto.ReceiptResponse, error) {
	// ── 1. Cargar venta y líneas ──────────────────────────────────────────────
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, fmt.Errorf("recibo: obtener líneas: %w", err)
	}

	// ── 2. Enriquecer con nombres de producto y códigos de lote ───────────────
	lines := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		name := "Producto " + it.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(it.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		batchCode := ""
		if batch, bErr := uc.batchRepo.GetByID(it.StockBatchID); bErr == nil && batch != nil {
			batchCode = batch.BatchCode
		}
		lines = append(lines, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: name,
			BatchCode:   batchCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}

	// ── 3. Encabezado: sucursal, cajero, cliente ──────────────────────────────
	branchName, branchPhone := "", ""
	if branch, bErr := uc.branchRepo.GetByID(sale.BranchID); bErr == nil && branch != nil {
		branchName = branch.Name
		branchPhone = branch.Phone
	}
	cashierName := ""
	if cashier, cErr := uc.userRepo.GetByID(sale.CashierID); cErr == nil && cashier != nil {
		cashierName = cashier.Name
	}
	customerName := ""
	if sale.CustomerID != "" {
		if customer, cErr := uc.customerRepo.GetByID(sale.CustomerID); cErr == nil && customer != nil {
			customerName = customer.Name
		}
	}

	return &dto.ReceiptResponse{
		SaleID:       sale.ID,
		Pharmacy:     uc.config.Pharmacy,
		BranchName:   branchName,
		BranchPhone:  branchPhone,
		CashierName:  cashierName,
		CustomerName: customerName,
		Date:         sale.Date.Format("2006-01-02 15:04"),
		Items:        lines,
		Total:        sale.Total,
		CashReceived: sale.CashReceived,
		Change:       sale.Change(),
		Currency:     uc.config.Currency,
	}, nil
}

// DownloadReceiptPDF genera el PDF del recibo para descarga.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	receipt, err := uc.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if uc.generator == nil {
		return nil, "", domain.ErrInvalidInput
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación de PDF fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", saleID), nil
}

// SendReceiptAsync envía el recibo por correo en una goroutine independiente,
// desacoplada del ciclo HTTP. El fallo de envío se registra y se descarta:
// nunca afecta una venta ya confirmada.
func (uc *ReceiptUseCase) SendReceiptAsync(saleID, email string) {
	go uc.sendReceipt(saleID, email)
}

func (uc *ReceiptUseCase) sendReceipt(saleID, email string) {
	if uc.mailer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	receipt, err := uc.BuildReceipt(ctx, saleID)
	if err != nil {
		log.Printf("[MAIL][%s] no se pudo armar el recibo: %v", saleID, err)
		return
	}
	var pdf []byte
	if uc.generator != nil {
		if pdf, err = uc.generator.GenerateReceiptPDF(ctx, receipt); err != nil {
			log.Printf("[MAIL][%s] PDF del recibo falló, se envía solo texto: %v", saleID, err)
			pdf = nil
		}
	}
	if err := uc.mailer.SendReceipt(email, receipt, pdf); err != nil {
		log.Printf("[MAIL][%s] no se pudo enviar el recibo a %s: %v", saleID, email, err)
		return
	}
	log.Printf("[MAIL][%s] recibo enviado a %s", saleID, email)
}
