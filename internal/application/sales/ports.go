package sales

import (
	"context"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye los
// repos del checkout: lotes (descuento con FOR UPDATE), ventas y clientes.
// Si fn retorna error el runner hace rollback: stock y ventas quedan intactos.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		batchRepo repository.StockBatchRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptPDFGenerator genera la representación PDF de un recibo de venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *dto.ReceiptResponse) ([]byte, error)
}

// ReceiptMailer envía el recibo al correo del cliente. pdf puede ser nil
// (correo solo de texto).
type ReceiptMailer interface {
	SendReceipt(to string, receipt *dto.ReceiptResponse, pdf []byte) error
}
