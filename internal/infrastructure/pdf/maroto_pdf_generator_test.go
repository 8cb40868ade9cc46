package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/infrastructure/pdf"
)

func TestGenerateReceiptPDF_ProduceUnDocumento(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	receipt := &dto.ReceiptResponse{
		SaleID:      "venta-123",
		Pharmacy:    "Farmacia El Amigo",
		BranchName:  "Sucursal Centro",
		BranchPhone: "300-555-0101",
		CashierName: "Carla",
		Date:        "2026-08-25 10:30",
		Items: []dto.SaleItemResponse{
			{ProductName: "Paracetamol 500mg", BatchCode: "L-2026", Quantity: decimal.NewFromInt(3),
				UnitPrice: decimal.RequireFromString("5.00"), LineTotal: decimal.RequireFromString("15.00")},
		},
		Total:        decimal.RequireFromString("15.00"),
		CashReceived: decimal.RequireFromString("20.00"),
		Change:       decimal.RequireFromString("5.00"),
		Currency:     "$",
	}

	out, err := g.GenerateReceiptPDF(context.Background(), receipt)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un documento PDF")
}
