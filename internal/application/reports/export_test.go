package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/reports"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

// exportSaleRepo sirve ventas enlatadas con sus líneas; gotLimit captura el
// tope pedido al listado.
type exportSaleRepo struct {
	sales    []*entity.Sale
	items    map[string][]*entity.SaleItem
	gotLimit int
	err      error
}

func (r *exportSaleRepo) Create(*entity.Sale) error            { return nil }
func (r *exportSaleRepo) CreateItem(*entity.SaleItem) error    { return nil }
func (r *exportSaleRepo) GetByID(string) (*entity.Sale, error) { return nil, nil }

func (r *exportSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	return r.items[saleID], r.err
}

func (r *exportSaleRepo) ListByBranch(_ string, _, _ time.Time, limit, _ int) ([]*entity.Sale, error) {
	r.gotLimit = limit
	return r.sales, r.err
}

// ──────────────────────────────────────────────────────────────────────────────
// TestSalesXLSX_LibroConResumenYDesglose verifica que la exportación produce un
// xlsx que Excel puede abrir: hoja "Resumen" con los totales del período y hoja
// "Por producto" con una fila por producto vendido, más el nombre de archivo
// que arma el Content-Disposition de la descarga.
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesXLSX_LibroConResumenYDesglose(t *testing.T) {
	repo := &fakeReportRepo{
		summary: repository.SalesSummaryResult{Revenue: dec(35), Profit: dec(21), ItemsSold: dec(5), SaleCount: 2},
		byProduct: []repository.ProductSalesResult{
			{ProductID: "p1", ProductName: "Paracetamol 500mg", UnitsSold: dec(3), Revenue: dec(15), COGS: dec(6)},
		},
		snapshot: []repository.ProductStockSnapshot{
			{ProductID: "p1", ProductName: "Paracetamol 500mg", ClosingQty: dec(7), ClosingCost: dec(14)},
		},
		daily: []repository.DailyPointResult{
			{Day: day(2026, 3, 15), Revenue: dec(35), Profit: dec(21)},
		},
		invCost: dec(93),
	}
	uc := reports.NewExportUseCase(reports.NewReporterUseCase(repo), &exportSaleRepo{}, repo)

	out, filename, err := uc.SalesXLSX(context.Background(), dto.DateRangeRequest{From: "2026-03-01", To: "2026-03-10"})

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "ventas_2026-03-01_a_2026-03-10.xlsx", filename)

	book, err := xlsx.OpenBinary(out)
	require.NoError(t, err, "la salida debe ser un libro xlsx válido")
	resumen, ok := book.Sheet["Resumen"]
	require.True(t, ok, "falta la hoja Resumen")
	porProducto, ok := book.Sheet["Por producto"]
	require.True(t, ok, "falta la hoja Por producto")

	cell, err := resumen.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "35.00", cell.String(), "la segunda fila del resumen lleva los ingresos")

	cell, err = porProducto.Cell(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", cell.String(), "primera fila de datos del desglose")
}

func TestSalesXML_DocumentoConVentasYLineasAnidadas(t *testing.T) {
	saleRepo := &exportSaleRepo{
		sales: []*entity.Sale{
			{ID: "s1", BranchID: "b1", Date: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), Total: dec(15), CustomerID: "c1"},
			{ID: "s2", BranchID: "b1", Date: time.Date(2026, 3, 15, 16, 30, 0, 0, time.UTC), Total: dec(20)},
		},
		items: map[string][]*entity.SaleItem{
			"s1": {{SaleID: "s1", ProductID: "p1", Quantity: dec(3), UnitPrice: dec(5), LineTotal: dec(15)}},
			"s2": {{SaleID: "s2", ProductID: "p2", Quantity: dec(2), UnitPrice: dec(10), LineTotal: dec(20)}},
		},
	}
	repo := &fakeReportRepo{byProduct: []repository.ProductSalesResult{
		{ProductID: "p1", ProductName: "Paracetamol 500mg"},
		{ProductID: "p2", ProductName: "Amoxicilina 500mg"},
	}}
	uc := reports.NewExportUseCase(reports.NewReporterUseCase(repo), saleRepo, repo)

	out, filename, err := uc.SalesXML(context.Background(), dto.DateRangeRequest{From: "2026-03-15", To: "2026-03-15"})

	require.NoError(t, err)
	assert.Equal(t, "ventas_2026-03-15_a_2026-03-15.xml", filename)
	assert.Equal(t, 10000, saleRepo.gotLimit, "la exportación se acota para no armar archivos gigantes")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "la salida debe ser XML bien formado")

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "ventas", root.Tag)
	assert.Equal(t, "35.00", root.SelectAttrValue("total", ""), "total del documento = 15 + 20")
	assert.Equal(t, "2", root.SelectAttrValue("numero_ventas", ""))
	assert.Equal(t, "2026-03-15", root.SelectAttrValue("desde", ""))
	assert.Equal(t, "2026-03-15", root.SelectAttrValue("hasta", ""))

	elems := root.SelectElements("venta")
	require.Len(t, elems, 2)
	assert.Equal(t, "15.00", elems[0].SelectAttrValue("total", ""))
	assert.Equal(t, "c1", elems[0].SelectAttrValue("cliente", ""))
	assert.Empty(t, elems[1].SelectAttrValue("cliente", ""), "la venta anónima va sin cliente")

	lineas := elems[0].SelectElements("linea")
	require.Len(t, lineas, 1)
	assert.Equal(t, "p1", lineas[0].SelectAttrValue("producto_id", ""))
	assert.Equal(t, "3", lineas[0].SelectAttrValue("cantidad", ""))
	assert.Equal(t, "5.00", lineas[0].SelectAttrValue("precio_unitario", ""))
	assert.Equal(t, "Paracetamol 500mg", lineas[0].Text(), "la línea lleva el nombre del producto como texto")
}

func TestSalesXML_PropagaErrorDeDatos(t *testing.T) {
	saleRepo := &exportSaleRepo{err: errors.New("conexión perdida")}
	repo := &fakeReportRepo{}
	uc := reports.NewExportUseCase(reports.NewReporterUseCase(repo), saleRepo, repo)

	_, _, err := uc.SalesXML(context.Background(), dto.DateRangeRequest{Preset: "today"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listar ventas")
}
