package reports

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

// exportMaxSales tope de ventas incluidas en la exportación XML.
const exportMaxSales = 10000

// ExportUseCase genera los archivos descargables del reporte de ventas:
// libro de Excel para revisión manual y XML plano para sistemas contables.
type ExportUseCase struct {
	reporter   *ReporterUseCase
	saleRepo   repository.SaleRepository
	reportRepo repository.ReportRepository
}

// NewExportUseCase crea el caso de uso de exportaciones.
func NewExportUseCase(reporter *ReporterUseCase, saleRepo repository.SaleRepository, reportRepo repository.ReportRepository) *ExportUseCase {
	return &ExportUseCase{reporter: reporter, saleRepo: saleRepo, reportRepo: reportRepo}
}

// SalesXLSX arma el libro: hoja "Resumen" con totales y serie diaria, hoja
// "Por producto" con el desglose. Devuelve el archivo y el nombre sugerido
// para el Content-Disposition de la descarga.
func (uc *ExportUseCase) SalesXLSX(ctx context.Context, req dto.DateRangeRequest) ([]byte, string, error) {
	report, err := uc.reporter.SalesReport(ctx, req, true)
	if err != nil {
		return nil, "", err
	}

	file := xlsx.NewFile()

	resumen, err := file.AddSheet("Resumen")
	if err != nil {
		return nil, "", fmt.Errorf("export xlsx: %w", err)
	}
	addKV := func(label, value string) {
		row := resumen.AddRow()
		row.AddCell().SetString(label)
		row.AddCell().SetString(value)
	}
	addKV("Período", rangeLabel(report.From, report.To))
	addKV("Ingresos", report.Revenue.StringFixed(2))
	addKV("Costo de lo vendido", report.COGS.StringFixed(2))
	addKV("Utilidad", report.Profit.StringFixed(2))
	addKV("Unidades vendidas", report.ItemsSold.String())

	row := resumen.AddRow()
	row.AddCell().SetString("Ventas")
	row.AddCell().SetInt(report.SaleCount)
	addKV("Rotación de inventario", report.InventoryTurnover.String())

	resumen.AddRow()
	header := resumen.AddRow()
	for _, h := range []string{"Fecha", "Ingresos", "Utilidad"} {
		header.AddCell().SetString(h)
	}
	for _, p := range report.Daily {
		row := resumen.AddRow()
		row.AddCell().SetString(p.Date)
		row.AddCell().SetString(p.Revenue.StringFixed(2))
		row.AddCell().SetString(p.Profit.StringFixed(2))
	}

	porProducto, err := file.AddSheet("Por producto")
	if err != nil {
		return nil, "", fmt.Errorf("export xlsx: %w", err)
	}
	header = porProducto.AddRow()
	for _, h := range []string{"Producto", "Apertura", "Vendido", "Cierre", "Ingresos", "Utilidad", "Rotación"} {
		header.AddCell().SetString(h)
	}
	for _, r := range report.ByProduct {
		row := porProducto.AddRow()
		row.AddCell().SetString(r.ProductName)
		row.AddCell().SetString(r.OpeningQty.String())
		row.AddCell().SetString(r.UnitsSold.String())
		row.AddCell().SetString(r.ClosingQty.String())
		row.AddCell().SetString(r.Revenue.StringFixed(2))
		row.AddCell().SetString(r.Profit.StringFixed(2))
		row.AddCell().SetString(r.Turnover.String())
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("export xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), exportFilename("ventas", report.From, report.To) + ".xlsx", nil
}

// SalesXML exporta las ventas del rango como documento XML con las líneas
// anidadas por venta, el formato de intercambio con el sistema contable.
func (uc *ExportUseCase) SalesXML(ctx context.Context, req dto.DateRangeRequest) ([]byte, string, error) {
	rng, err := ResolveRange(req, time.Now())
	if err != nil {
		return nil, "", err
	}

	sales, err := uc.saleRepo.ListByBranch(req.BranchID, rng.From, rng.To, exportMaxSales, 0)
	if err != nil {
		return nil, "", fmt.Errorf("export xml: listar ventas: %w", err)
	}

	// Los nombres de producto del período salen de una sola consulta agregada.
	byProduct, err := uc.reportRepo.GetSalesByProduct(ctx, req.BranchID, rng.From, rng.To, 0)
	if err != nil {
		return nil, "", fmt.Errorf("export xml: productos del período: %w", err)
	}
	names := make(map[string]string, len(byProduct))
	for _, p := range byProduct {
		names[p.ProductID] = p.ProductName
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ventas")
	root.CreateAttr("desde", rng.FromLabel())
	root.CreateAttr("hasta", rng.ToLabel())
	if req.BranchID != "" {
		root.CreateAttr("sucursal", req.BranchID)
	}
	root.CreateAttr("generado", time.Now().Format(time.RFC3339))

	total := decimal.Zero
	for _, sale := range sales {
		el := root.CreateElement("venta")
		el.CreateAttr("id", sale.ID)
		el.CreateAttr("fecha", sale.Date.Format(time.RFC3339))
		el.CreateAttr("total", sale.Total.StringFixed(2))
		if sale.CustomerID != "" {
			el.CreateAttr("cliente", sale.CustomerID)
		}

		items, err := uc.saleRepo.GetItemsBySaleID(sale.ID)
		if err != nil {
			return nil, "", fmt.Errorf("export xml: líneas de venta %s: %w", sale.ID, err)
		}
		for _, item := range items {
			li := el.CreateElement("linea")
			li.CreateAttr("producto_id", item.ProductID)
			li.CreateAttr("cantidad", item.Quantity.String())
			li.CreateAttr("precio_unitario", item.UnitPrice.StringFixed(2))
			li.CreateAttr("total", item.LineTotal.StringFixed(2))
			li.SetText(names[item.ProductID])
		}
		total = total.Add(sale.Total)
	}
	root.CreateAttr("total", total.StringFixed(2))
	root.CreateAttr("numero_ventas", strconv.Itoa(len(sales)))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("export xml: serializar: %w", err)
	}
	return out, exportFilename("ventas", rng.FromLabel(), rng.ToLabel()) + ".xml", nil
}

// exportFilename nombre sugerido del archivo descargado, sin extensión.
func exportFilename(prefix, from, to string) string {
	if from == "" {
		from = "historico"
	}
	return fmt.Sprintf("%s_%s_a_%s", prefix, from, to)
}

// rangeLabel etiqueta legible del período para la hoja de resumen.
func rangeLabel(from, to string) string {
	if from == "" {
		return "hasta " + to
	}
	return from + " a " + to
}
