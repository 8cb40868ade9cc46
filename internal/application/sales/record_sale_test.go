package sales_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/sales"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestRecordSale_DescuentaStockYCalculaTotal es el escenario de referencia del
// checkout: producto con 10 unidades, venta de 3 a $5.00.
//
// Debe dejar el lote en 7, registrar la venta con total 15.00 y una línea que
// captura lote, cantidad y precio unitario al momento de la venta. Si alguien
// rompe el descuento, el cálculo del total o la persistencia atómica, este
// test falla primero.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYCalculaTotal(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Paracetamol 500mg", 5.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 2.00, days(90))
	uc := newUC(store)

	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(3)}},
	})

	require.NoError(t, err, "la venta con stock suficiente debe registrarse")
	require.NotNil(t, resp)
	assert.True(t, resp.Total.Equal(dec(15)), "total = 3 × 5.00 = 15.00, fue %s", resp.Total)
	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(7)),
		"el lote debe quedar en 7, quedó en %s", store.batches["batch-1"].Quantity)

	require.Len(t, store.sales, 1, "debe persistirse exactamente una venta")
	require.Len(t, store.items, 1, "debe persistirse exactamente una línea")
	item := store.items[0]
	assert.Equal(t, "batch-1", item.StockBatchID, "la línea debe capturar el lote que la sirvió")
	assert.True(t, item.UnitPrice.Equal(dec(5)), "la línea captura el precio al momento de la venta")
	assert.True(t, item.LineTotal.Equal(dec(15)))
}

func TestRecordSale_RechazaPorStockInsuficiente(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Ibuprofeno 400mg", 8.00, 0)
	addBatch(store, "batch-1", "prod-1", 2, 3.00, days(90))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(5)}},
	})

	require.Error(t, err, "pedir 5 con stock 2 debe rechazarse")
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "el centinela debe hacer match via errors.Is")

	var insuff *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuff, "el error debe ser el tipo con detalle del producto")
	assert.Equal(t, "Ibuprofeno 400mg", insuff.ProductName, "el error nombra el producto ofensor")
	assert.True(t, insuff.Requested.Equal(dec(5)))
	assert.True(t, insuff.Available.Equal(dec(2)))

	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(2)),
		"el stock debe quedar intacto tras el rechazo")
	assert.Empty(t, store.sales, "no debe persistirse ninguna venta")
	assert.Empty(t, store.items, "no debe persistirse ninguna línea")
}

// TestRecordSale_TodoONada verifica la atomicidad multi-línea: si la segunda
// línea no tiene stock, la primera (que sí tenía) tampoco se descuenta.
func TestRecordSale_TodoONada(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Amoxicilina 500mg", 12.00, 0)
	addProduct(store, "prod-2", "Loratadina 10mg", 4.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 5.00, days(60))
	addBatch(store, "batch-2", "prod-2", 1, 1.00, days(60))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: dec(3)},
			{ProductID: "prod-2", Quantity: dec(4)},
		},
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(10)),
		"la primera línea debe revertirse: el lote quedó en %s", store.batches["batch-1"].Quantity)
	assert.True(t, store.batches["batch-2"].Quantity.Equal(dec(1)))
	assert.Empty(t, store.sales)
}

// ── Selección de lote (FEFO) ─────────────────────────────────────────────────

func TestRecordSale_FEFOEligeElLoteMasProximoAVencer(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Omeprazol 20mg", 6.00, 0)
	addBatch(store, "batch-lejano", "prod-1", 10, 2.00, days(180))
	addBatch(store, "batch-proximo", "prod-1", 10, 2.00, days(30))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(4)}},
	})

	require.NoError(t, err)
	assert.True(t, store.batches["batch-proximo"].Quantity.Equal(dec(6)),
		"debe descontar del lote que vence primero")
	assert.True(t, store.batches["batch-lejano"].Quantity.Equal(dec(10)),
		"el lote lejano no debe tocarse")
	assert.Equal(t, "batch-proximo", store.items[0].StockBatchID)
}

func TestRecordSale_FEFOLotesSinVencimientoAlFinal(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Alcohol antiséptico", 3.00, 0)
	addBatch(store, "batch-sin-fecha", "prod-1", 10, 1.00, nil)
	addBatch(store, "batch-con-fecha", "prod-1", 10, 1.00, days(45))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(2)}},
	})

	require.NoError(t, err)
	assert.Equal(t, "batch-con-fecha", store.items[0].StockBatchID,
		"un lote con vencimiento gana sobre uno sin fecha")
}

// TestRecordSale_ReparteLineaEntreLotes: una línea mayor que el lote más próximo
// a vencer se reparte entre varios lotes, agotando primero el que vence antes.
func TestRecordSale_ReparteLineaEntreLotes(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Vitamina C 1g", 2.50, 0)
	addBatch(store, "batch-1", "prod-1", 3, 1.00, days(30))
	addBatch(store, "batch-2", "prod-1", 4, 1.00, days(60))
	uc := newUC(store)

	// 7 unidades en total entre dos lotes; pedir 5 toma 3 del primero y 2 del segundo.
	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(5)}},
	})

	require.NoError(t, err, "stock repartido entre lotes debe alcanzar para la venta")
	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(0)), "el lote que vence primero se agota")
	assert.True(t, store.batches["batch-2"].Quantity.Equal(dec(2)), "el segundo lote aporta el resto")

	require.Len(t, store.items, 2, "una fila de venta por cada lote usado")
	assert.Equal(t, "batch-1", store.items[0].StockBatchID)
	assert.True(t, store.items[0].Quantity.Equal(dec(3)))
	assert.Equal(t, "batch-2", store.items[1].StockBatchID)
	assert.True(t, store.items[1].Quantity.Equal(dec(2)))
	assert.True(t, resp.Total.Equal(decF(12.50)), "total = 5 × 2.50 sin importar el reparto")
}

func TestRecordSale_RechazaSiLaSumaDeLotesNoAlcanza(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Vitamina C 1g", 2.50, 0)
	addBatch(store, "batch-1", "prod-1", 3, 1.00, days(30))
	addBatch(store, "batch-2", "prod-1", 4, 1.00, days(60))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(9)}},
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insuff *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuff)
	assert.True(t, insuff.Available.Equal(dec(7)), "el detalle reporta el total disponible entre lotes")
	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(3)), "nada se descuenta en el rechazo")
	assert.True(t, store.batches["batch-2"].Quantity.Equal(dec(4)))
}

// ── Reglas de precio ─────────────────────────────────────────────────────────

func TestRecordSale_RechazaPrecioBajoElMinimo(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Insulina glargina", 120.00, 95.00)
	addBatch(store, "batch-1", "prod-1", 10, 70.00, days(90))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(1), UnitPrice: dec(90)}},
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput, "precio 90 bajo el mínimo 95 debe rechazarse")
	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(10)), "el stock no debe tocarse")
	assert.Empty(t, store.sales)
}

func TestRecordSale_RechazaVentaAPerdida(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Jarabe para la tos", 9.00, 5.00)
	addBatch(store, "batch-1", "prod-1", 10, 6.50, days(90))
	uc := newUC(store)

	// 5.50 respeta el mínimo (5.00) pero está bajo el costo del lote (6.50).
	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(2), UnitPrice: decF(5.50)}},
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput, "vender bajo el costo del lote debe rechazarse")
	assert.True(t, store.batches["batch-1"].Quantity.Equal(dec(10)))
	assert.Empty(t, store.sales)
}

func TestRecordSale_PrecioPorDefectoEsElDelProducto(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Acetaminofén gotas", 7.25, 0)
	addBatch(store, "batch-1", "prod-1", 10, 3.00, days(90))
	uc := newUC(store)

	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(2)}},
	})

	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decF(14.50)), "total = 2 × 7.25 con el precio vigente del producto")
	assert.True(t, store.items[0].UnitPrice.Equal(decF(7.25)))
}

// ── Efectivo y vuelto ────────────────────────────────────────────────────────

func TestRecordSale_EfectivoYVuelto(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Suero oral", 5.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 2.00, days(90))
	uc := newUC(store)

	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		CashReceived: dec(20),
		Items:        []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(3)}},
	})

	require.NoError(t, err)
	assert.True(t, resp.Change.Equal(dec(5)), "vuelto = 20 − 15 = 5")
}

func TestRecordSale_EfectivoEnCeroAsumePagoExacto(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Suero oral", 5.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 2.00, days(90))
	uc := newUC(store)

	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(3)}},
	})

	require.NoError(t, err)
	assert.True(t, resp.CashReceived.Equal(dec(15)))
	assert.True(t, resp.Change.Equal(dec(0)))
}

func TestRecordSale_RechazaEfectivoInsuficiente(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Suero oral", 5.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 2.00, days(90))
	uc := newUC(store)

	_, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		CashReceived: dec(10),
		Items:        []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(3)}},
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput, "efectivo 10 < total 15 debe rechazarse")
}

// ── Cliente en caja ──────────────────────────────────────────────────────────

func TestRecordSale_CreaClientePorTelefono(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Losartán 50mg", 10.00, 0)
	addBatch(store, "batch-1", "prod-1", 20, 4.00, days(90))
	uc := newUC(store)

	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Customer: &dto.SaleCustomerRequest{Phone: "3001234567", Name: "Ana Pérez"},
		Items:    []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(1)}},
	})

	require.NoError(t, err)
	require.Len(t, store.customers, 1, "el cliente nuevo debe crearse en la misma transacción")
	assert.Equal(t, "Ana Pérez", resp.CustomerName)

	// Segunda venta con el mismo teléfono: reutiliza el cliente, no duplica.
	_, err = uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Customer: &dto.SaleCustomerRequest{Phone: "3001234567"},
		Items:    []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(1)}},
	})
	require.NoError(t, err)
	assert.Len(t, store.customers, 1, "el mismo teléfono no debe crear otro cliente")
}

func TestRecordSale_VentaAnonimaSinCliente(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Aspirina 100mg", 3.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 1.00, days(90))
	uc := newUC(store)

	resp, err := uc.RecordSale(context.Background(), branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(1)}},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.CustomerName)
	assert.Empty(t, store.customers)
	for _, s := range store.sales {
		assert.Empty(t, s.CustomerID, "la venta anónima no referencia cliente")
	}
}

// ── Validación de entradas ───────────────────────────────────────────────────

func TestRecordSale_ValidaEntradas(t *testing.T) {
	store := newStore()
	addProduct(store, "prod-1", "Gasa estéril", 2.00, 0)
	addBatch(store, "batch-1", "prod-1", 10, 0.50, days(90))
	uc := newUC(store)
	ctx := context.Background()

	_, err := uc.RecordSale(ctx, branchID, cashierID, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas debe rechazarse")

	_, err = uc.RecordSale(ctx, branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: dec(0)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe rechazarse")

	_, err = uc.RecordSale(ctx, branchID, cashierID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-inexistente", Quantity: dec(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente debe rechazarse")
}

// ── fakes ────────────────────────────────────────────────────────────────────

const (
	branchID  = "branch-1"
	cashierID = "user-1"
)

// fakeStore estado en memoria compartido por los fakes. El fakeTxRunner opera
// sobre un clon y solo lo vuelca al store si fn termina sin error, imitando el
// commit/rollback real.
type fakeStore struct {
	products  map[string]*entity.Product
	branches  map[string]*entity.Branch
	users     map[string]*entity.User
	batches   map[string]*entity.StockBatch
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	items     []*entity.SaleItem
}

func newStore() *fakeStore {
	s := &fakeStore{
		products:  map[string]*entity.Product{},
		branches:  map[string]*entity.Branch{},
		users:     map[string]*entity.User{},
		batches:   map[string]*entity.StockBatch{},
		customers: map[string]*entity.Customer{},
		sales:     map[string]*entity.Sale{},
	}
	s.branches[branchID] = &entity.Branch{ID: branchID, Name: "Sucursal Centro"}
	s.users[cashierID] = &entity.User{ID: cashierID, Name: "Carlos Rojas", Role: entity.RoleCashier, BranchID: branchID}
	return s
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		products:  s.products,
		branches:  s.branches,
		users:     s.users,
		batches:   make(map[string]*entity.StockBatch, len(s.batches)),
		customers: make(map[string]*entity.Customer, len(s.customers)),
		sales:     make(map[string]*entity.Sale, len(s.sales)),
		items:     append([]*entity.SaleItem(nil), s.items...),
	}
	for id, b := range s.batches {
		copia := *b
		c.batches[id] = &copia
	}
	for id, cu := range s.customers {
		c.customers[id] = cu
	}
	for id, sa := range s.sales {
		c.sales[id] = sa
	}
	return c
}

type fakeTxRunner struct{ store *fakeStore }

func (f *fakeTxRunner) RunSale(_ context.Context, fn func(
	batchRepo repository.StockBatchRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx := f.store.clone()
	if err := fn(&fakeBatchRepo{tx}, &fakeSaleRepo{tx}, &fakeCustomerRepo{tx}); err != nil {
		return err // rollback: el clon se descarta
	}
	*f.store = *tx // commit
	return nil
}

type fakeBatchRepo struct{ s *fakeStore }

func (r *fakeBatchRepo) Create(b *entity.StockBatch) error { r.s.batches[b.ID] = b; return nil }
func (r *fakeBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	return r.s.batches[id], nil
}
func (r *fakeBatchRepo) GetByKey(productID, branchID, batchCode string, expiry *time.Time) (*entity.StockBatch, error) {
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.BranchID == branchID && b.BatchCode == batchCode && sameExpiry(b.ExpiryDate, expiry) {
			return b, nil
		}
	}
	return nil, nil
}
func (r *fakeBatchRepo) Update(b *entity.StockBatch) error { r.s.batches[b.ID] = b; return nil }
func (r *fakeBatchRepo) ListForUpdate(productID, branchID string) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.BranchID == branchID && b.Quantity.GreaterThan(decimal.Zero) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return expiresBefore(out[i], out[j]) })
	return out, nil
}
func (r *fakeBatchRepo) GetForUpdate(id string) (*entity.StockBatch, error) {
	return r.s.batches[id], nil
}
func (r *fakeBatchRepo) ListByProduct(productID, branchID string) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID && (branchID == "" || b.BranchID == branchID) {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBatchRepo) TotalQuantity(productID, branchID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.s.batches {
		if b.ProductID == productID && (branchID == "" || b.BranchID == branchID) {
			total = total.Add(b.Quantity)
		}
	}
	return total, nil
}

// expiresBefore ordena FEFO: vencimiento más próximo primero, sin fecha al final.
func expiresBefore(a, b *entity.StockBatch) bool {
	switch {
	case a.ExpiryDate == nil && b.ExpiryDate == nil:
		return a.CreatedAt.Before(b.CreatedAt)
	case a.ExpiryDate == nil:
		return false
	case b.ExpiryDate == nil:
		return true
	case a.ExpiryDate.Equal(*b.ExpiryDate):
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.ExpiryDate.Before(*b.ExpiryDate)
	}
}

func sameExpiry(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error { r.s.sales[sale.ID] = sale; return nil }
func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.items = append(r.s.items, item)
	return nil
}
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) { return r.s.sales[id], nil }
func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeSaleRepo) ListByBranch(branchID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if (branchID == "" || s.BranchID == branchID) && !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}
func (r *fakeCustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                    { r.s.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Count(search string) (int, error) { return len(r.s.products), nil }
func (r *fakeProductRepo) Delete(id string) error           { delete(r.s.products, id); return nil }

type fakeBranchRepo struct{ s *fakeStore }

func (r *fakeBranchRepo) Create(b *entity.Branch) error { r.s.branches[b.ID] = b; return nil }
func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	return r.s.branches[id], nil
}
func (r *fakeBranchRepo) Update(b *entity.Branch) error   { r.s.branches[b.ID] = b; return nil }
func (r *fakeBranchRepo) List() ([]*entity.Branch, error) { return nil, nil }
func (r *fakeBranchRepo) Delete(id string) error          { delete(r.s.branches, id); return nil }

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(u *entity.User) error { r.s.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.s.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error                    { r.s.users[u.ID] = u; return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) ListAdminEmails() ([]string, error)             { return nil, nil }

// ── helpers ──────────────────────────────────────────────────────────────────

func newUC(store *fakeStore) *sales.RecordSaleUseCase {
	return sales.NewRecordSaleUseCase(
		&fakeTxRunner{store},
		&fakeProductRepo{store},
		&fakeBranchRepo{store},
		&fakeUserRepo{store},
		&fakeSaleRepo{store},
		&fakeCustomerRepo{store},
		&fakeBatchRepo{store},
		nil, // sin correo de recibo en estos tests
	)
}

func addProduct(s *fakeStore, id, name string, price, minPrice float64) {
	s.products[id] = &entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		MinPrice: decimal.NewFromFloat(minPrice),
	}
}

func addBatch(s *fakeStore, id, productID string, qty, cost float64, expiry *time.Time) {
	s.batches[id] = &entity.StockBatch{
		ID:         id,
		ProductID:  productID,
		BranchID:   branchID,
		BatchCode:  "L-" + id,
		ExpiryDate: expiry,
		Quantity:   decimal.NewFromFloat(qty),
		UnitCost:   decimal.NewFromFloat(cost),
		CreatedAt:  time.Now(),
	}
}

func days(n int) *time.Time {
	d := time.Now().AddDate(0, 0, n)
	return &d
}

func dec(v int64) decimal.Decimal    { return decimal.NewFromInt(v) }
func decF(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
