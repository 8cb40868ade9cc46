package usecase_test

import (
	"testing"
	"time"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/usecase"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreate_ValidaPrecioMinimo(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(dto.CreateProductRequest{
		Name:     "Paracetamol 500mg",
		Price:    decimal.NewFromInt(5),
		MinPrice: decimal.NewFromInt(8),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "min_price mayor que price debe rechazarse")

	_, err = uc.Create(dto.CreateProductRequest{
		Name:  "Paracetamol 500mg",
		Price: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio cero debe rechazarse")

	resp, err := uc.Create(dto.CreateProductRequest{
		Name:     "Paracetamol 500mg",
		Price:    decimal.NewFromInt(5),
		MinPrice: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.TotalStock.IsZero(), "un producto nuevo arranca sin lotes")
}

func TestProductCreate_RechazaNombreDuplicado(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(dto.CreateProductRequest{Name: "Ibuprofeno 400mg", Price: decimal.NewFromInt(8)})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Ibuprofeno 400mg", Price: decimal.NewFromInt(9)})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre es único en el catálogo")
}

func TestProductUpdate_MantieneInvarianteDePrecios(t *testing.T) {
	uc, _ := newProductUC()

	creado, err := uc.Create(dto.CreateProductRequest{
		Name:     "Omeprazol 20mg",
		Price:    decimal.NewFromInt(10),
		MinPrice: decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	// Bajar el precio de venta por debajo del mínimo vigente no es válido.
	bajo := decimal.NewFromInt(6)
	_, err = uc.Update(creado.ID, dto.UpdateProductRequest{Price: &bajo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Bajar ambos a la vez sí.
	nuevoPrecio := decimal.NewFromInt(6)
	nuevoMinimo := decimal.NewFromInt(4)
	resp, err := uc.Update(creado.ID, dto.UpdateProductRequest{Price: &nuevoPrecio, MinPrice: &nuevoMinimo})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(nuevoPrecio))
	assert.True(t, resp.MinPrice.Equal(nuevoMinimo))
}

func TestProductGetByID_IncluyeStockTotal(t *testing.T) {
	uc, store := newProductUC()

	creado, err := uc.Create(dto.CreateProductRequest{Name: "Suero oral", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	store.batches["batch-1"] = &entity.StockBatch{ID: "batch-1", ProductID: creado.ID, BranchID: "b1", Quantity: decimal.NewFromInt(3)}
	store.batches["batch-2"] = &entity.StockBatch{ID: "batch-2", ProductID: creado.ID, BranchID: "b2", Quantity: decimal.NewFromInt(4)}

	resp, err := uc.GetByID(creado.ID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.TotalStock.Equal(decimal.NewFromInt(7)), "el stock total suma lotes de todas las sucursales")
}

func TestProductGetByID_InexistenteDevuelveNil(t *testing.T) {
	uc, _ := newProductUC()

	resp, err := uc.GetByID("prod-fantasma")
	require.NoError(t, err)
	assert.Nil(t, resp, "el handler decide el 404; el caso de uso devuelve nil sin error")
}

// ── fakes ────────────────────────────────────────────────────────────────────

type productStore struct {
	products map[string]*entity.Product
	batches  map[string]*entity.StockBatch
}

func newProductUC() (*usecase.ProductUseCase, *productStore) {
	store := &productStore{
		products: map[string]*entity.Product{},
		batches:  map[string]*entity.StockBatch{},
	}
	return usecase.NewProductUseCase(&productRepoFake{store}, &batchRepoFake{store}), store
}

type productRepoFake struct{ s *productStore }

func (r *productRepoFake) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *productRepoFake) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *productRepoFake) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}
func (r *productRepoFake) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *productRepoFake) List(search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *productRepoFake) Count(search string) (int, error) { return len(r.s.products), nil }
func (r *productRepoFake) Delete(id string) error           { delete(r.s.products, id); return nil }

type batchRepoFake struct{ s *productStore }

func (r *batchRepoFake) Create(b *entity.StockBatch) error { r.s.batches[b.ID] = b; return nil }
func (r *batchRepoFake) GetByID(id string) (*entity.StockBatch, error) {
	return r.s.batches[id], nil
}
func (r *batchRepoFake) GetByKey(productID, branchID, batchCode string, expiry *time.Time) (*entity.StockBatch, error) {
	return nil, nil
}
func (r *batchRepoFake) Update(b *entity.StockBatch) error { r.s.batches[b.ID] = b; return nil }
func (r *batchRepoFake) ListForUpdate(productID, branchID string) ([]*entity.StockBatch, error) {
	return nil, nil
}
func (r *batchRepoFake) GetForUpdate(id string) (*entity.StockBatch, error) {
	return r.s.batches[id], nil
}
func (r *batchRepoFake) ListByProduct(productID, branchID string) ([]*entity.StockBatch, error) {
	return nil, nil
}
func (r *batchRepoFake) TotalQuantity(productID, branchID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.s.batches {
		if b.ProductID == productID && (branchID == "" || b.BranchID == branchID) {
			total = total.Add(b.Quantity)
		}
	}
	return total, nil
}
