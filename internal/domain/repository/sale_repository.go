package repository

import (
	"time"

	"github.com/amigopos/amigo-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Las ventas son inmutables: solo inserción y lectura, nunca update/delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	// ListByBranch lista ventas de una sucursal en un rango [from, to).
	// branchID vacío = todas las sucursales.
	ListByBranch(branchID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
}
