package repository

import "github.com/amigopos/amigo-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List lista el catálogo paginado; search filtra por nombre (ILIKE), vacío = todos.
	List(search string, limit, offset int) ([]*entity.Product, error)
	Count(search string) (int, error)
	Delete(id string) error
}
