package repository

import "github.com/amigopos/amigo-pos/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	// ListAdminEmails devuelve los emails de los admins activos (destinatarios
	// del reporte diario cuando no hay lista configurada).
	ListAdminEmails() ([]string, error)
}
