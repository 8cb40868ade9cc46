package repository

import "github.com/amigopos/amigo-pos/internal/domain/entity"

// ActivityLogRepository define el puerto para la bitácora de actividad (solo inserción y lectura).
type ActivityLogRepository interface {
	Create(log *entity.ActivityLog) error
	// List lista la bitácora más reciente primero. userID vacío = todos los usuarios.
	List(userID string, limit, offset int) ([]*entity.ActivityLog, error)
}
