package postgres

import (
	"context"
	"fmt"

	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora de actividad sobre PostgreSQL (solo inserción y lectura).
type ActivityLogRepo struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository construye el adaptador de bitácora.
func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepo {
	return &ActivityLogRepo{pool: pool}
}

// Create inserta una entrada en la bitácora.
func (r *ActivityLogRepo) Create(log *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, action, occurred_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		log.ID, log.UserID, log.Action, log.Timestamp,
		nullIfEmpty(log.IPAddress), nullIfEmpty(log.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List lista la bitácora más reciente primero. userID vacío lista todos los usuarios.
func (r *ActivityLogRepo) List(userID string, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, occurred_at, COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM activity_logs
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityLog
	for rows.Next() {
		var a entity.ActivityLog
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Timestamp, &a.IPAddress, &a.UserAgent); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
