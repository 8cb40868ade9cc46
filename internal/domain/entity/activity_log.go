package entity

import "time"

// Acciones registrables en la bitácora de usuarios.
const (
	ActivityLogin  = "login"
	ActivityLogout = "logout"
)

// ActivityLog representa una entrada de la bitácora de actividad (solo inserción).
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string // login, logout
	Timestamp time.Time
	IPAddress string
	UserAgent string
}
