package entity

import "time"

// Branch representa una sucursal de la farmacia. Stock y ventas se registran por sucursal.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
