package entity

import "time"

// Supplier representa un proveedor de medicamentos. Referenciado por los lotes de stock.
type Supplier struct {
	ID        string
	Name      string
	Contact   string // teléfono o email de contacto, texto libre
	CreatedAt time.Time
	UpdatedAt time.Time
}
