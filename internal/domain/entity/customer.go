package entity

import "time"

// Customer representa un cliente de mostrador. El teléfono es la llave de
// búsqueda en caja: si no existe se crea uno nuevo durante la venta.
type Customer struct {
	ID        string
	Name      string
	Phone     string // único
	Email     string // opcional; si existe se envía el recibo por correo
	CreatedAt time.Time
	UpdatedAt time.Time
}
