package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// DateRangeRequest rango de fechas compartido por reportes, listados de ventas
// y exportaciones. Preset gana sobre From/To; "custom" (o vacío con fechas)
// usa From/To como días calendario inclusivos.
type DateRangeRequest struct {
	Preset   string `query:"preset"`    // today|week|month|all|custom
	From     string `query:"from"`      // YYYY-MM-DD
	To       string `query:"to"`        // YYYY-MM-DD
	BranchID string `query:"branch_id"` // vacío = todas las sucursales
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
