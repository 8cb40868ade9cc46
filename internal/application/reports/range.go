package reports

import (
	"fmt"
	"time"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain"
)

// Presets de período aceptados por reportes, exportaciones y listados de ventas.
const (
	PresetToday  = "today"
	PresetWeek   = "week"
	PresetMonth  = "month"
	PresetAll    = "all"
	PresetCustom = "custom"
)

// DateRange rango de reporte resuelto a instantes. From es inclusivo y To
// exclusivo: los predicados SQL usan siempre `>= From AND < To`, así una venta
// a las 23:59:59.9 del último día nunca se escapa del rango.
type DateRange struct {
	Preset string
	From   time.Time
	To     time.Time
}

// FromLabel día inicial en YYYY-MM-DD (inclusivo); vacío para el preset all.
func (r DateRange) FromLabel() string {
	if r.From.IsZero() {
		return ""
	}
	return r.From.Format("2006-01-02")
}

// ToLabel día final en YYYY-MM-DD (inclusivo).
func (r DateRange) ToLabel() string {
	return r.To.AddDate(0, 0, -1).Format("2006-01-02")
}

// ResolveRange convierte el preset o las fechas del request en el rango
// semiabierto [From, To). Las fechas custom son días calendario inclusivos:
// to se corre un día hacia adelante para formar el límite exclusivo.
//
//	today  → [hoy 00:00, mañana 00:00)
//	week   → últimos 7 días calendario incluyendo hoy
//	month  → del primero del mes a hoy
//	all    → sin límite inferior
//	custom → [from 00:00, to+1d 00:00); from vacío = primero del mes, to vacío = hoy
func ResolveRange(req dto.DateRangeRequest, now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	preset := req.Preset
	if preset == "" {
		if req.From == "" && req.To == "" {
			preset = PresetToday
		} else {
			preset = PresetCustom
		}
	}

	switch preset {
	case PresetToday:
		return DateRange{Preset: PresetToday, From: today, To: tomorrow}, nil

	case PresetWeek:
		return DateRange{Preset: PresetWeek, From: today.AddDate(0, 0, -6), To: tomorrow}, nil

	case PresetMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Preset: PresetMonth, From: first, To: tomorrow}, nil

	case PresetAll:
		return DateRange{Preset: PresetAll, From: time.Time{}, To: tomorrow}, nil

	case PresetCustom:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if req.From != "" {
			parsed, err := time.ParseInLocation("2006-01-02", req.From, now.Location())
			if err != nil {
				return DateRange{}, fmt.Errorf("%w: from inválido %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, req.From)
			}
			from = parsed
		}
		to := today
		if req.To != "" {
			parsed, err := time.ParseInLocation("2006-01-02", req.To, now.Location())
			if err != nil {
				return DateRange{}, fmt.Errorf("%w: to inválido %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, req.To)
			}
			to = parsed
		}
		if from.After(to) {
			return DateRange{}, fmt.Errorf("%w: from %s no puede ser posterior a to %s",
				domain.ErrInvalidInput, from.Format("2006-01-02"), to.Format("2006-01-02"))
		}
		return DateRange{Preset: PresetCustom, From: from, To: to.AddDate(0, 0, 1)}, nil

	default:
		return DateRange{}, fmt.Errorf("%w: preset desconocido %q", domain.ErrInvalidInput, req.Preset)
	}
}
