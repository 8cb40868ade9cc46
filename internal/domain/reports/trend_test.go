package reports_test

import (
	"testing"

	"github.com/amigopos/amigo-pos/internal/domain/reports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestLinearTrend valida el ajuste por mínimos cuadrados sobre series conocidas.
// La gráfica de tendencia del dashboard depende de estos coeficientes: si
// alguien cambia la fórmula, estos vectores fallan de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestLinearTrend_SeriePerfectamenteLineal(t *testing.T) {
	// y = 10x + 5 → la recta ajustada reproduce la serie exacta.
	serie := []decimal.Decimal{dec(5), dec(15), dec(25), dec(35)}

	fitted, slope := reports.LinearTrend(serie)

	require.Len(t, fitted, 4)
	assert.True(t, slope.Equal(dec(10)), "pendiente esperada 10, obtuvo %s", slope)
	for i, want := range serie {
		assert.True(t, fitted[i].Equal(want), "punto %d: esperaba %s, obtuvo %s", i, want, fitted[i])
	}
}

func TestLinearTrend_SerieConRuido(t *testing.T) {
	// Puntos (0,1) (1,3) (2,2): mínimos cuadrados da slope=0.5, intercept=1.5.
	serie := []decimal.Decimal{dec(1), dec(3), dec(2)}

	fitted, slope := reports.LinearTrend(serie)

	require.Len(t, fitted, 3)
	assert.True(t, slope.Equal(dec(0.5)), "pendiente esperada 0.5, obtuvo %s", slope)
	assert.True(t, fitted[0].Equal(dec(1.5)), "f(0) esperado 1.5, obtuvo %s", fitted[0])
	assert.True(t, fitted[1].Equal(dec(2)), "f(1) esperado 2, obtuvo %s", fitted[1])
	assert.True(t, fitted[2].Equal(dec(2.5)), "f(2) esperado 2.5, obtuvo %s", fitted[2])
}

func TestLinearTrend_UnSoloPunto(t *testing.T) {
	serie := []decimal.Decimal{dec(42)}

	fitted, slope := reports.LinearTrend(serie)

	require.Len(t, fitted, 1)
	assert.True(t, slope.IsZero(), "con un solo punto no hay pendiente")
	assert.True(t, fitted[0].Equal(dec(42)))
}

func TestLinearTrend_SerieVacia(t *testing.T) {
	fitted, slope := reports.LinearTrend(nil)

	assert.Empty(t, fitted)
	assert.True(t, slope.IsZero())
}

func TestTurnoverRatio(t *testing.T) {
	assert.True(t, reports.TurnoverRatio(dec(300), dec(100)).Equal(dec(3)),
		"COGS 300 sobre inventario promedio 100 debe rotar 3 veces")
	assert.True(t, reports.TurnoverRatio(dec(300), decimal.Zero).IsZero(),
		"inventario promedio cero no debe dividir")
	assert.True(t, reports.TurnoverRatio(dec(125), dec(50)).Equal(dec(2.5)))
}
