package reports

import "github.com/shopspring/decimal"

// LinearTrend ajusta una recta por mínimos cuadrados sobre la serie values,
// tomando x = 0..n-1 (índice del día), y devuelve la serie ajustada
// fitted[i] = slope*i + intercept (servicio de dominio, sin dependencias).
//
//	slope = (n*Σxy - Σx*Σy) / (n*Σx² - (Σx)²)
//	intercept = (Σy - slope*Σx) / n
//
// Con menos de dos puntos no hay recta que ajustar: devuelve la serie tal cual
// y pendiente cero.
func LinearTrend(values []decimal.Decimal) (fitted []decimal.Decimal, slope decimal.Decimal) {
	n := len(values)
	if n < 2 {
		return append([]decimal.Decimal(nil), values...), decimal.Zero
	}

	var sumX, sumY, sumXY, sumXX decimal.Decimal
	for i, y := range values {
		x := decimal.NewFromInt(int64(i))
		sumX = sumX.Add(x)
		sumY = sumY.Add(y)
		sumXY = sumXY.Add(x.Mul(y))
		sumXX = sumXX.Add(x.Mul(x))
	}

	nDec := decimal.NewFromInt(int64(n))
	den := nDec.Mul(sumXX).Sub(sumX.Mul(sumX))
	if den.IsZero() {
		return append([]decimal.Decimal(nil), values...), decimal.Zero
	}
	slope = nDec.Mul(sumXY).Sub(sumX.Mul(sumY)).Div(den)
	intercept := sumY.Sub(slope.Mul(sumX)).Div(nDec)

	fitted = make([]decimal.Decimal, n)
	for i := range values {
		fitted[i] = slope.Mul(decimal.NewFromInt(int64(i))).Add(intercept).Round(2)
	}
	return fitted, slope
}

// TurnoverRatio calcula la rotación de inventario: COGS / costo promedio de
// inventario. Devuelve cero si el inventario promedio es cero (sin stock no
// hay rotación que medir).
func TurnoverRatio(cogs, avgInventoryCost decimal.Decimal) decimal.Decimal {
	if avgInventoryCost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return cogs.Div(avgInventoryCost).Round(2)
}
