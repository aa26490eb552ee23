package views

import (
	"math"
	"strconv"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

const notApplicable = "n/a"

// formatNumber renders v with a comma thousands separator and a dot decimal
// separator. The decimal part is dropped when it rounds to zero.
// Example: 1234.5 (2 decimals) => "1,234.50"; 1000.0 => "1,000".
func formatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notApplicable
	}

	neg := v < 0
	if neg {
		v = -v
	}
	if decimals < 0 {
		decimals = 0
	}

	factor := math.Pow(10, float64(decimals))
	scaled := math.Round(v * factor)
	intPart := int64(scaled) / int64(factor)
	fracPart := int64(scaled) % int64(factor)

	s := strconv.FormatInt(intPart, 10)
	if len(s) > 3 {
		var buf []byte
		count := 0
		for i := len(s) - 1; i >= 0; i-- {
			buf = append(buf, s[i])
			count++
			if count == 3 && i != 0 {
				buf = append(buf, ',')
				count = 0
			}
		}
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
		s = string(buf)
	}

	if neg && (intPart != 0 || fracPart != 0) {
		s = "-" + s
	}
	if decimals == 0 || fracPart == 0 {
		return s
	}

	frac := strconv.FormatInt(fracPart, 10)
	for len(frac) < decimals {
		frac = "0" + frac
	}
	return s + "." + frac
}

func formatNullable(n domain.NullableFloat, decimals int) string {
	if !n.Valid {
		return notApplicable
	}
	return formatNumber(n.Value, decimals)
}

// formatPercent always keeps two decimals, as the overview headline does.
func formatPercent(n domain.NullableFloat) string {
	if !n.Valid {
		return notApplicable
	}
	return strconv.FormatFloat(n.Value, 'f', 2, 64) + "%"
}

// formatShare renders a 0..1 share as a percentage.
func formatShare(v float64) string {
	return formatPercent(domain.Float(v * 100))
}
