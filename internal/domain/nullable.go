package domain

import (
	"math"
	"strconv"
)

// NullableFloat carries a metric that may be not applicable, e.g. a ratio
// whose denominator is zero.
type NullableFloat struct {
	Value float64
	Valid bool
}

func Float(v float64) NullableFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotApplicable()
	}
	return NullableFloat{Value: v, Valid: true}
}

func NotApplicable() NullableFloat { return NullableFloat{} }

// Ratio divides num by den, yielding not applicable on a zero denominator.
func Ratio(num, den float64) NullableFloat {
	if den == 0 {
		return NotApplicable()
	}
	return Float(num / den)
}

func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NotApplicable()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Float(v)
	return nil
}
