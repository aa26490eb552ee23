package views

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/metrics"
)

// Params tunes the views that take user input. Views ignore the fields they
// do not use.
type Params struct {
	Period    domain.Period `json:"period"`
	LowPct    float64       `json:"low"`
	HighPct   float64       `json:"high"`
	Quantile  float64       `json:"quantile"`
	Threshold float64       `json:"threshold"`
	Now       time.Time     `json:"-"`
}

func DefaultParams() Params {
	return Params{
		Period:    domain.PeriodWeekly,
		LowPct:    50,
		HighPct:   75,
		Quantile:  metrics.DefaultHighDemandQuantile,
		Threshold: metrics.DefaultTopShareThreshold,
	}
}

// Validate rejects out-of-range values with domain.ErrInvalidParameter.
func (p Params) Validate() error {
	if !p.Period.Valid() {
		return fmt.Errorf("%w: period %q", domain.ErrInvalidParameter, p.Period)
	}
	if p.LowPct > p.HighPct {
		return fmt.Errorf("%w: low (%g) above high (%g)", domain.ErrInvalidParameter, p.LowPct, p.HighPct)
	}
	if p.Quantile < 0 || p.Quantile > 1 {
		return fmt.Errorf("%w: quantile %g outside [0,1]", domain.ErrInvalidParameter, p.Quantile)
	}
	if p.Threshold <= 0 || p.Threshold > 1 {
		return fmt.Errorf("%w: threshold %g outside (0,1]", domain.ErrInvalidParameter, p.Threshold)
	}
	return nil
}

// Key identifies the params for caching. Now contributes its local calendar
// day only.
func (p Params) Key() string {
	day := ""
	if !p.Now.IsZero() {
		day = p.Now.Format("2006-01-02")
	}
	return fmt.Sprintf("period=%s|low=%g|high=%g|quantile=%g|threshold=%g|day=%s",
		p.Period, p.LowPct, p.HighPct, p.Quantile, p.Threshold, day)
}

// ParseParams overlays query values on the defaults and validates the result.
func ParseParams(values url.Values) (Params, error) {
	p := DefaultParams()

	if v := strings.TrimSpace(values.Get("period")); v != "" {
		p.Period = domain.Period(strings.ToLower(v))
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"low", &p.LowPct},
		{"high", &p.HighPct},
		{"quantile", &p.Quantile},
		{"threshold", &p.Threshold},
	}
	for _, f := range floats {
		raw := strings.TrimSpace(values.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %s=%q", domain.ErrInvalidParameter, f.name, raw)
		}
		*f.dst = v
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
