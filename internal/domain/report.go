package domain

// Report is a rendering-ready view result.
type Report struct {
	View    ViewKind `json:"view"`
	Title   string   `json:"title"`
	Scalars []Scalar `json:"scalars,omitempty"`
	Tables  []Table  `json:"tables,omitempty"`
	Series  []Series `json:"series,omitempty"`
}

// Scalar is a single headline figure.
type Scalar struct {
	Label   string        `json:"label"`
	Value   NullableFloat `json:"value"`
	Display string        `json:"display"`
}

// Table is an ordered projection with display-formatted cells.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Series is a ranked key/value sequence, rendered as a bar chart.
type Series struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

type SeriesPoint struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}
