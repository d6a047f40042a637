package models

import (
	"fmt"
	"time"
)

// ChartKind identifies one of the supported chart forms. The set is closed:
// the renderer switches exhaustively on it and rejects anything else.
type ChartKind string

const (
	KindLine      ChartKind = "line"
	KindBar       ChartKind = "bar"
	KindScatter   ChartKind = "scatter"
	KindHistogram ChartKind = "histogram"
	KindPie       ChartKind = "pie"
)

// ChartKinds lists every supported chart kind.
var ChartKinds = []ChartKind{KindLine, KindBar, KindScatter, KindHistogram, KindPie}

// Valid reports whether k is one of the supported chart kinds.
func (k ChartKind) Valid() bool {
	switch k {
	case KindLine, KindBar, KindScatter, KindHistogram, KindPie:
		return true
	}
	return false
}

// Sample is a single recorded state of an entity. RawValue is kept as the
// string the history store returned; it may or may not be numeric.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	RawValue  string    `json:"raw_value"`
}

// Point is one numeric observation of a series.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is the cleaned numeric history of one entity. Points are ordered
// non-decreasing in timestamp and contain only values that parsed as finite
// numbers. A Series with zero points is valid.
type Series struct {
	EntityID    string  `json:"entity_id"`
	DisplayName string  `json:"display_name"`
	Points      []Point `json:"points"`
}

// LastValue returns the value of the last point, or 0 for an empty series.
func (s Series) LastValue() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Value
}

// Default chart parameters, matching the service schema defaults.
const (
	DefaultChartTitle = "Home Assistant Chart"
	DefaultYLabel     = "Value"
	DefaultHours      = 24
	DefaultWidth      = 12
	DefaultHeight     = 8
	DefaultDPI        = 100
)

// ChartRequest holds the fully-validated parameters of one chart generation
// call. It is built once per invocation and never mutated afterwards.
type ChartRequest struct {
	Entities   []string  `json:"entities"`
	Kind       ChartKind `json:"chart_type"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	Hours      int       `json:"hours_to_show"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	DPI        int       `json:"dpi"`
	YLabel     string    `json:"y_label"`
	ShowLegend *bool     `json:"show_legend,omitempty"`

	// Window is the half-open sample window [Start, End). It is filled in
	// by the service when the request is normalized; the renderer uses it
	// for time-axis ranges.
	WindowStart time.Time `json:"-"`
	WindowEnd   time.Time `json:"-"`
}

// Legend reports whether a legend was requested (default true).
func (r ChartRequest) Legend() bool {
	if r.ShowLegend == nil {
		return true
	}
	return *r.ShowLegend
}

// Normalize fills defaults, de-duplicates entities (first occurrence wins)
// and validates the fields the core relies on. A zero numeric field means
// the caller omitted it from the JSON body and takes its default; only
// explicit negative values are rejected. It returns the normalized copy so
// the original request stays untouched.
func (r ChartRequest) Normalize(now time.Time) (ChartRequest, error) {
	if len(r.Entities) == 0 {
		return r, fmt.Errorf("at least one entity is required")
	}

	seen := make(map[string]bool, len(r.Entities))
	entities := make([]string, 0, len(r.Entities))
	for _, id := range r.Entities {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		entities = append(entities, id)
	}
	if len(entities) == 0 {
		return r, fmt.Errorf("at least one entity is required")
	}
	r.Entities = entities

	if r.Kind == "" {
		r.Kind = KindLine
	}
	if !r.Kind.Valid() {
		return r, fmt.Errorf("unsupported chart type %q", r.Kind)
	}
	if r.Hours == 0 {
		r.Hours = DefaultHours
	}
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.DPI == 0 {
		r.DPI = DefaultDPI
	}
	if r.Hours < 0 || r.Width < 0 || r.Height < 0 || r.DPI < 0 {
		return r, fmt.Errorf("hours_to_show, width, height and dpi must be positive")
	}
	if r.Title == "" {
		r.Title = DefaultChartTitle
	}
	if r.YLabel == "" {
		r.YLabel = DefaultYLabel
	}
	if r.Filename == "" {
		r.Filename = fmt.Sprintf("chart_%s.png", now.Format("20060102_150405"))
	}

	r.WindowEnd = now
	r.WindowStart = now.Add(-time.Duration(r.Hours) * time.Hour)

	return r, nil
}
