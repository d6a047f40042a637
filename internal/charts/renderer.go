// Package charts renders numeric entity series into PNG chart images using
// the go-chart drawing backend.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartgen/internal/models"
)

const (
	titleFontSize   = 16.0
	axisFontSize    = 10.0
	axisNameSize    = 12.0
	xLabelRotation  = 45.0
	seriesLineWidth = 2.0
	scatterDotWidth = 5.0
	histogramBins   = 20

	paddingTop    = 40
	paddingLeft   = 60
	paddingRight  = 20
	paddingBottom = 60

	// Major tick interval for time axes, matching the 2-hour locator of
	// the dashboard cards this service replaces.
	timeTickInterval = 2 * time.Hour
)

// palette holds the per-series colors, indexed by series position modulo its
// length. The values follow the familiar tab10 scheme so multi-entity charts
// keep the look of the original dashboards.
var palette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// SeriesColor returns the palette color for the series at index i.
func SeriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Renderer turns series lists into PNG bytes. The drawing backend keeps
// global font state that is not safe for concurrent use, so Render holds a
// mutex for the duration of each render: concurrent requests may fetch and
// build in parallel but draw one at a time.
type Renderer struct {
	mu sync.Mutex
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render dispatches on the request's chart kind and returns the encoded PNG.
// It draws into a memory buffer, so a failed render never leaves a partial
// artifact behind.
func (r *Renderer) Render(seriesList []models.Series, req models.ChartRequest) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch req.Kind {
	case models.KindLine:
		return renderTimeChart(seriesList, req, false)
	case models.KindScatter:
		return renderTimeChart(seriesList, req, true)
	case models.KindBar:
		return renderBarChart(seriesList, req)
	case models.KindHistogram:
		return renderHistogram(seriesList, req)
	case models.KindPie:
		return renderPieChart(seriesList, req)
	default:
		return nil, fmt.Errorf("unsupported chart type %q", req.Kind)
	}
}

func pixelSize(req models.ChartRequest) (int, int) {
	return req.Width * req.DPI, req.Height * req.DPI
}

func timeToFloat(t time.Time) float64 {
	return float64(t.UnixNano())
}

// renderTimeChart draws line and scatter charts: one series per entity over
// (timestamp, value), x-axis formatted as time of day.
func renderTimeChart(seriesList []models.Series, req models.ChartRequest, scatter bool) ([]byte, error) {
	width, height := pixelSize(req)

	graph := chart.Chart{
		Title:      req.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding: chart.Box{
				Top:    paddingTop,
				Left:   paddingLeft,
				Right:  paddingRight,
				Bottom: paddingBottom,
			},
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite},
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Style: chart.Style{
				FontSize:            axisFontSize,
				TextRotationDegrees: xLabelRotation,
			},
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis: chart.YAxis{
			Name:      req.YLabel,
			NameStyle: chart.Style{FontSize: axisNameSize},
			Style:     chart.Style{FontSize: axisFontSize},
		},
	}

	if !req.WindowStart.IsZero() && req.WindowEnd.After(req.WindowStart) {
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: timeToFloat(req.WindowStart),
			Max: timeToFloat(req.WindowEnd),
		}
		graph.XAxis.Ticks = timeTicks(req.WindowStart, req.WindowEnd)
	}
	if rng := yRange(seriesList); rng != nil {
		graph.YAxis.Range = rng
	}

	for i, s := range seriesList {
		if len(s.Points) == 0 {
			continue
		}
		xValues := make([]time.Time, len(s.Points))
		yValues := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xValues[j] = p.Timestamp
			yValues[j] = p.Value
		}

		style := chart.Style{
			StrokeColor: SeriesColor(i),
			StrokeWidth: seriesLineWidth,
		}
		if scatter {
			dotColor := SeriesColor(i)
			dotColor.A = 180
			style = chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    dotColor,
				DotWidth:    scatterDotWidth,
			}
		}

		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    s.DisplayName,
			Style:   style,
			XValues: xValues,
			YValues: yValues,
		})
	}

	if req.Legend() {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", req.Kind, err)
	}
	return buf.Bytes(), nil
}

// renderBarChart draws one bar per entity using the last value of its
// series. An entity whose series lost all its points contributes 0.
func renderBarChart(seriesList []models.Series, req models.ChartRequest) ([]byte, error) {
	width, height := pixelSize(req)

	graph := chart.BarChart{
		Title:      req.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding: chart.Box{
				Top:    paddingTop,
				Left:   paddingLeft,
				Right:  paddingRight,
				Bottom: paddingBottom,
			},
		},
		Canvas:   chart.Style{FillColor: drawing.ColorWhite},
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(seriesList)),
		XAxis: chart.Style{
			FontSize:            axisFontSize,
			TextRotationDegrees: xLabelRotation,
		},
		YAxis: chart.YAxis{
			Name:      req.YLabel,
			NameStyle: chart.Style{FontSize: axisNameSize},
			Style:     chart.Style{FontSize: axisFontSize},
		},
	}

	allEqual := true
	for i, s := range seriesList {
		v := s.LastValue()
		if v != seriesList[0].LastValue() {
			allEqual = false
		}
		graph.Bars = append(graph.Bars, chart.Value{
			Value: v,
			Label: s.DisplayName,
			Style: chart.Style{FillColor: SeriesColor(i)},
		})
	}
	if allEqual && len(seriesList) > 0 {
		v := seriesList[0].LastValue()
		graph.YAxis.Range = &chart.ContinuousRange{Min: v - 1, Max: v + 1}
	}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderHistogram pools every value across all series into one fixed-bin
// distribution. The y axis counts samples per bin.
func renderHistogram(seriesList []models.Series, req models.ChartRequest) ([]byte, error) {
	width, height := pixelSize(req)

	var values []float64
	for _, s := range seriesList {
		for _, p := range s.Points {
			values = append(values, p.Value)
		}
	}
	bins := binValues(values, histogramBins)

	graph := chart.BarChart{
		Title:      req.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding: chart.Box{
				Top:    paddingTop,
				Left:   paddingLeft,
				Right:  paddingRight,
				Bottom: paddingBottom,
			},
		},
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(width, len(bins)),
		BarSpacing: 2,
		XAxis: chart.Style{
			FontSize:            axisFontSize,
			TextRotationDegrees: xLabelRotation,
		},
		YAxis: chart.YAxis{
			Name:      "Frequency",
			NameStyle: chart.Style{FontSize: axisNameSize},
			Style:     chart.Style{FontSize: axisFontSize},
		},
	}

	for _, b := range bins {
		graph.Bars = append(graph.Bars, chart.Value{
			Value: float64(b.count),
			// Bin labels are lower edges in the requested value units.
			Label: fmt.Sprintf("%.3g", b.lower),
			Style: chart.Style{FillColor: SeriesColor(0)},
		})
	}

	// The bar chart x-axis has no name slot, so the value-axis label is
	// drawn as an element centered below the bin labels.
	graph.Elements = []chart.Renderable{xAxisLabel(req.YLabel)}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// xAxisLabel renders a horizontal axis caption under the plot area.
func xAxisLabel(label string) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		style := chart.Style{
			FontSize:  axisNameSize,
			FontColor: chart.DefaultTextColor,
		}.InheritFrom(defaults)
		style.GetTextOptions().WriteToRenderer(r)

		textBox := r.MeasureText(label)
		x := canvasBox.Left + (canvasBox.Width()-textBox.Width())/2
		y := canvasBox.Bottom + 45
		r.Text(label, x, y)
	}
}

// renderPieChart draws one slice per entity from its last value. Entities
// whose last value is not strictly positive cannot be a slice and are
// excluded; when nothing remains positive an empty canvas is produced
// instead of an error.
func renderPieChart(seriesList []models.Series, req models.ChartRequest) ([]byte, error) {
	width, height := pixelSize(req)

	var slices []chart.Value
	for i, s := range seriesList {
		v := s.LastValue()
		if v <= 0 {
			continue
		}
		slices = append(slices, chart.Value{
			Value: v,
			Label: s.DisplayName,
			Style: chart.Style{FillColor: SeriesColor(i), FontSize: axisNameSize},
		})
	}

	if len(slices) == 0 {
		return blankCanvas(width, height)
	}

	graph := chart.PieChart{
		Title:      req.Title,
		TitleStyle: chart.Style{FontSize: titleFontSize, FontColor: drawing.ColorBlack},
		Background: chart.Style{FillColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		Width:      width,
		Height:     height,
		Values:     slices,
	}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// blankCanvas encodes a plain white PNG of the requested pixel size.
func blankCanvas(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode empty chart: %w", err)
	}
	return buf.Bytes(), nil
}

// timeTicks builds major ticks at the fixed interval across [start, end].
// With fewer than two ticks in the window the axis falls back to go-chart's
// own tick placement.
func timeTicks(start, end time.Time) []chart.Tick {
	first := start.Truncate(timeTickInterval)
	if first.Before(start) {
		first = first.Add(timeTickInterval)
	}

	var ticks []chart.Tick
	for t := first; !t.After(end); t = t.Add(timeTickInterval) {
		ticks = append(ticks, chart.Tick{
			Value: timeToFloat(t),
			Label: t.Format("15:04"),
		})
	}
	if len(ticks) < 2 {
		return nil
	}
	return ticks
}

// yRange returns an explicit value range when every point shares one value;
// a zero-delta range makes the axis math degenerate otherwise.
func yRange(seriesList []models.Series) *chart.ContinuousRange {
	var min, max float64
	seen := false
	for _, s := range seriesList {
		for _, p := range s.Points {
			if !seen {
				min, max = p.Value, p.Value
				seen = true
				continue
			}
			if p.Value < min {
				min = p.Value
			}
			if p.Value > max {
				max = p.Value
			}
		}
	}
	if !seen || min != max {
		return nil
	}
	return &chart.ContinuousRange{Min: min - 1, Max: max + 1}
}

func barWidth(pixelWidth, bars int) int {
	if bars == 0 {
		return 40
	}
	w := (pixelWidth - paddingLeft - paddingRight) / (bars * 2)
	if w < 10 {
		w = 10
	}
	if w > 80 {
		w = 80
	}
	return w
}
