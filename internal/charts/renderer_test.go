package charts

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"chartgen/internal/models"
)

func testRequest(kind models.ChartKind) models.ChartRequest {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	req := models.ChartRequest{
		Entities: []string{"sensor.temp"},
		Kind:     kind,
		Width:    6,
		Height:   4,
		DPI:      100,
		Hours:    24,
	}
	req, err := req.Normalize(now)
	if err != nil {
		panic(err)
	}
	return req
}

func testSeries(values ...float64) models.Series {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	points := make([]models.Point, len(values))
	for i, v := range values {
		points[i] = models.Point{Timestamp: base.Add(time.Duration(i) * 10 * time.Minute), Value: v}
	}
	return models.Series{EntityID: "sensor.temp", DisplayName: "Temperature", Points: points}
}

func decodePNG(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestRenderLineChart(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindLine)

	data, err := renderer.Render([]models.Series{testSeries(20.5, 21.0)}, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 600 || h != 400 {
		t.Errorf("Expected 600x400 pixels (6x4 at 100 dpi), got %dx%d", w, h)
	}
}

func TestRenderLineChartFlatSeries(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindLine)

	// All points share one value; the y range must not collapse.
	data, err := renderer.Render([]models.Series{testSeries(5, 5, 5)}, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error for flat series: %v", err)
	}
	decodePNG(t, data)
}

func TestRenderScatterChart(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindScatter)

	data, err := renderer.Render([]models.Series{testSeries(1, 3, 2, 4)}, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	decodePNG(t, data)
}

func TestRenderBarChart(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindBar)

	seriesList := []models.Series{
		testSeries(1, 2, 3),
		{EntityID: "sensor.b", DisplayName: "B", Points: []models.Point{
			{Timestamp: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), Value: 7},
		}},
	}

	data, err := renderer.Render(seriesList, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	decodePNG(t, data)
}

func TestRenderHistogram(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindHistogram)

	seriesList := []models.Series{
		testSeries(1, 2),
		{EntityID: "sensor.b", DisplayName: "B", Points: []models.Point{
			{Timestamp: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), Value: 3},
			{Timestamp: time.Date(2024, 6, 1, 11, 30, 0, 0, time.UTC), Value: 4},
		}},
	}

	data, err := renderer.Render(seriesList, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	decodePNG(t, data)
}

func TestRenderHistogramValueAxisLabel(t *testing.T) {
	renderer := NewRenderer()
	seriesList := []models.Series{testSeries(1, 2, 3, 4)}

	reqA := testRequest(models.KindHistogram)
	reqA.YLabel = "Temperature"
	withLabel, err := renderer.Render(seriesList, reqA)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}

	reqB := testRequest(models.KindHistogram)
	reqB.YLabel = "Power"
	otherLabel, err := renderer.Render(seriesList, reqB)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}

	// The requested value-axis label must appear in the drawn output.
	if bytes.Equal(withLabel, otherLabel) {
		t.Error("Histogram output does not change with the value-axis label")
	}
}

func TestRenderLineChartLegendToggle(t *testing.T) {
	renderer := NewRenderer()
	seriesList := []models.Series{testSeries(20.5, 21.0)}

	withLegend, err := renderer.Render(seriesList, testRequest(models.KindLine))
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}

	noLegend := false
	req := testRequest(models.KindLine)
	req.ShowLegend = &noLegend
	withoutLegend, err := renderer.Render(seriesList, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error with legend disabled: %v", err)
	}

	if bytes.Equal(withLegend, withoutLegend) {
		t.Error("Disabling the legend did not change the rendered output")
	}
}

func TestRenderPieChart(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindPie)

	seriesList := []models.Series{
		testSeries(10, 30),
		{EntityID: "sensor.b", DisplayName: "B", Points: []models.Point{
			{Timestamp: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), Value: 70},
		}},
	}

	data, err := renderer.Render(seriesList, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error: %v", err)
	}
	decodePNG(t, data)
}

func TestRenderPieChartAllNonPositive(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindPie)

	seriesList := []models.Series{
		testSeries(5, 0),
		testSeries(3, -2),
	}

	// Every last value is <= 0: no slice can be drawn, but rendering still
	// succeeds with an empty canvas.
	data, err := renderer.Render(seriesList, req)
	if err != nil {
		t.Fatalf("Render() returned unexpected error for all-non-positive pie: %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 600 || h != 400 {
		t.Errorf("Expected 600x400 empty canvas, got %dx%d", w, h)
	}
}

func TestRenderUnsupportedKind(t *testing.T) {
	renderer := NewRenderer()
	req := testRequest(models.KindLine)
	req.Kind = models.ChartKind("sparkline")

	if _, err := renderer.Render([]models.Series{testSeries(1, 2)}, req); err == nil {
		t.Fatal("Expected error for unsupported chart kind, got nil")
	}
}

func TestBinValues(t *testing.T) {
	bins := binValues([]float64{1, 2, 3, 4}, 20)
	if len(bins) != 20 {
		t.Fatalf("Expected 20 bins, got %d", len(bins))
	}

	total := 0
	for _, b := range bins {
		total += b.count
	}
	if total != 4 {
		t.Errorf("Expected all 4 values counted, got %d", total)
	}

	// The maximum value lands in the last bin.
	if bins[len(bins)-1].count != 1 {
		t.Errorf("Expected max value in last bin, got %d", bins[len(bins)-1].count)
	}
	if bins[0].lower != 1 {
		t.Errorf("Expected first bin lower edge 1, got %v", bins[0].lower)
	}
}

func TestBinValuesSingleValue(t *testing.T) {
	bins := binValues([]float64{7, 7, 7}, 20)
	if len(bins) != 20 {
		t.Fatalf("Expected 20 bins, got %d", len(bins))
	}
	if bins[0].count != 3 {
		t.Errorf("Expected all values in first bin, got %d", bins[0].count)
	}
}

func TestBinValuesEmpty(t *testing.T) {
	if bins := binValues(nil, 20); bins != nil {
		t.Errorf("Expected nil bins for no values, got %+v", bins)
	}
}

func TestSeriesColorDeterministic(t *testing.T) {
	if SeriesColor(0) != SeriesColor(10) {
		t.Error("Palette should wrap around its fixed size")
	}
	if SeriesColor(0) == SeriesColor(1) {
		t.Error("Adjacent series should get distinct colors")
	}
}
