package history

import (
	"context"
	"fmt"
	"math"
	"time"

	"chartgen/internal/models"
)

// StaticProvider serves canned samples from memory. Tests use it as a
// fixture in place of a live Home Assistant instance.
type StaticProvider struct {
	Samples map[string][]models.Sample
	Names   map[string]string
	Err     error
}

// History returns the canned samples clipped to [start, end).
func (p *StaticProvider) History(ctx context.Context, entityIDs []string, start, end time.Time) (map[string][]models.Sample, map[string]string, error) {
	if p.Err != nil {
		return nil, nil, p.Err
	}

	samples := make(map[string][]models.Sample)
	names := make(map[string]string)
	for _, id := range entityIDs {
		for _, s := range p.Samples[id] {
			if s.Timestamp.Before(start) || !s.Timestamp.Before(end) {
				continue
			}
			samples[id] = append(samples[id], s)
		}
		if name, ok := p.Names[id]; ok {
			names[id] = name
		} else {
			names[id] = id
		}
	}
	return samples, names, nil
}

// MockupProvider synthesizes a smooth sensor curve for any requested entity.
// It backs MOCKUP_MODE so the whole pipeline can run without a recorder.
type MockupProvider struct{}

// History generates samples at a 10 minute step across [start, end).
func (p *MockupProvider) History(ctx context.Context, entityIDs []string, start, end time.Time) (map[string][]models.Sample, map[string]string, error) {
	samples := make(map[string][]models.Sample)
	names := make(map[string]string)

	for _, id := range entityIDs {
		phase := float64(len(id) % 7)
		var out []models.Sample
		for t := start; t.Before(end); t = t.Add(10 * time.Minute) {
			v := 20 + 5*math.Sin(float64(t.Unix())/3600.0+phase)
			out = append(out, models.Sample{
				Timestamp: t,
				RawValue:  fmt.Sprintf("%.2f", v),
			})
		}
		samples[id] = out
		names[id] = id
	}
	return samples, names, nil
}
