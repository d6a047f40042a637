// Package series turns raw entity state samples into cleaned numeric series
// ready for rendering.
package series

import (
	"math"
	"strconv"

	"chartgen/internal/models"
)

// Build converts raw samples per entity into numeric series. Samples whose
// raw value does not parse as a finite number are dropped; entities left
// with zero numeric samples are omitted from the result. Input order is
// preserved, so series stay time-ordered when the provider returned them
// time-ordered. Output follows the order of entityIDs.
//
// Build is a pure function: it never fails, absence of data is expressed by
// omission.
func Build(entityIDs []string, samplesByEntity map[string][]models.Sample, displayNames map[string]string) []models.Series {
	var out []models.Series

	for _, id := range entityIDs {
		samples := samplesByEntity[id]
		var points []models.Point
		for _, s := range samples {
			v, ok := parseFinite(s.RawValue)
			if !ok {
				continue
			}
			points = append(points, models.Point{Timestamp: s.Timestamp, Value: v})
		}
		if len(points) == 0 {
			continue
		}

		name := displayNames[id]
		if name == "" {
			name = id
		}
		out = append(out, models.Series{
			EntityID:    id,
			DisplayName: name,
			Points:      points,
		})
	}

	return out
}

// parseFinite parses s as a float64, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
