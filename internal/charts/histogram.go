package charts

// bin is one histogram bucket: [lower, lower+width), except the last bucket
// which also includes its upper edge so the maximum value is counted.
type bin struct {
	lower float64
	count int
}

// binValues distributes values into n fixed-width buckets between the
// minimum and maximum observed value. A single distinct value gets a bucket
// width of 1 so the lone bar still renders.
func binValues(values []float64, n int) []bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := (max - min) / float64(n)
	if width == 0 {
		width = 1
	}

	bins := make([]bin, n)
	for i := range bins {
		bins[i].lower = min + float64(i)*width
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].count++
	}
	return bins
}
