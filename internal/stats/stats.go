// Package stats provides the statistical summaries the cleaning engine
// relies on: quartiles with linear interpolation, first-seen mode, and
// IQR-based winsorization.
package stats

import (
	"math"
	"sort"
)

// Quartiles holds the 25th, 50th, and 75th percentile of a sample.
// Q2 is the median.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// IQR returns the interquartile range Q3 - Q1.
func (q Quartiles) IQR() float64 {
	return q.Q3 - q.Q1
}

// Quantiles computes the quartiles of the sample using linear (type 7)
// interpolation: position (n-1)*p, interpolated between the bracketing
// order statistics. An empty sample yields all zeros.
func Quantiles(values []float64) Quartiles {
	if len(values) == 0 {
		return Quartiles{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Quartiles{
		Q1: percentile(sorted, 0.25),
		Q2: percentile(sorted, 0.5),
		Q3: percentile(sorted, 0.75),
	}
}

// percentile interpolates over an ascending-sorted sample.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Mode returns the most frequent value in the sample. Ties break toward
// the value first encountered, which requires an insertion-ordered
// frequency table rather than a bare map iteration. An empty sample
// yields ok == false.
func Mode[T comparable](values []T) (T, bool) {
	var zero T
	if len(values) == 0 {
		return zero, false
	}

	counts := make(map[T]int, len(values))
	order := make([]T, 0, len(values))
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := order[0]
	bestCount := counts[best]
	for _, v := range order[1:] {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best, true
}

// Winsorize clips outliers to the robust range [Q1 - k*IQR, Q3 + k*IQR].
// Samples smaller than minSamples are returned unchanged: too small to
// estimate spread. Values are clipped to the nearest bound, never
// removed. The returned slice is always a fresh copy.
func Winsorize(values []float64, minSamples int, multiplier float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(values) < minSamples {
		return out
	}

	q := Quantiles(values)
	iqr := q.IQR()
	lower := q.Q1 - multiplier*iqr
	upper := q.Q3 + multiplier*iqr

	for i, v := range out {
		if v < lower {
			out[i] = lower
		} else if v > upper {
			out[i] = upper
		}
	}
	return out
}
