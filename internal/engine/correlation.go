package engine

import (
	"math"
	"sort"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

// Pearson computes the Pearson correlation coefficient between two series.
// The result is invalid for empty or unequal-length inputs, and zero when
// either series has no variance.
func Pearson(x, y []float64) models.Correlation {
	n := len(x)
	if n == 0 || len(y) != n {
		return models.Correlation{}
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := float64(n)*sumXY - sumX*sumY
	denomX := float64(n)*sumX2 - sumX*sumX
	denomY := float64(n)*sumY2 - sumY*sumY

	if denomX == 0 || denomY == 0 {
		return models.Correlation{Value: 0, Valid: true}
	}

	return models.Correlation{Value: numerator / math.Sqrt(denomX*denomY), Valid: true}
}

// LaggedCorrelation shifts b forward by lagDays (or a forward by -lagDays
// when negative), truncates both series to equal length, and applies
// Pearson. A zero lag is a plain synchronous correlation.
func LaggedCorrelation(a, b []float64, lagDays int) models.Correlation {
	if lagDays > 0 {
		if lagDays >= len(b) {
			b = nil
		} else {
			b = b[lagDays:]
		}
		if len(b) < len(a) {
			a = a[:len(b)]
		}
	} else if lagDays < 0 {
		shift := -lagDays
		if shift >= len(a) {
			a = nil
		} else {
			a = a[shift:]
		}
		if len(a) < len(b) {
			b = b[:len(a)]
		}
	}

	if len(a) != len(b) || len(a) == 0 {
		return models.Correlation{}
	}
	return Pearson(a, b)
}

// PairKey builds the canonical map key for an unordered metric pair.
func PairKey(idA, idB string) string {
	return idA + "-" + idB
}

// devSeries precomputes a slice's per-element deviations from its mean
// and the sum of squared deviations, so a pairwise correlation collapses
// to one dot product.
type devSeries struct {
	dev   []float64
	sumSq float64
}

func newDevSeries(values []float64) devSeries {
	n := len(values)
	if n == 0 {
		return devSeries{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	ds := devSeries{dev: make([]float64, n)}
	for i, v := range values {
		d := v - mean
		ds.dev[i] = d
		ds.sumSq += d * d
	}
	return ds
}

// pairSeries is one metric's chronologically sorted value series with the
// head (values[:n-lag]) and tail (values[lag:]) deviation precomputes for
// a fixed lag magnitude.
type pairSeries struct {
	values []float64
	head   devSeries
	tail   devSeries
}

func newPairSeries(values []float64, lag int) pairSeries {
	if lag < 0 {
		lag = -lag
	}
	ps := pairSeries{values: values}
	if lag >= len(values) {
		return ps
	}
	ps.head = newDevSeries(values[:len(values)-lag])
	ps.tail = newDevSeries(values[lag:])
	return ps
}

// correlate computes the lagged correlation of a against b. When both
// series have the same length the precomputed deviation vectors are exact
// and the result is a single dot product; otherwise the slices the lag
// produces differ from the precomputed ones and the raw path is used.
func (a pairSeries) correlate(b pairSeries, lagDays int) models.Correlation {
	if len(a.values) != len(b.values) {
		return LaggedCorrelation(a.values, b.values, lagDays)
	}

	x, y := a.head, b.tail
	if lagDays < 0 {
		x, y = a.tail, b.head
	}

	if len(x.dev) == 0 || len(x.dev) != len(y.dev) {
		return models.Correlation{}
	}
	if x.sumSq == 0 || y.sumSq == 0 {
		return models.Correlation{Value: 0, Valid: true}
	}

	var dot float64
	for i := range x.dev {
		dot += x.dev[i] * y.dev[i]
	}
	return models.Correlation{Value: dot / math.Sqrt(x.sumSq*y.sumSq), Valid: true}
}

// buildPairSeries precomputes each metric's sorted value series and
// deviation slices in one pass over the logs, so the N² pair loop never
// re-filters or re-sorts the full collection.
func buildPairSeries(metrics []models.MetricConfig, logs []models.LogEntry, lagDays int) map[string]pairSeries {
	grouped := groupByMetric(logs)

	series := make(map[string]pairSeries, len(metrics))
	for _, m := range metrics {
		metricLogs := grouped[m.ID]
		sorted := make([]models.LogEntry, len(metricLogs))
		copy(sorted, metricLogs)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})

		values := make([]float64, len(sorted))
		for i, l := range sorted {
			values[i] = l.Value.Float()
		}
		series[m.ID] = newPairSeries(values, lagDays)
	}
	return series
}

// PairwiseCorrelations computes the lagged correlation for every
// unordered metric pair, keyed "idA-idB" in metric order. Total work is
// O(N·M log M) precompute plus O(N²·M) pair products for N metrics and M
// logs.
func PairwiseCorrelations(metrics []models.MetricConfig, logs []models.LogEntry, lagDays int) map[string]models.Correlation {
	series := buildPairSeries(metrics, logs, lagDays)

	results := make(map[string]models.Correlation)
	for i := 0; i < len(metrics); i++ {
		for j := i + 1; j < len(metrics); j++ {
			idA, idB := metrics[i].ID, metrics[j].ID
			results[PairKey(idA, idB)] = series[idA].correlate(series[idB], lagDays)
		}
	}
	return results
}
