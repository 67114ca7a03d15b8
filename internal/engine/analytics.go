package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/dateutil"
	"github.com/orbitlabs/orbit-backend/internal/models"
)

// CalculateTrend compares the average of the second half of a series
// against the first half as an integer percent change. Fewer than two
// values yield 0; a zero first half with a positive second half yields
// 100.
func CalculateTrend(values []float64) int {
	if len(values) < 2 {
		return 0
	}

	half := len(values) / 2
	first := mean(values[:half])
	second := mean(values[half:]) // second half takes the extra element

	if first == 0 {
		if second > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((second - first) / first * 100))
}

// RollingAverages computes each metric's rolling average over the
// trailing window. Logs are grouped by metric once, so total work is
// O(N+M) rather than O(N×M).
func RollingAverages(metrics []models.MetricConfig, logs []models.LogEntry, windowDays int, now time.Time) map[string]float64 {
	grouped := groupByMetric(logs)
	start := dateutil.AddDays(now, -windowDays)

	results := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		results[m.ID] = windowedMean(grouped[m.ID], start, now)
	}
	return results
}

// trendDeltas returns currentWindowAvg minus previousWindowAvg per metric,
// comparing the trailing window [currentStart, now] against the shifted
// window [previousStart, currentStart). Empty windows average to zero.
func trendDeltas(metrics []models.MetricConfig, logs []models.LogEntry, windowDays int, now time.Time) map[string]float64 {
	grouped := groupByMetric(logs)
	currentStart := dateutil.AddDays(now, -windowDays)
	previousStart := dateutil.AddDays(now, -2*windowDays)

	results := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		metricLogs := grouped[m.ID]

		var currentSum, previousSum float64
		currentCount, previousCount := 0, 0
		for _, l := range metricLogs {
			ts := l.Timestamp
			switch {
			case !ts.Before(currentStart) && !ts.After(now):
				currentSum += l.Value.Float()
				currentCount++
			case !ts.Before(previousStart) && ts.Before(currentStart):
				previousSum += l.Value.Float()
				previousCount++
			}
		}

		var currentAvg, previousAvg float64
		if currentCount > 0 {
			currentAvg = currentSum / float64(currentCount)
		}
		if previousCount > 0 {
			previousAvg = previousSum / float64(previousCount)
		}
		results[m.ID] = currentAvg - previousAvg
	}
	return results
}

// CalculateMomentum returns each metric's 7-day momentum: the trailing
// week's average minus the week before. Metrics with no logs in either
// window report zero, never NaN.
func CalculateMomentum(metrics []models.MetricConfig, logs []models.LogEntry, now time.Time) map[string]float64 {
	return trendDeltas(metrics, logs, 7, now)
}

// NormalizedMetrics maps each metric id to its logs' normalized values in
// [0, 1], preserving log order.
func NormalizedMetrics(metrics []models.MetricConfig, logs []models.LogEntry) map[string][]float64 {
	grouped := groupByMetric(logs)

	results := make(map[string][]float64, len(metrics))
	for _, m := range metrics {
		metricLogs := grouped[m.ID]
		normalized := make([]float64, len(metricLogs))
		for i, l := range metricLogs {
			normalized[i] = NormalizeValue(m, l.Value.Float())
		}
		results[m.ID] = normalized
	}
	return results
}

// LaggedCorrelations is the orchestration entry point for pairwise
// correlation consumers; it shares PairwiseCorrelations' contract.
func LaggedCorrelations(metrics []models.MetricConfig, logs []models.LogEntry, lagDays int) map[string]models.Correlation {
	return PairwiseCorrelations(metrics, logs, lagDays)
}

// WindowComparisons reports each metric's rolling average for the window
// next to a wider baseline. The "previous" figure reuses a 2×windowDays
// rolling average over the whole span rather than a shifted window, which
// keeps report output compatible with the original system; see
// CalculateMomentum for the shifted-window variant.
func WindowComparisons(metrics []models.MetricConfig, logs []models.LogEntry, windowDays int, now time.Time) map[string]models.WindowComparison {
	current := RollingAverages(metrics, logs, windowDays, now)
	previous := RollingAverages(metrics, logs, 2*windowDays, now)

	results := make(map[string]models.WindowComparison, len(metrics))
	for _, m := range metrics {
		results[m.ID] = models.WindowComparison{
			Current:  current[m.ID],
			Previous: previous[m.ID],
			Delta:    current[m.ID] - previous[m.ID],
		}
	}
	return results
}

// CalculateSystemHealth builds the composite dashboard summary for the
// segment's window, merging time logs into the entry stream. An empty
// metric collection returns the zero value.
func CalculateSystemHealth(metrics []models.MetricConfig, logs []models.LogEntry, segment models.Segment, timeLogs []models.TimeLog, now time.Time) models.SystemHealth {
	if len(metrics) == 0 {
		return models.SystemHealth{}
	}

	merged := make([]models.LogEntry, 0, len(logs)+len(timeLogs))
	merged = append(merged, logs...)
	for _, t := range timeLogs {
		merged = append(merged, t.AsLogEntry())
	}

	windowDays := segment.WindowDays()
	currentStart := dateutil.AddDays(now, -windowDays)
	previousStart := dateutil.AddDays(now, -2*windowDays)

	var currentLogs, previousLogs []models.LogEntry
	for _, l := range merged {
		ts := l.Timestamp
		switch {
		case !ts.Before(currentStart) && !ts.After(now):
			currentLogs = append(currentLogs, l)
		case !ts.Before(previousStart) && ts.Before(currentStart):
			previousLogs = append(previousLogs, l)
		}
	}

	reliability := meanReliability(metrics, currentLogs)
	previousReliability := meanReliability(metrics, previousLogs)

	trendDelta := reliability - previousReliability
	trend := fmt.Sprintf("%d%%", trendDelta)
	if trendDelta > 0 {
		trend = fmt.Sprintf("+%d%%", trendDelta)
	}

	ratio := float64(len(currentLogs)) / float64(len(metrics)*windowDays)
	var intensity models.Intensity
	switch {
	case ratio > 1.2:
		intensity = models.IntensityPeak
	case ratio > 0.8:
		intensity = models.IntensityHigh
	case ratio > 0.4:
		intensity = models.IntensityModerate
	default:
		intensity = models.IntensityLow
	}

	var status models.HealthStatus
	switch {
	case reliability > 80:
		status = models.StatusOptimal
	case reliability > 50:
		status = models.StatusFunctional
	default:
		status = models.StatusDegraded
	}

	return models.SystemHealth{
		Reliability:     reliability,
		Trend:           trend,
		Intensity:       intensity,
		Status:          status,
		MomentumHistory: momentumHistory(merged, windowDays, now),
		ActivityVolume:  activityVolume(metrics, merged, segment, now),
	}
}

// meanReliability averages min(goalCompletion, 100) across metrics,
// rounded to the nearest integer.
func meanReliability(metrics []models.MetricConfig, logs []models.LogEntry) int {
	var total float64
	for _, m := range metrics {
		completion := GoalCompletion(m, logs)
		if completion > 100 {
			completion = 100
		}
		total += completion
	}
	return int(math.Round(total / float64(len(metrics))))
}

// momentumHistory counts entries per day for the trailing max(7, window)
// days, oldest first, for sparkline rendering.
func momentumHistory(logs []models.LogEntry, windowDays int, now time.Time) []int {
	days := windowDays
	if days < 7 {
		days = 7
	}

	counts := make(map[string]int, len(logs))
	for _, l := range logs {
		counts[dateutil.DayKey(l.Timestamp)]++
	}

	keys := dateutil.LastNDays(now, days)
	history := make([]int, len(keys))
	for i, key := range keys {
		history[i] = counts[key]
	}
	return history
}

// activityVolume sums per-metric durations per day across the trailing
// window, with day labels depending on the segment and colors sourced
// from the metric configs.
func activityVolume(metrics []models.MetricConfig, logs []models.LogEntry, segment models.Segment, now time.Time) models.ActivityVolume {
	labelByID := make(map[string]string, len(metrics))
	colors := make(map[string]string, len(metrics))
	for _, m := range metrics {
		labelByID[m.ID] = m.Label
		colors[m.Label] = m.Color
	}

	totals := make(map[string]map[string]float64)
	for _, l := range logs {
		label, ok := labelByID[l.MetricID]
		if !ok {
			continue
		}
		key := dateutil.DayKey(l.Timestamp)
		if totals[key] == nil {
			totals[key] = make(map[string]float64)
		}
		totals[key][label] += l.Value.Float()
	}

	windowDays := segment.WindowDays()
	keys := dateutil.LastNDays(now, windowDays)
	days := make([]models.ActivityDay, 0, len(keys))
	for i, key := range keys {
		date := dateutil.AddDays(now, i-len(keys)+1)

		var label string
		switch segment {
		case models.SegmentDaily:
			label = "Today"
		case models.SegmentMonthly:
			label = fmt.Sprintf("%d", date.Local().Day())
		default:
			label = date.Local().Format("Mon")
		}

		dayTotals := totals[key]
		if dayTotals == nil {
			dayTotals = map[string]float64{}
		}
		days = append(days, models.ActivityDay{Label: label, Totals: dayTotals})
	}

	return models.ActivityVolume{Days: days, Colors: colors}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
