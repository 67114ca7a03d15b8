// Package engine holds the pure data-transformation layer that turns
// metric definitions and log entries into derived statistics and
// widget-ready view models. Every time-windowed function takes an explicit
// reference instant so results are deterministic under test; none of the
// functions mutate their inputs or perform I/O.
package engine

import (
	"sort"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/dateutil"
	"github.com/orbitlabs/orbit-backend/internal/models"
)

// CurrentStreak counts consecutive calendar days with at least one entry
// for the metric, ending at today or yesterday. A most recent logged day
// two or more days in the past resets the streak to zero.
func CurrentStreak(logs []models.LogEntry, metricID string, now time.Time) int {
	days := distinctDays(logs, metricID)
	if len(days) == 0 {
		return 0
	}

	// Descending walk from the most recent logged day.
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	if dateutil.DaysBetween(now, days[0]) >= 2 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if dateutil.DaysBetween(days[i-1], days[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// BestStreak returns the longest run of consecutive logged days anywhere
// in the history. Logs are expected to belong to a single metric.
func BestStreak(logs []models.LogEntry) int {
	days := distinctDays(logs, "")
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if dateutil.DaysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// TodayValue sums the logs' numeric values for now's local calendar day.
func TodayValue(logs []models.LogEntry, now time.Time) float64 {
	return ValueForDate(logs, now)
}

// Total sums all log values; non-numeric values coerce to zero.
func Total(logs []models.LogEntry) float64 {
	var sum float64
	for _, l := range logs {
		sum += l.Value.Float()
	}
	return sum
}

// ValueForDate sums the values of logs on the same local calendar day as
// date.
func ValueForDate(logs []models.LogEntry, date time.Time) float64 {
	var sum float64
	for _, l := range logs {
		if dateutil.SameDay(l.Timestamp, date) {
			sum += l.Value.Float()
		}
	}
	return sum
}

// LastNDaysValues returns one per-day sum for each of the trailing days
// ending today, oldest first, zero-filled for days with no logs. Logs are
// bucketed once so the cost is O(logs + days).
func LastNDaysValues(logs []models.LogEntry, days int, now time.Time) []float64 {
	buckets := make(map[string]float64, len(logs))
	for _, l := range logs {
		buckets[dateutil.DayKey(l.Timestamp)] += l.Value.Float()
	}

	keys := dateutil.LastNDays(now, days)
	values := make([]float64, len(keys))
	for i, key := range keys {
		values[i] = buckets[key]
	}
	return values
}

// GoalCompletion returns the metric's goal completion percentage.
// Boolean metrics use the share of true entries; numeric metrics divide
// the value sum by entry count times goal. The goal is floored at 1 so a
// zero or missing goal never yields NaN or Infinity. Completion is
// denominated per log entry, not per day: callers needing a daily
// percentage should pre-aggregate to one entry per day.
func GoalCompletion(metric models.MetricConfig, logs []models.LogEntry) float64 {
	metricLogs := filterByMetric(logs, metric.ID)
	if len(metricLogs) == 0 {
		return 0
	}

	switch metric.Kind {
	case models.MetricBoolean:
		trueCount := 0
		for _, l := range metricLogs {
			if l.Value.Bool() {
				trueCount++
			}
		}
		return float64(trueCount) / float64(len(metricLogs)) * 100
	case models.MetricNumber, models.MetricDuration, models.MetricRange:
		var sum float64
		for _, l := range metricLogs {
			sum += l.Value.Float()
		}
		return sum / (float64(len(metricLogs)) * metric.GoalFloor()) * 100
	default:
		return 0
	}
}

// RollingAverage returns the mean of the metric's values within the
// trailing windowDays-day window ending at now, or zero with no logs.
func RollingAverage(logs []models.LogEntry, metricID string, windowDays int, now time.Time) float64 {
	return windowedMean(filterByMetric(logs, metricID), dateutil.AddDays(now, -windowDays), now)
}

// NormalizeValue maps a raw value into [0, 1] according to the metric
// kind: booleans map non-zero to 1, numeric kinds divide by the goal
// (floored at 1) and clamp, and other kinds normalize to zero.
func NormalizeValue(metric models.MetricConfig, value float64) float64 {
	switch metric.Kind {
	case models.MetricBoolean:
		if value != 0 {
			return 1
		}
		return 0
	case models.MetricNumber, models.MetricDuration, models.MetricRange:
		n := value / metric.GoalFloor()
		if n < 0 {
			return 0
		}
		if n > 1 {
			return 1
		}
		return n
	default:
		return 0
	}
}

// Stats returns sum/avg/min/max/count over the metric's values. A zero
// Count marks the empty case.
func Stats(metric models.MetricConfig, logs []models.LogEntry) models.MetricStats {
	metricLogs := filterByMetric(logs, metric.ID)
	if len(metricLogs) == 0 {
		return models.MetricStats{}
	}

	stats := models.MetricStats{Count: len(metricLogs)}
	for i, l := range metricLogs {
		v := l.Value.Float()
		stats.Sum += v
		if i == 0 || v < stats.Min {
			stats.Min = v
		}
		if i == 0 || v > stats.Max {
			stats.Max = v
		}
	}
	stats.Avg = stats.Sum / float64(stats.Count)
	return stats
}

// filterByMetric returns the logs belonging to metricID. An empty id
// keeps everything.
func filterByMetric(logs []models.LogEntry, metricID string) []models.LogEntry {
	if metricID == "" {
		return logs
	}
	out := make([]models.LogEntry, 0, len(logs))
	for _, l := range logs {
		if l.MetricID == metricID {
			out = append(out, l)
		}
	}
	return out
}

// distinctDays collects the unique local calendar days carrying at least
// one log, as local midnights. An empty metricID keeps all logs.
func distinctDays(logs []models.LogEntry, metricID string) []time.Time {
	seen := make(map[string]time.Time)
	for _, l := range logs {
		if metricID != "" && l.MetricID != metricID {
			continue
		}
		key := dateutil.DayKey(l.Timestamp)
		if _, ok := seen[key]; !ok {
			seen[key] = dateutil.StartOfDay(l.Timestamp)
		}
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	return days
}

// windowedMean averages values with timestamps in [start, end], guarding
// the empty window to zero.
func windowedMean(logs []models.LogEntry, start, end time.Time) float64 {
	var sum float64
	count := 0
	for _, l := range logs {
		if l.Timestamp.Before(start) || l.Timestamp.After(end) {
			continue
		}
		sum += l.Value.Float()
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// groupByMetric buckets logs by metric id in one pass, preserving order.
func groupByMetric(logs []models.LogEntry) map[string][]models.LogEntry {
	grouped := make(map[string][]models.LogEntry)
	for _, l := range logs {
		grouped[l.MetricID] = append(grouped[l.MetricID], l)
	}
	return grouped
}
