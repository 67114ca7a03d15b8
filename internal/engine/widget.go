package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/dateutil"
	"github.com/orbitlabs/orbit-backend/internal/models"
)

// defaultColor is used when a metric config carries no color.
const defaultColor = "#4f46e5"

const (
	errUnknownWidget    = "Unknown widget type"
	errCalculationError = "Calculation error"
)

// GenerateWidgets maps each dashboard-visible metric to its widget view
// model. Logs are grouped by metric id once up front; shaping failures
// are isolated per metric as error-variant data so one bad metric never
// aborts the dashboard.
func GenerateWidgets(metrics []models.MetricConfig, logs []models.LogEntry, segment models.Segment, now time.Time) []models.Widget {
	grouped := groupByMetric(logs)

	widgets := make([]models.Widget, 0, len(metrics))
	for _, m := range metrics {
		if !m.Visible() {
			continue
		}
		widgets = append(widgets, models.Widget{
			Metric: m,
			Data:   shapeWidget(m, grouped[m.ID], segment, now),
		})
	}
	return widgets
}

// shapeWidget dispatches on the metric's widget kind. Unknown kinds and
// shaping errors both collapse to the error variant.
func shapeWidget(m models.MetricConfig, logs []models.LogEntry, segment models.Segment, now time.Time) models.WidgetData {
	var (
		data models.WidgetData
		err  error
	)

	switch m.Widget {
	case models.WidgetRing:
		data.Ring, err = ringData(m, logs)
	case models.WidgetSparkline:
		data.Sparkline, err = sparklineData(m, logs, segment, now)
	case models.WidgetHeatmap:
		data.Heatmap, err = heatmapData(m, logs)
	case models.WidgetStreak:
		data.Streak, err = streakData(m, logs, now)
	case models.WidgetNumber:
		data.Number, err = numberData(m, logs, segment, now)
	case models.WidgetHistory:
		data.History, err = historyData(m, logs)
	case models.WidgetStackedBar:
		data.StackedBar, err = stackedBarData(m, logs, now)
	case models.WidgetCompound:
		data.Compound, err = compoundData(m, logs)
	case models.WidgetProgress:
		data.Progress, err = progressData(m, logs, now)
	default:
		return models.ErrorWidgetData(m.Widget, errUnknownWidget)
	}

	if err != nil {
		return models.ErrorWidgetData(m.Widget, errCalculationError)
	}
	data.Kind = m.Widget
	return data
}

func metricColor(m models.MetricConfig) string {
	if m.Color != "" {
		return m.Color
	}
	return defaultColor
}

// requireKind guards shapers against metrics whose kind is not one of the
// known variants; such configs cannot be computed against.
func requireKind(m models.MetricConfig) error {
	if !m.Kind.Valid() {
		return fmt.Errorf("metric %s has unknown kind %q", m.ID, m.Kind)
	}
	return nil
}

func ringData(m models.MetricConfig, logs []models.LogEntry) (*models.RingData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	completion := GoalCompletion(m, logs)
	if completion > 100 {
		completion = 100
	}
	return &models.RingData{
		Value: completion,
		Label: m.Label,
		Color: metricColor(m),
	}, nil
}

func sparklineData(m models.MetricConfig, logs []models.LogEntry, segment models.Segment, now time.Time) (*models.SparklineData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	days := 7
	if segment == models.SegmentMonthly {
		days = 30
	}

	// Raw per-day sums, deliberately not normalized.
	return &models.SparklineData{
		Data:    LastNDaysValues(logs, days, now),
		Current: TodayValue(logs, now),
		Label:   m.Label,
		Color:   metricColor(m),
	}, nil
}

func heatmapData(m models.MetricConfig, logs []models.LogEntry) (*models.HeatmapData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	anyTrue := make(map[string]bool)
	for _, l := range logs {
		key := dateutil.DayKey(l.Timestamp)
		sums[key] += l.Value.Float()
		if l.Value.Bool() {
			anyTrue[key] = true
		}
	}

	values := make(map[string]float64, len(sums))
	for key, daySum := range sums {
		if m.Kind == models.MetricBoolean {
			if anyTrue[key] {
				values[key] = 100
			} else {
				values[key] = 0
			}
		} else {
			values[key] = NormalizeValue(m, daySum) * 100
		}
	}

	return &models.HeatmapData{Values: values, Color: metricColor(m)}, nil
}

func streakData(m models.MetricConfig, logs []models.LogEntry, now time.Time) (*models.StreakData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	var isActive bool
	if m.Kind == models.MetricBoolean {
		for _, l := range logs {
			if dateutil.SameDay(l.Timestamp, now) && l.Value.Bool() {
				isActive = true
				break
			}
		}
	} else {
		isActive = TodayValue(logs, now) >= m.Goal
	}

	return &models.StreakData{
		Current:  CurrentStreak(logs, m.ID, now),
		Best:     BestStreak(logs),
		IsActive: isActive,
		Unit:     "Days",
	}, nil
}

func numberData(m models.MetricConfig, logs []models.LogEntry, segment models.Segment, now time.Time) (*models.NumberData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	days := 7
	if segment == models.SegmentMonthly {
		days = 30
	}
	trend := CalculateTrend(LastNDaysValues(logs, days, now))

	direction := "neutral"
	if trend > 0 {
		direction = "up"
	} else if trend < 0 {
		direction = "down"
	}

	return &models.NumberData{
		Value:          TodayValue(logs, now),
		Label:          m.Label,
		Unit:           m.Unit,
		Trend:          trend,
		TrendDirection: direction,
	}, nil
}

func historyData(m models.MetricConfig, logs []models.LogEntry) (*models.HistoryData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	sorted := make([]models.LogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	return &models.HistoryData{Entries: sorted, Unit: m.Unit}, nil
}

func stackedBarData(m models.MetricConfig, logs []models.LogEntry, now time.Time) (*models.StackedBarData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	weekStart := dateutil.StartOfWeek(now)
	weekEnd := dateutil.AddDays(weekStart, 7)

	entries := make([]models.StackedBarDay, 7)
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := dateutil.AddDays(weekStart, i)
		dayIndex[dateutil.DayKey(day)] = i
		entries[i] = models.StackedBarDay{
			Day:    day.Format("Mon"),
			Values: make(map[string]float64),
		}
	}

	for _, l := range logs {
		if l.Timestamp.Before(weekStart) || !l.Timestamp.Before(weekEnd) {
			continue
		}
		i := dayIndex[dateutil.DayKey(l.Timestamp)]
		if m.Kind == models.MetricSelect {
			entries[i].Values[l.Value.Text()]++
		} else {
			entries[i].Values[m.Label] += l.Value.Float()
		}
	}

	colors := map[string]string{m.Label: metricColor(m)}
	if m.Kind == models.MetricSelect {
		for _, opt := range m.Options {
			colors[opt] = metricColor(m)
		}
	}

	return &models.StackedBarData{Entries: entries, Colors: colors}, nil
}

func compoundData(m models.MetricConfig, logs []models.LogEntry) (*models.CompoundData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, l := range logs {
		counts[l.Value.Text()]++
	}

	breakdown := make([]models.BreakdownItem, 0, len(counts))
	for label, count := range counts {
		breakdown = append(breakdown, models.BreakdownItem{Label: label, Value: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Value != breakdown[j].Value {
			return breakdown[i].Value > breakdown[j].Value
		}
		return breakdown[i].Label < breakdown[j].Label
	})

	return &models.CompoundData{Breakdown: breakdown, Label: m.Label}, nil
}

func progressData(m models.MetricConfig, logs []models.LogEntry, now time.Time) (*models.ProgressData, error) {
	if err := requireKind(m); err != nil {
		return nil, err
	}

	max := m.Goal
	if max == 0 {
		max = 10
	}
	return &models.ProgressData{
		Value: TodayValue(logs, now),
		Max:   max,
		Label: m.Label,
		Unit:  m.Unit,
		Color: metricColor(m),
	}, nil
}
