package models

import (
	"encoding/json"
	"errors"
)

// Widget pairs a visible metric with its shaped view-model data.
type Widget struct {
	Metric MetricConfig `json:"metric"`
	Data   WidgetData   `json:"data"`
}

// WidgetData is a result variant: either Err describes why shaping failed
// for this metric, or exactly one payload pointer matching Kind is set.
// One bad metric therefore never aborts the whole dashboard.
type WidgetData struct {
	Kind WidgetKind
	Err  string

	Ring       *RingData
	Sparkline  *SparklineData
	Heatmap    *HeatmapData
	Streak     *StreakData
	Number     *NumberData
	History    *HistoryData
	StackedBar *StackedBarData
	Compound   *CompoundData
	Progress   *ProgressData
}

// ErrorWidgetData builds the error variant.
func ErrorWidgetData(kind WidgetKind, msg string) WidgetData {
	return WidgetData{Kind: kind, Err: msg}
}

type widgetError struct {
	Error string `json:"error"`
}

// MarshalJSON emits the single payload matching Kind, or {"error": ...}
// for the error variant.
func (d WidgetData) MarshalJSON() ([]byte, error) {
	if d.Err != "" {
		return json.Marshal(widgetError{Error: d.Err})
	}
	switch d.Kind {
	case WidgetRing:
		return json.Marshal(d.Ring)
	case WidgetSparkline:
		return json.Marshal(d.Sparkline)
	case WidgetHeatmap:
		return json.Marshal(d.Heatmap)
	case WidgetStreak:
		return json.Marshal(d.Streak)
	case WidgetNumber:
		return json.Marshal(d.Number)
	case WidgetHistory:
		return json.Marshal(d.History)
	case WidgetStackedBar:
		return json.Marshal(d.StackedBar)
	case WidgetCompound:
		return json.Marshal(d.Compound)
	case WidgetProgress:
		return json.Marshal(d.Progress)
	}
	return nil, errors.New("widget data has no payload")
}

// RingData drives a circular goal-completion chart.
type RingData struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// SparklineData carries raw per-day sums for a trailing window plus
// today's value. The series is intentionally not normalized.
type SparklineData struct {
	Data    []float64 `json:"data"`
	Current float64   `json:"current"`
	Label   string    `json:"label"`
	Color   string    `json:"color"`
}

// HeatmapData maps day keys to a 0-100 intensity.
type HeatmapData struct {
	Values map[string]float64 `json:"values"`
	Color  string             `json:"color"`
}

// StreakData summarizes consecutive-day activity.
type StreakData struct {
	Current  int    `json:"current"`
	Best     int    `json:"best"`
	IsActive bool   `json:"is_active"`
	Unit     string `json:"unit"`
}

// NumberData is a headline number with a trend indicator.
type NumberData struct {
	Value          float64 `json:"value"`
	Label          string  `json:"label"`
	Unit           string  `json:"unit"`
	Trend          int     `json:"trend"`
	TrendDirection string  `json:"trend_direction"`
}

// HistoryData lists the most recent raw entries, newest first.
type HistoryData struct {
	Entries []LogEntry `json:"entries"`
	Unit    string     `json:"unit"`
}

// StackedBarDay is one weekday's stacked values.
type StackedBarDay struct {
	Day    string             `json:"day"`
	Values map[string]float64 `json:"values"`
}

// StackedBarData buckets the current calendar week Monday through Sunday.
type StackedBarData struct {
	Entries []StackedBarDay   `json:"entries"`
	Colors  map[string]string `json:"colors"`
}

// BreakdownItem is one distinct value's frequency.
type BreakdownItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// CompoundData is a frequency histogram of raw values.
type CompoundData struct {
	Breakdown []BreakdownItem `json:"breakdown"`
	Label     string          `json:"label"`
}

// ProgressData drives a progress bar toward the metric's goal.
type ProgressData struct {
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
	Color string  `json:"color"`
}
