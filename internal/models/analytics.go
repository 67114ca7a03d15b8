package models

import (
	"encoding/json"
	"time"
)

// MetricStats summarizes a metric's raw values. Count is zero when the
// metric has no logs; the remaining fields are meaningless in that case.
type MetricStats struct {
	Sum   float64 `json:"sum"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Correlation is a Pearson coefficient that may be absent when the input
// series were empty or of unequal length. It marshals as a number or null.
type Correlation struct {
	Value float64
	Valid bool
}

// MarshalJSON emits null for an absent correlation.
func (c Correlation) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts a number or null.
func (c *Correlation) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Correlation{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = Correlation{Value: f, Valid: true}
	return nil
}

// WindowComparison compares a metric's rolling average in the current
// window against the wider baseline window.
type WindowComparison struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Delta    float64 `json:"delta"`
}

// Intensity grades how much activity the current window carries relative
// to metric count and window length.
type Intensity string

const (
	IntensityLow      Intensity = "Low"
	IntensityModerate Intensity = "Moderate"
	IntensityHigh     Intensity = "High"
	IntensityPeak     Intensity = "Peak"
)

// HealthStatus grades overall goal reliability.
type HealthStatus string

const (
	StatusOptimal    HealthStatus = "Optimal"
	StatusFunctional HealthStatus = "Functional"
	StatusDegraded   HealthStatus = "Degraded"
)

// ActivityDay holds one day's per-activity duration totals for the
// activity-volume chart.
type ActivityDay struct {
	Label  string             `json:"label"`
	Totals map[string]float64 `json:"totals"`
}

// ActivityVolume is the per-day activity breakdown for the trailing
// window, with a label-to-color mapping sourced from metric colors.
type ActivityVolume struct {
	Days   []ActivityDay     `json:"days"`
	Colors map[string]string `json:"colors"`
}

// SystemHealth is the composite dashboard summary.
type SystemHealth struct {
	Reliability     int            `json:"reliability"`
	Trend           string         `json:"trend"`
	Intensity       Intensity      `json:"intensity"`
	Status          HealthStatus   `json:"status"`
	MomentumHistory []int          `json:"momentum_history"`
	ActivityVolume  ActivityVolume `json:"activity_volume"`
}

// InsightType categorizes a rule-based insight.
type InsightType string

const (
	InsightStreak         InsightType = "streak"
	InsightGoalCompletion InsightType = "goal_completion"
	InsightTrend          InsightType = "trend"
	InsightCorrelation    InsightType = "correlation"
	InsightNormalized     InsightType = "normalized"
)

// Insight is a single rule-based observation about a metric.
type Insight struct {
	Type    InsightType `json:"type"`
	Message string      `json:"message"`
	Value   float64     `json:"value"`
}

// ReportMetric is one metric's row in a generated report.
type ReportMetric struct {
	Name       string      `json:"name"`
	Average    float64     `json:"average"`
	Trend      float64     `json:"trend"`
	Stats      MetricStats `json:"stats"`
	Streak     int         `json:"streak"`
	Completion float64     `json:"completion"`
}

// ReportData carries everything a rendered report needs.
type ReportData struct {
	Metrics      []ReportMetric         `json:"metrics"`
	Correlations map[string]Correlation `json:"correlations"`
	WindowDays   int                    `json:"window_days"`
}

// ReportSections selects which sections a rendered report includes.
type ReportSections struct {
	Summary      bool `json:"summary"`
	Averages     bool `json:"averages"`
	Highs        bool `json:"highs"`
	Lows         bool `json:"lows"`
	Streaks      bool `json:"streaks"`
	Completion   bool `json:"completion"`
	Correlations bool `json:"correlations"`
}

// AllReportSections returns a selection with every section enabled.
func AllReportSections() ReportSections {
	return ReportSections{
		Summary:      true,
		Averages:     true,
		Highs:        true,
		Lows:         true,
		Streaks:      true,
		Completion:   true,
		Correlations: true,
	}
}

// ReportSnapshot is a persisted rendered report.
type ReportSnapshot struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Segment   Segment   `json:"segment"`
	Content   string    `json:"content"`
}
