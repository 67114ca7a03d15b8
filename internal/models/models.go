package models

import "time"

// ValueRange bounds a range-kind metric's values.
type ValueRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// MetricConfig is a user-defined trackable quantity or habit.
// The ID is immutable once logs reference it; Kind determines which
// operations are valid on the metric's log values.
type MetricConfig struct {
	ID               string      `json:"id"`
	Label            string      `json:"label"`
	Kind             MetricKind  `json:"type"`
	Goal             float64     `json:"goal"`
	Frequency        Frequency   `json:"frequency,omitempty"`
	Color            string      `json:"color,omitempty"`
	Widget           WidgetKind  `json:"widget_type"`
	Unit             string      `json:"unit,omitempty"`
	Range            *ValueRange `json:"range,omitempty"`
	Options          []string    `json:"options,omitempty"`
	DashboardVisible *bool       `json:"dashboard_visible,omitempty"`
	DisplayOrder     int         `json:"display_order"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Visible reports whether the metric appears on the dashboard.
// An unset flag means visible.
func (m MetricConfig) Visible() bool {
	return m.DashboardVisible == nil || *m.DashboardVisible
}

// GoalFloor returns the metric's goal guarded against division by zero.
func (m MetricConfig) GoalFloor() float64 {
	if m.Goal > 0 {
		return m.Goal
	}
	return 1
}

// LogEntry is a single timestamped observation against a metric.
// Entries are append-only: never updated, only added or deleted.
type LogEntry struct {
	ID        string    `json:"id"`
	MetricID  string    `json:"metric_id"`
	Value     Value     `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeLog is a duration-tracking entry for an activity. When merged into
// unified analytics it behaves as a LogEntry with value = duration and
// timestamp = start time.
type TimeLog struct {
	ID         string     `json:"id"`
	ActivityID string     `json:"activity_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Duration   float64    `json:"duration_hours"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AsLogEntry converts the time log into its LogEntry form for analytics.
func (t TimeLog) AsLogEntry() LogEntry {
	return LogEntry{
		ID:        t.ID,
		MetricID:  t.ActivityID,
		Value:     NumberValue(t.Duration),
		Timestamp: t.StartTime,
		CreatedAt: t.CreatedAt,
	}
}

// CreateMetricRequest is the request to create a metric.
type CreateMetricRequest struct {
	Label            string      `json:"label" binding:"required"`
	Type             string      `json:"type" binding:"required"`
	Goal             float64     `json:"goal"`
	Frequency        string      `json:"frequency"`
	Color            string      `json:"color"`
	WidgetType       string      `json:"widget_type"`
	Unit             string      `json:"unit"`
	Range            *ValueRange `json:"range"`
	Options          []string    `json:"options"`
	DashboardVisible *bool       `json:"dashboard_visible"`
	DisplayOrder     int         `json:"display_order"`
}

// UpdateMetricRequest is the request to update a metric. Absent fields are
// left unchanged; the metric's ID and Kind are immutable. Goal, Color, and
// Unit accept an explicit null to clear the current value.
type UpdateMetricRequest struct {
	Label            *string        `json:"label"`
	Goal             NullableFloat  `json:"goal"`
	Frequency        *string        `json:"frequency"`
	Color            NullableString `json:"color"`
	WidgetType       *string        `json:"widget_type"`
	Unit             NullableString `json:"unit"`
	Range            *ValueRange    `json:"range"`
	Options          []string       `json:"options"`
	DashboardVisible *bool          `json:"dashboard_visible"`
	DisplayOrder     *int           `json:"display_order"`
}

// CreateLogRequest is the request to record an observation.
type CreateLogRequest struct {
	MetricID  string `json:"metric_id"`
	Value     *Value `json:"value"`
	Timestamp string `json:"timestamp"`
}

// CreateTimeLogRequest is the request to record a timed activity.
type CreateTimeLogRequest struct {
	ActivityID string  `json:"activity_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Duration   float64 `json:"duration_hours"`
	Notes      string  `json:"notes"`
}
