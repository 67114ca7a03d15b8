package models

import "fmt"

// MetricKind identifies what a metric tracks and which operations are
// valid on its log values.
type MetricKind string

const (
	MetricNumber   MetricKind = "number"
	MetricBoolean  MetricKind = "boolean"
	MetricDuration MetricKind = "duration"
	MetricRange    MetricKind = "range"
	MetricSelect   MetricKind = "select"
	MetricText     MetricKind = "text"
)

// ParseMetricKind validates and converts a string to a MetricKind.
func ParseMetricKind(s string) (MetricKind, error) {
	k := MetricKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown metric type %q", s)
	}
	return k, nil
}

// Valid reports whether the kind is one of the known metric kinds.
func (k MetricKind) Valid() bool {
	switch k {
	case MetricNumber, MetricBoolean, MetricDuration, MetricRange, MetricSelect, MetricText:
		return true
	}
	return false
}

// Numeric reports whether log values for this kind carry a meaningful
// number that can be summed and averaged.
func (k MetricKind) Numeric() bool {
	switch k {
	case MetricNumber, MetricDuration, MetricRange:
		return true
	}
	return false
}

// WidgetKind selects the dashboard visualization for a metric.
type WidgetKind string

const (
	WidgetRing       WidgetKind = "ring"
	WidgetSparkline  WidgetKind = "sparkline"
	WidgetHeatmap    WidgetKind = "heatmap"
	WidgetStreak     WidgetKind = "streak"
	WidgetNumber     WidgetKind = "number"
	WidgetHistory    WidgetKind = "history"
	WidgetStackedBar WidgetKind = "stackedbar"
	WidgetCompound   WidgetKind = "compound"
	WidgetProgress   WidgetKind = "progress"
)

// Valid reports whether the kind is one of the known widget kinds.
func (k WidgetKind) Valid() bool {
	switch k {
	case WidgetRing, WidgetSparkline, WidgetHeatmap, WidgetStreak, WidgetNumber,
		WidgetHistory, WidgetStackedBar, WidgetCompound, WidgetProgress:
		return true
	}
	return false
}

// Frequency is the cadence a metric's goal applies to.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Segment is the reporting granularity selector controlling window sizes
// across the analytics layer.
type Segment string

const (
	SegmentDaily   Segment = "Daily"
	SegmentWeekly  Segment = "Weekly"
	SegmentMonthly Segment = "Monthly"
)

// ParseSegment validates and converts a string to a Segment.
// An empty string defaults to Weekly.
func ParseSegment(s string) (Segment, error) {
	if s == "" {
		return SegmentWeekly, nil
	}
	seg := Segment(s)
	switch seg {
	case SegmentDaily, SegmentWeekly, SegmentMonthly:
		return seg, nil
	}
	return "", fmt.Errorf("unknown segment %q", s)
}

// WindowDays maps the segment to its analytics window size in days.
func (s Segment) WindowDays() int {
	switch s {
	case SegmentDaily:
		return 1
	case SegmentMonthly:
		return 30
	default:
		return 7
	}
}
