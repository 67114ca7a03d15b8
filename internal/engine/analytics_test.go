package engine

import (
	"math"
	"testing"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"empty", nil, 0},
		{"single value", []float64{5}, 0},
		{"flat", []float64{4, 4, 4, 4}, 0},
		{"doubling", []float64{2, 2, 4, 4}, 100},
		{"halving", []float64{4, 4, 2, 2}, -50},
		{"zero first half with activity", []float64{0, 0, 3, 5}, 100},
		{"all zeros", []float64{0, 0, 0, 0}, 0},
		{"odd length favors second half", []float64{2, 2, 2, 2, 2}, 0},
		{"rounded", []float64{3, 3, 4, 4}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTrend(tt.values); got != tt.want {
				t.Errorf("CalculateTrend = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRollingAverages(t *testing.T) {
	metrics := []models.MetricConfig{
		numberMetric("m1", 10),
		numberMetric("m2", 10),
	}

	// 7 days at 5 for m1, one stale log outside the window for m2.
	var logs []models.LogEntry
	for i := 0; i < 7; i++ {
		logs = append(logs, numLog("m1", 5, daysAgo(i)))
	}
	logs = append(logs, numLog("m2", 50, daysAgo(20)))

	got := RollingAverages(metrics, logs, 7, testNow)
	if got["m1"] != 5 {
		t.Errorf("m1 = %v, want 5", got["m1"])
	}
	if got["m2"] != 0 {
		t.Errorf("m2 = %v, want 0", got["m2"])
	}
}

func TestCalculateMomentum(t *testing.T) {
	metrics := []models.MetricConfig{numberMetric("m1", 10)}

	// Current week averages 6, previous week averages 4.
	var logs []models.LogEntry
	for i := 0; i < 7; i++ {
		logs = append(logs, numLog("m1", 6, daysAgo(i)))
		logs = append(logs, numLog("m1", 4, daysAgo(i+7)))
	}

	got := CalculateMomentum(metrics, logs, testNow)
	if math.Abs(got["m1"]-2) > 1e-9 {
		t.Errorf("momentum = %v, want 2", got["m1"])
	}
}

func TestCalculateMomentum_NoLogsIsZero(t *testing.T) {
	metrics := []models.MetricConfig{numberMetric("m1", 10)}

	got := CalculateMomentum(metrics, nil, testNow)
	if got["m1"] != 0 {
		t.Errorf("momentum = %v, want 0", got["m1"])
	}
	if math.IsNaN(got["m1"]) {
		t.Error("momentum is NaN")
	}
}

func TestNormalizedMetrics(t *testing.T) {
	metrics := []models.MetricConfig{
		numberMetric("m1", 10),
		boolMetric("m2"),
	}
	logs := []models.LogEntry{
		numLog("m1", 5, daysAgo(1)),
		numLog("m1", 25, daysAgo(0)),
		boolLog("m2", true, daysAgo(0)),
		boolLog("m2", false, daysAgo(1)),
	}

	got := NormalizedMetrics(metrics, logs)

	wantM1 := []float64{0.5, 1}
	for i, v := range wantM1 {
		if got["m1"][i] != v {
			t.Errorf("m1[%d] = %v, want %v", i, got["m1"][i], v)
		}
	}
	wantM2 := []float64{1, 0}
	for i, v := range wantM2 {
		if got["m2"][i] != v {
			t.Errorf("m2[%d] = %v, want %v", i, got["m2"][i], v)
		}
	}

	for id, values := range got {
		for i, v := range values {
			if v < 0 || v > 1 {
				t.Errorf("%s[%d] = %v outside [0,1]", id, i, v)
			}
		}
	}
}

func TestWindowComparisons(t *testing.T) {
	metrics := []models.MetricConfig{numberMetric("m1", 10)}

	// Window of 7: recent week at 8, the prior week at 4; the baseline
	// spans both, so previous = mean of all 14 entries = 6.
	var logs []models.LogEntry
	for i := 0; i < 7; i++ {
		logs = append(logs, numLog("m1", 8, daysAgo(i)))
		logs = append(logs, numLog("m1", 4, daysAgo(i+7)))
	}

	got := WindowComparisons(metrics, logs, 7, testNow)["m1"]
	if math.Abs(got.Current-8) > 1e-9 {
		t.Errorf("Current = %v, want 8", got.Current)
	}
	if math.Abs(got.Previous-6) > 1e-9 {
		t.Errorf("Previous = %v, want 6", got.Previous)
	}
	if math.Abs(got.Delta-2) > 1e-9 {
		t.Errorf("Delta = %v, want 2", got.Delta)
	}
}

func TestCalculateSystemHealth_EmptyMetrics(t *testing.T) {
	got := CalculateSystemHealth(nil, nil, models.SegmentWeekly, nil, testNow)
	if got.Reliability != 0 || got.Status != "" || len(got.MomentumHistory) != 0 {
		t.Errorf("zero value expected, got %+v", got)
	}
}

func TestCalculateSystemHealth(t *testing.T) {
	metrics := []models.MetricConfig{
		{ID: "m1", Label: "Deep Work", Kind: models.MetricNumber, Goal: 5, Color: "#111111"},
	}

	// Every day of the trailing week hits the goal exactly.
	var logs []models.LogEntry
	for i := 0; i < 7; i++ {
		logs = append(logs, numLog("m1", 5, daysAgo(i)))
	}

	got := CalculateSystemHealth(metrics, logs, models.SegmentWeekly, nil, testNow)

	if got.Reliability != 100 {
		t.Errorf("Reliability = %d, want 100", got.Reliability)
	}
	if got.Status != models.StatusOptimal {
		t.Errorf("Status = %q, want %q", got.Status, models.StatusOptimal)
	}
	if got.Trend != "+100%" {
		t.Errorf("Trend = %q, want +100%%", got.Trend)
	}
	// 7 entries / (1 metric x 7 days) = 1.0, above the 0.8 threshold.
	if got.Intensity != models.IntensityHigh {
		t.Errorf("Intensity = %q, want %q", got.Intensity, models.IntensityHigh)
	}
	if len(got.MomentumHistory) != 7 {
		t.Fatalf("MomentumHistory length = %d, want 7", len(got.MomentumHistory))
	}
	for i, c := range got.MomentumHistory {
		if c != 1 {
			t.Errorf("MomentumHistory[%d] = %d, want 1", i, c)
		}
	}
	if len(got.ActivityVolume.Days) != 7 {
		t.Fatalf("ActivityVolume days = %d, want 7", len(got.ActivityVolume.Days))
	}
	last := got.ActivityVolume.Days[6]
	if last.Totals["Deep Work"] != 5 {
		t.Errorf("today's total = %v, want 5", last.Totals["Deep Work"])
	}
	if got.ActivityVolume.Colors["Deep Work"] != "#111111" {
		t.Errorf("color = %q", got.ActivityVolume.Colors["Deep Work"])
	}
}

func TestCalculateSystemHealth_MergesTimeLogs(t *testing.T) {
	metrics := []models.MetricConfig{
		{ID: "m1", Label: "Focus", Kind: models.MetricDuration, Goal: 2},
	}
	timeLogs := []models.TimeLog{
		{ID: "t1", ActivityID: "m1", Duration: 2, StartTime: daysAgo(0)},
	}

	got := CalculateSystemHealth(metrics, nil, models.SegmentWeekly, timeLogs, testNow)
	if got.Reliability != 100 {
		t.Errorf("Reliability = %d, want 100", got.Reliability)
	}
}

func TestCalculateSystemHealth_IntensityThresholds(t *testing.T) {
	metrics := []models.MetricConfig{numberMetric("m1", 10)}

	logsFor := func(entries int) []models.LogEntry {
		var logs []models.LogEntry
		for i := 0; i < entries; i++ {
			logs = append(logs, numLog("m1", 1, daysAgo(i%7)))
		}
		return logs
	}

	tests := []struct {
		entries int
		want    models.Intensity
	}{
		{0, models.IntensityLow},
		{2, models.IntensityLow},      // 2/7 = 0.29
		{4, models.IntensityModerate}, // 4/7 = 0.57
		{7, models.IntensityHigh},     // 7/7 = 1.0
		{9, models.IntensityPeak},     // 9/7 = 1.29
	}

	for _, tt := range tests {
		got := CalculateSystemHealth(metrics, logsFor(tt.entries), models.SegmentWeekly, nil, testNow)
		if got.Intensity != tt.want {
			t.Errorf("%d entries: Intensity = %q, want %q", tt.entries, got.Intensity, tt.want)
		}
	}
}

func TestCalculateSystemHealth_DailyLabels(t *testing.T) {
	metrics := []models.MetricConfig{numberMetric("m1", 10)}
	logs := []models.LogEntry{numLog("m1", 1, daysAgo(0))}

	got := CalculateSystemHealth(metrics, logs, models.SegmentDaily, nil, testNow)
	if len(got.ActivityVolume.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(got.ActivityVolume.Days))
	}
	if got.ActivityVolume.Days[0].Label != "Today" {
		t.Errorf("label = %q, want Today", got.ActivityVolume.Days[0].Label)
	}
}

func TestCalculateSystemHealth_MonthlyLabels(t *testing.T) {
	metrics := []models.MetricConfig{numberMetric("m1", 10)}

	got := CalculateSystemHealth(metrics, []models.LogEntry{numLog("m1", 1, daysAgo(0))}, models.SegmentMonthly, nil, testNow)
	if len(got.ActivityVolume.Days) != 30 {
		t.Fatalf("days = %d, want 30", len(got.ActivityVolume.Days))
	}
	wantLast := "15" // testNow is June 15
	if got.ActivityVolume.Days[29].Label != wantLast {
		t.Errorf("last label = %q, want %q", got.ActivityVolume.Days[29].Label, wantLast)
	}
	if len(got.MomentumHistory) != 30 {
		t.Errorf("MomentumHistory length = %d, want 30", len(got.MomentumHistory))
	}
}

func TestMean(t *testing.T) {
	if mean(nil) != 0 {
		t.Error("mean(nil) != 0")
	}
	if got := mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("mean = %v, want 2", got)
	}
}
