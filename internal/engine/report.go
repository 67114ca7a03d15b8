package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

// BuildReportData computes every statistic a rendered report needs for
// the segment's window.
func BuildReportData(metrics []models.MetricConfig, logs []models.LogEntry, segment models.Segment, now time.Time) models.ReportData {
	windowDays := segment.WindowDays()
	averages := RollingAverages(metrics, logs, windowDays, now)
	deltas := trendDeltas(metrics, logs, windowDays, now)
	grouped := groupByMetric(logs)

	rows := make([]models.ReportMetric, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, models.ReportMetric{
			Name:       m.Label,
			Average:    averages[m.ID],
			Trend:      deltas[m.ID],
			Stats:      Stats(m, logs),
			Streak:     CurrentStreak(logs, m.ID, now),
			Completion: GoalCompletion(m, grouped[m.ID]),
		})
	}

	return models.ReportData{
		Metrics:      rows,
		Correlations: PairwiseCorrelations(metrics, logs, 0),
		WindowDays:   windowDays,
	}
}

// RenderReport formats report data as markdown. Sections are included
// according to the selection; metricCount and logCount feed the summary.
func RenderReport(data models.ReportData, segment models.Segment, metricCount, logCount int, sections models.ReportSections, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# ORBIT %s Report\n", segment)
	fmt.Fprintf(&b, "Generated: %s\n", now.Local().Format("2006-01-02"))
	fmt.Fprintf(&b, "Period: Last %d day(s)\n\n", data.WindowDays)

	if sections.Summary {
		b.WriteString("## Summary\n")
		fmt.Fprintf(&b, "Total Metrics Tracked: %d\n", metricCount)
		fmt.Fprintf(&b, "Total Log Entries: %d\n\n", logCount)
	}

	if sections.Averages {
		b.WriteString("## Averages\n")
		for _, m := range data.Metrics {
			fmt.Fprintf(&b, "- %s: %.2f\n", m.Name, m.Average)
		}
		b.WriteString("\n")
	}

	if sections.Highs {
		b.WriteString("## Top Performers\n")
		for i, m := range rankByCompletion(data.Metrics, true) {
			fmt.Fprintf(&b, "%d. %s: %.1f%% completion\n", i+1, m.Name, m.Completion)
		}
		b.WriteString("\n")
	}

	if sections.Lows {
		b.WriteString("## Needs Attention\n")
		for i, m := range rankByCompletion(data.Metrics, false) {
			fmt.Fprintf(&b, "%d. %s: %.1f%% completion\n", i+1, m.Name, m.Completion)
		}
		b.WriteString("\n")
	}

	if sections.Streaks {
		b.WriteString("## Current Streaks\n")
		for _, m := range data.Metrics {
			if m.Streak > 0 {
				fmt.Fprintf(&b, "- %s: %d day(s)\n", m.Name, m.Streak)
			}
		}
		b.WriteString("\n")
	}

	if sections.Completion {
		b.WriteString("## Goal Completion Rates\n")
		for _, m := range data.Metrics {
			fmt.Fprintf(&b, "- %s: %.1f%%\n", m.Name, m.Completion)
		}
		b.WriteString("\n")
	}

	if sections.Correlations {
		b.WriteString("## Notable Correlations\n")
		notable := notableCorrelations(data.Correlations, 0.5, 5)
		if len(notable) == 0 {
			b.WriteString("No significant correlations found.\n")
		}
		for _, nc := range notable {
			fmt.Fprintf(&b, "- %s: %.0f%%\n", strings.Replace(nc.pair, "-", " <-> ", 1), nc.value*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("End of Report\n")
	return b.String()
}

// rankByCompletion returns up to three metrics ordered by completion,
// descending for top performers or ascending for laggards.
func rankByCompletion(metrics []models.ReportMetric, descending bool) []models.ReportMetric {
	ranked := make([]models.ReportMetric, len(metrics))
	copy(ranked, metrics)
	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].Completion > ranked[j].Completion
		}
		return ranked[i].Completion < ranked[j].Completion
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

type namedCorrelation struct {
	pair  string
	value float64
}

// notableCorrelations filters valid correlations above the threshold and
// returns the strongest few, ordered by absolute value.
func notableCorrelations(correlations map[string]models.Correlation, threshold float64, limit int) []namedCorrelation {
	notable := make([]namedCorrelation, 0, len(correlations))
	for pair, c := range correlations {
		if c.Valid && math.Abs(c.Value) > threshold {
			notable = append(notable, namedCorrelation{pair: pair, value: c.Value})
		}
	}
	sort.Slice(notable, func(i, j int) bool {
		if math.Abs(notable[i].value) != math.Abs(notable[j].value) {
			return math.Abs(notable[i].value) > math.Abs(notable[j].value)
		}
		return notable[i].pair < notable[j].pair
	})
	if len(notable) > limit {
		notable = notable[:limit]
	}
	return notable
}
