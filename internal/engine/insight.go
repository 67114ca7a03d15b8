package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/orbitlabs/orbit-backend/internal/models"
)

// strongCorrelation is the absolute coefficient above which a pairwise
// correlation is surfaced as an insight.
const strongCorrelation = 0.5

// InsightsForMetric builds the rule-based insights for one metric:
// streaks worth mentioning, goal completion, trend direction, strong
// correlations with other metrics, and normalized performance.
func InsightsForMetric(metric models.MetricConfig, metrics []models.MetricConfig, logs []models.LogEntry, now time.Time) []models.Insight {
	var insights []models.Insight

	if streak := CurrentStreak(logs, metric.ID, now); streak > 1 {
		insights = append(insights, models.Insight{
			Type:    models.InsightStreak,
			Message: fmt.Sprintf("You have a %d-day streak for %s. Keep it up!", streak, metric.Label),
			Value:   float64(streak),
		})
	}

	metricLogs := filterByMetric(logs, metric.ID)
	completion := GoalCompletion(metric, metricLogs)
	insights = append(insights, models.Insight{
		Type:    models.InsightGoalCompletion,
		Message: fmt.Sprintf("You are %.1f%% towards your goal for %s.", completion, metric.Label),
		Value:   completion,
	})

	rollingAvg := RollingAverage(logs, metric.ID, 7, now)
	delta := CalculateMomentum([]models.MetricConfig{metric}, logs, now)[metric.ID]
	sign := ""
	if delta >= 0 {
		sign = "+"
	}
	insights = append(insights, models.Insight{
		Type:    models.InsightTrend,
		Message: fmt.Sprintf("Last week average: %.1f (%s%.1f change from previous week).", rollingAvg, sign, delta),
		Value:   delta,
	})

	labelByID := make(map[string]string, len(metrics))
	for _, m := range metrics {
		labelByID[m.ID] = m.Label
	}
	for pair, c := range PairwiseCorrelations(metrics, logs, 0) {
		if !c.Valid || math.Abs(c.Value) < strongCorrelation {
			continue
		}
		other, ok := pairPartner(pair, metric.ID)
		if !ok {
			continue
		}
		direction := "positive"
		if c.Value < 0 {
			direction = "negative"
		}
		name := labelByID[other]
		if name == "" {
			name = other
		}
		insights = append(insights, models.Insight{
			Type:    models.InsightCorrelation,
			Message: fmt.Sprintf("Strong %s correlation (%.2f) with %s.", direction, c.Value, name),
			Value:   c.Value,
		})
	}

	normalized := NormalizedMetrics([]models.MetricConfig{metric}, logs)[metric.ID]
	avgNorm := mean(normalized)
	insights = append(insights, models.Insight{
		Type:    models.InsightNormalized,
		Message: fmt.Sprintf("Normalized performance over time: %.1f%%.", avgNorm*100),
		Value:   avgNorm,
	})

	return insights
}

// GenerateInsights maps each metric id to its insights.
func GenerateInsights(metrics []models.MetricConfig, logs []models.LogEntry, now time.Time) map[string][]models.Insight {
	all := make(map[string][]models.Insight, len(metrics))
	for _, m := range metrics {
		all[m.ID] = InsightsForMetric(m, metrics, logs, now)
	}
	return all
}

// pairPartner extracts the other metric id from a pair key, reporting
// whether the given id participates in the pair.
func pairPartner(pair, metricID string) (string, bool) {
	switch {
	case strings.HasPrefix(pair, metricID+"-"):
		return strings.TrimPrefix(pair, metricID+"-"), true
	case strings.HasSuffix(pair, "-"+metricID):
		return strings.TrimSuffix(pair, "-"+metricID), true
	}
	return "", false
}
