package metrics

import "github.com/edu-tools/cohort-atlas/pkg/models/domain"

// trendThreshold is the fixed score-point difference between the two
// halves of a series that counts as movement.
const trendThreshold = 5

// ClassifyTrend compares the more-recent half of a score series against
// the older half. The series must be ordered most-recent-first. Fewer
// than two points is insufficient signal and classifies stable.
func ClassifyTrend(series []domain.ScoreRecord) domain.Trend {
	n := len(series)
	if n < 2 {
		return domain.TrendStable
	}

	split := (n + 1) / 2 // ceil(n/2): recent half gets the extra point
	diff := meanScore(series[:split]) - meanScore(series[split:])

	switch {
	case diff > trendThreshold:
		return domain.TrendImproving
	case diff < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func meanScore(records []domain.ScoreRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Score
	}
	return sum / float64(len(records))
}
