package metrics

import (
	"sort"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

// RankCandidate pairs a student with their per-subject averages.
type RankCandidate struct {
	StudentID       string
	SubjectAverages map[Subject]float64
}

// Rank orders a cohort by overall average and assigns 1-based ranks.
//
// The overall average is the mean of the subject averages that are
// strictly positive: an average of exactly 0 is treated as "no data"
// and excluded. This mirrors upstream behavior and does conflate a
// genuine zero score with absence of data.
//
// Ties on the overall average are broken by student id ascending, so
// the output is deterministic regardless of input order and ranks are
// always a permutation of 1..n.
func Rank(candidates []RankCandidate) []domain.RankedEntry {
	entries := make([]domain.RankedEntry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, domain.RankedEntry{
			StudentID: c.StudentID,
			Overall:   overallAverage(c.SubjectAverages),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Overall != entries[j].Overall {
			return entries[i].Overall > entries[j].Overall
		}
		return entries[i].StudentID < entries[j].StudentID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankOf looks up a student's entry after a whole-cohort ranking.
// Ranking is never incremental: callers rank everyone, then look up.
func RankOf(entries []domain.RankedEntry, studentID string) (domain.RankedEntry, bool) {
	for _, e := range entries {
		if e.StudentID == studentID {
			return e, true
		}
	}
	return domain.RankedEntry{}, false
}

func overallAverage(subjectAverages map[Subject]float64) float64 {
	var sum float64
	var n int
	for _, avg := range subjectAverages {
		if avg > 0 {
			sum += avg
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
