package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/opinionmap/api/internal/core/domain"
)

// AggregateAnswers groups a proximity result set into per-question vote
// tallies. Buckets are keyed by question text; two questions sharing the
// same text collapse into one bucket. Within a bucket, options are sorted
// by descending count with first-encounter order as the tiebreak. An empty
// input yields an empty (non-nil) slice. The computation is deterministic
// and idempotent.
func AggregateAnswers(answers []domain.ProximityAnswer) []domain.QuestionResult {
	type bucket struct {
		counts map[string]int64
		order  []string // option texts in first-encounter order
		total  int64
	}

	buckets := make(map[string]*bucket)
	var bucketOrder []string

	for _, a := range answers {
		key := a.QuestionText
		if key == "" {
			// Orphaned answer: fall back to a synthetic label rather
			// than dropping the vote.
			key = fmt.Sprintf("Question ID: %d", a.QuestionID)
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{counts: make(map[string]int64)}
			buckets[key] = b
			bucketOrder = append(bucketOrder, key)
		}

		if _, seen := b.counts[a.Text]; !seen {
			b.order = append(b.order, a.Text)
		}
		b.counts[a.Text]++
		b.total++
	}

	results := make([]domain.QuestionResult, 0, len(bucketOrder))
	for _, key := range bucketOrder {
		b := buckets[key]

		options := make([]domain.OptionTally, 0, len(b.order))
		for _, text := range b.order {
			count := b.counts[text]
			options = append(options, domain.OptionTally{
				Text:       text,
				VoteCount:  count,
				Percentage: roundPercentage(count, b.total),
			})
		}

		sort.SliceStable(options, func(i, j int) bool {
			return options[i].VoteCount > options[j].VoteCount
		})

		results = append(results, domain.QuestionResult{
			QuestionText: key,
			TotalVotes:   b.total,
			Options:      options,
		})
	}

	return results
}

// roundPercentage returns 100*count/total rounded to one decimal place.
func roundPercentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
