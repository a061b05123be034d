package review

import (
	"math"

	"marketplace/internal/domain"
)

// Summarize recomputes the rating summary from the full visible review
// set of a business. An empty set yields a zero average and count.
// Half-step ratings are floored into their star bucket, so 4.5 counts
// under 4 and exactly 5.0 under 5; buckets are clamped to [1,5].
// The average is stored unrounded, formatting is a client concern.
func Summarize(reviews []domain.Review) domain.RatingSummary {
	counts := domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	if len(reviews) == 0 {
		return domain.RatingSummary{Average: 0, ReviewCount: 0, Counts: counts}
	}

	var sum float64
	for _, rv := range reviews {
		sum += rv.Rating
		counts[bucket(rv.Rating)]++
	}

	return domain.RatingSummary{
		Average:     sum / float64(len(reviews)),
		ReviewCount: len(reviews),
		Counts:      counts,
	}
}

func bucket(rating float64) int {
	b := int(math.Floor(rating))
	if b < 1 {
		b = 1
	}
	if b > 5 {
		b = 5
	}
	return b
}
