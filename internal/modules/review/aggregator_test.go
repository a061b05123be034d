package review

import (
	"testing"

	"marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
)

func reviewsWithRatings(ratings ...float64) []domain.Review {
	out := make([]domain.Review, 0, len(ratings))
	for i, r := range ratings {
		out = append(out, domain.Review{ID: int64(i + 1), BusinessID: 1, UserID: int64(i + 1), Rating: r})
	}
	return out
}

func TestSummarize_Example(t *testing.T) {
	s := Summarize(reviewsWithRatings(5, 5, 4, 3))

	assert.Equal(t, 4, s.ReviewCount)
	assert.Equal(t, 4.25, s.Average)
	assert.Equal(t, domain.RatingCounts{5: 2, 4: 1, 3: 1, 2: 0, 1: 0}, s.Counts)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.ReviewCount)
	assert.Equal(t, 0.0, s.Average)
	assert.Equal(t, domain.RatingCounts{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, s.Counts)
}

func TestSummarize_HalfStepsFloorIntoBuckets(t *testing.T) {
	s := Summarize(reviewsWithRatings(4.5, 5.0, 1.5))

	assert.Equal(t, 3, s.ReviewCount)
	assert.InDelta(t, (4.5+5.0+1.5)/3, s.Average, 1e-9)
	// 4.5 floors to 4, 5.0 stays in bucket 5, 1.5 floors to 1.
	assert.Equal(t, 1, s.Counts[4])
	assert.Equal(t, 1, s.Counts[5])
	assert.Equal(t, 1, s.Counts[1])
}

func TestSummarize_CountsSumToReviewCount(t *testing.T) {
	cases := [][]float64{
		{1},
		{1, 2, 3, 4, 5},
		{2.5, 2.5, 2.5},
		{5, 5, 5, 5, 4.5, 3, 1.5},
	}

	for _, ratings := range cases {
		s := Summarize(reviewsWithRatings(ratings...))

		total := 0
		for k, v := range s.Counts {
			assert.GreaterOrEqual(t, k, 1)
			assert.LessOrEqual(t, k, 5)
			total += v
		}
		assert.Equal(t, s.ReviewCount, total)
		assert.Equal(t, len(ratings), s.ReviewCount)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	reviews := reviewsWithRatings(5, 4, 4.5, 2)

	first := Summarize(reviews)
	second := Summarize(reviews)

	assert.Equal(t, first, second)
}

func TestSummarize_AverageIsUnrounded(t *testing.T) {
	s := Summarize(reviewsWithRatings(5, 4, 4))

	assert.InDelta(t, 13.0/3.0, s.Average, 1e-12)
}
