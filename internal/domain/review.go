package domain

import "time"

// Review is a customer's rating of one business. Half-step ratings
// (4.5 etc.) are allowed for display purposes; histogram bucketing
// floors them.
type Review struct {
	ID           int64     `json:"id"`
	BusinessID   int64     `json:"business_id" gorm:"uniqueIndex:idx_one_review_per_user"`
	UserID       int64     `json:"user_id" gorm:"uniqueIndex:idx_one_review_per_user"`
	OrderID      *int64    `json:"order_id,omitempty"`
	Rating       float64   `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	HelpfulCount int       `json:"helpful_count"`
	IsHidden     bool      `json:"is_hidden"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RatingSummary is the derived aggregate written back onto the
// business row. Invariants after recomputation: Average equals
// sum/count (0 for an empty set) and the histogram counts sum to
// ReviewCount.
type RatingSummary struct {
	Average     float64      `json:"average_rating"`
	ReviewCount int          `json:"review_count"`
	Counts      RatingCounts `json:"rating_counts"`
}

// ReviewHelpfulVote records that a user found a review helpful.
// One vote per user per review, enforced by a unique index.
type ReviewHelpfulVote struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id" gorm:"uniqueIndex:idx_one_vote_per_user"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_one_vote_per_user"`
	CreatedAt time.Time `json:"created_at"`
}
