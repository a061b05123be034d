package domain

import "time"

type BusinessStatus string

const (
	BusinessPending  BusinessStatus = "pending"
	BusinessApproved BusinessStatus = "approved"
	BusinessRejected BusinessStatus = "rejected"
	BusinessBlocked  BusinessStatus = "blocked"
)

// RatingCounts is the per-star histogram stored on the business row.
// Keys are the star buckets 1..5.
type RatingCounts map[int]int

type Business struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"owner_id"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Phone       string         `json:"phone,omitempty"`
	LogoURL     string         `json:"logo_url,omitempty"`
	Status      BusinessStatus `json:"status"`

	// Derived rating summary, recomputed by the review module whenever
	// the visible review set for this business changes.
	Rating       float64      `json:"rating"`
	ReviewCount  int          `json:"review_count"`
	RatingCounts RatingCounts `json:"rating_counts,omitempty" gorm:"serializer:json;type:json"`

	RejectedReason string     `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`

	Products []Product `json:"products,omitempty"`
}
