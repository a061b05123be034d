package review

type CreateReviewRequest struct {
	BusinessID int64   `json:"business_id" validate:"required,gt=0"`
	OrderID    *int64  `json:"order_id,omitempty"`
	Rating     float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string  `json:"comment,omitempty"`
}

type UpdateReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string  `json:"comment,omitempty"`
}
