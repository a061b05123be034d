package admin

type RejectBusinessRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type SetReviewHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

type StatisticsResponse struct {
	TotalUsers        int `json:"total_users"`
	PendingBusinesses int `json:"pending_businesses"`
}
