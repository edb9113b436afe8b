package verification

// ReviewRequest is the body of both security and manager checks.
type ReviewRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Notes    string `json:"notes" binding:"max=2000"`
}
