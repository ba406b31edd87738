package domain

import "time"

// Submission is a store-submitted product record, as received from the
// store portal. The engine does not persist it.
type Submission struct {
	Name     string  `json:"product_name" binding:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	AgeFlag  string  `json:"age_flag" binding:"required"`
}

// Submission lifecycle states in the head-office review workflow.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionDenied   = "denied"
)

// StoredSubmission is a submission captured for the review workflow,
// together with the validation result it was submitted under.
type StoredSubmission struct {
	ID              string           `json:"id"`
	Timestamp       time.Time        `json:"timestamp"`
	Product         Submission       `json:"product"`
	Validation      ValidationResult `json:"validation"`
	AcceptedChanges []string         `json:"accepted_changes,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Flagged         bool             `json:"flagged"`
	Status          string           `json:"status"`
	DenialReason    string           `json:"denial_reason,omitempty"`
	RiskScore       int              `json:"risk_score"`
	RiskLevel       string           `json:"risk_level"`
}
