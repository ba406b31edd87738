package domain

// Decision is the outcome of a single field check.
type Decision string

const (
	DecisionPass     Decision = "pass"
	DecisionWarning  Decision = "warning"
	DecisionHardStop Decision = "hard_stop"
)

// OverallStatus is the aggregated outcome of all three field checks.
type OverallStatus string

const (
	StatusReadyForAutoApproval OverallStatus = "ready_for_auto_approval"
	StatusFlaggedForReview     OverallStatus = "flagged_for_review"
	StatusRequiresCorrection   OverallStatus = "requires_correction"
)

// Label returns the human-readable phrasing shown to store staff.
func (s OverallStatus) Label() string {
	switch s {
	case StatusRequiresCorrection:
		return "Requires correction before submission."
	case StatusFlaggedForReview:
		return "Submitted with warnings; head office will review."
	default:
		return "Ready for automatic approval."
	}
}

// FieldDecision is the outcome of the category or age-verification check.
// Predicted and Confidence are nil when the catalog gave no signal; a nil
// Predicted distinguishes a fail-open pass from an evidence-based one.
type FieldDecision struct {
	Decision   Decision `json:"decision"`
	Message    string   `json:"message"`
	Predicted  *string  `json:"predicted,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// PriceDecision is the outcome of the price check. Median, Lower and Upper
// are nil when no neighbours were available to derive a band from.
type PriceDecision struct {
	Decision Decision `json:"decision"`
	Message  string   `json:"message"`
	Median   *float64 `json:"median,omitempty"`
	Lower    *float64 `json:"lower,omitempty"`
	Upper    *float64 `json:"upper,omitempty"`
}

// ValidationResult is the complete outcome of validating one submission.
// It is created fresh per call and immutable once returned.
type ValidationResult struct {
	Category        FieldDecision `json:"category"`
	Price           PriceDecision `json:"price"`
	AgeVerification FieldDecision `json:"age_verification"`
	Overall         OverallStatus `json:"overall"`
	Neighbours      []Neighbour   `json:"neighbours"`
}
