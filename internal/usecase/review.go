package usecase

import (
	"sort"

	"github.com/shelfcheck/backend/internal/domain"
)

// Risk levels for the head-office review queue.
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// RiskScore sums the severity of the three field decisions: a hard stop
// counts 2, a warning 1, a pass 0. Higher score means more head-office
// attention.
func RiskScore(result *domain.ValidationResult) int {
	score := 0
	for _, d := range []domain.Decision{
		result.Category.Decision,
		result.Price.Decision,
		result.AgeVerification.Decision,
	} {
		switch d {
		case domain.DecisionHardStop:
			score += 2
		case domain.DecisionWarning:
			score++
		}
	}
	return score
}

// RiskLevel maps a numeric risk score to a human label.
func RiskLevel(score int) string {
	switch {
	case score >= 3:
		return RiskHigh
	case score >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

// NeedsReview reports whether any field decision was a warning or a hard
// stop, i.e. the submission cannot be auto-approved as-is.
func NeedsReview(result *domain.ValidationResult) bool {
	return result.Overall != domain.StatusReadyForAutoApproval
}

// SortQueue orders pending submissions for the review queue: highest risk
// first, then newest first within the same risk.
func SortQueue(subs []*domain.StoredSubmission) {
	sort.SliceStable(subs, func(a, b int) bool {
		if subs[a].RiskScore != subs[b].RiskScore {
			return subs[a].RiskScore > subs[b].RiskScore
		}
		return subs[a].Timestamp.After(subs[b].Timestamp)
	})
}
