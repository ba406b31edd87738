package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/shelfcheck/backend/internal/domain"
)

// classifyCategory compares the submitted category against the predicted
// one. Category mismatches never escalate past warning; a confident
// mismatch is still only a suggestion.
func classifyCategory(submitted string, signal CategorySignal, assertiveConfidence float64) (domain.Decision, string) {
	if signal.Predicted == nil {
		return domain.DecisionPass, "No clear match found in head-office data; category accepted."
	}
	predicted := *signal.Predicted

	if strings.EqualFold(submitted, predicted) {
		return domain.DecisionPass, fmt.Sprintf("Category matches typical head-office category '%s'.", predicted)
	}

	if signal.Confidence >= assertiveConfidence {
		return domain.DecisionWarning, fmt.Sprintf(
			"Most similar head-office products are in category '%s' (confidence %.0f%%). Consider updating.",
			predicted, signal.Confidence*100)
	}

	return domain.DecisionWarning, fmt.Sprintf(
		"Category differs from common head-office category '%s', but model confidence is moderate. Submission will be flagged for review.",
		predicted)
}

// classifyPrice compares the submitted price against the typical band.
// A non-positive price is a hard stop before any band logic, including
// when the catalog gave no signal.
func classifyPrice(price float64, signal PriceSignal, warningPct, hardStopPct float64) (domain.Decision, string) {
	if price <= 0 {
		return domain.DecisionHardStop, "Price must be greater than zero."
	}

	if signal.Median == nil {
		return domain.DecisionPass, "No price band available; price accepted."
	}
	median := *signal.Median

	diffPct := (price - median) / median

	if math.Abs(diffPct) <= warningPct {
		return domain.DecisionPass, fmt.Sprintf(
			"Price is within ±%.0f%% of the typical head-office price (~£%.2f, band £%.2f–£%.2f).",
			warningPct*100, median, *signal.Lower, *signal.Upper)
	}

	if math.Abs(diffPct) <= hardStopPct {
		return domain.DecisionWarning, fmt.Sprintf(
			"Price is %.0f%% away from the typical head-office price (~£%.2f). Submission will be flagged for review.",
			diffPct*100, median)
	}

	return domain.DecisionHardStop, fmt.Sprintf(
		"Price is an extreme outlier (%.0f%% from typical ~£%.2f). Please check and correct before submitting.",
		diffPct*100, median)
}

// classifyAgeFlag compares the submitted age-verification setting against
// policy and the catalog signal. Policy wins: a restricted product
// submitted without age verification is a hard stop regardless of what
// the neighbours do.
func classifyAgeFlag(name, category string, submittedYes bool, signal AgeSignal, policy *Policy, assertiveConfidence float64) (domain.Decision, string) {
	if policy.RequiresAgeVerification(name, category) && !submittedYes {
		return domain.DecisionHardStop,
			"Product appears to be age-restricted by policy. Age verification must be set to 'Yes'."
	}

	if signal.Predicted == nil {
		return domain.DecisionPass, "No clear age-check pattern in head-office data; value accepted."
	}
	predicted := *signal.Predicted

	if submittedYes == predicted {
		return domain.DecisionPass, fmt.Sprintf(
			"Age verification setting matches the typical head-office pattern ('%s').", ageFlagLabel(predicted))
	}

	if signal.Confidence >= assertiveConfidence {
		return domain.DecisionWarning, fmt.Sprintf(
			"Most similar head-office products use age verification '%s'. Submission will be flagged for review.",
			ageFlagLabel(predicted))
	}

	return domain.DecisionWarning,
		"Age verification differs from many similar head-office products; submission will be flagged for review."
}

func ageFlagLabel(required bool) string {
	if required {
		return "Yes"
	}
	return "No"
}

// Aggregate folds the three field decisions into one overall status.
// Any hard stop dominates; otherwise any warning flags the submission.
func Aggregate(decisions ...domain.Decision) domain.OverallStatus {
	overall := domain.StatusReadyForAutoApproval
	for _, d := range decisions {
		switch d {
		case domain.DecisionHardStop:
			return domain.StatusRequiresCorrection
		case domain.DecisionWarning:
			overall = domain.StatusFlaggedForReview
		}
	}
	return overall
}
