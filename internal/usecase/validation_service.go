package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelfcheck/backend/internal/domain"
)

// Classification thresholds used when the config leaves them unset.
const (
	defaultPriceWarningPct     = 0.25
	defaultPriceHardStopPct    = 0.50
	defaultAssertiveConfidence = 0.70
)

// ValidationConfig holds configuration for the validation service
type ValidationConfig struct {
	TopK                int
	PriceWarningPct     float64
	PriceHardStopPct    float64
	AssertiveConfidence float64
}

// ValidationService validates store submissions against the head-office
// catalog. It is stateless across calls apart from the injected,
// read-only catalog index, so concurrent calls need no coordination.
type ValidationService struct {
	catalog             domain.IndexProvider
	policy              *Policy
	topK                int
	priceWarningPct     float64
	priceHardStopPct    float64
	assertiveConfidence float64
}

// NewValidationService creates a validation service with the given
// catalog provider, policy and configuration.
func NewValidationService(catalog domain.IndexProvider, policy *Policy, config ValidationConfig) *ValidationService {
	topK := config.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	warningPct := config.PriceWarningPct
	if warningPct <= 0 {
		warningPct = defaultPriceWarningPct
	}
	hardStopPct := config.PriceHardStopPct
	if hardStopPct <= 0 {
		hardStopPct = defaultPriceHardStopPct
	}
	assertive := config.AssertiveConfidence
	if assertive <= 0 {
		assertive = defaultAssertiveConfidence
	}

	if policy == nil {
		policy = NewPolicy(nil, nil)
	}

	return &ValidationService{
		catalog:             catalog,
		policy:              policy,
		topK:                topK,
		priceWarningPct:     warningPct,
		priceHardStopPct:    hardStopPct,
		assertiveConfidence: assertive,
	}
}

// Validate runs the full check: find neighbours, infer expected signals,
// classify each submitted field, and aggregate into an overall status.
// Domain-invalid values (non-positive price, unknown category, empty
// catalog) come back as field decisions; only contract violations
// (missing name, unrecognised age flag) return an error.
func (s *ValidationService) Validate(ctx context.Context, sub *domain.Submission) (*domain.ValidationResult, error) {
	if sub == nil || strings.TrimSpace(sub.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidSubmission)
	}
	submittedYes, err := parseAgeFlag(sub.AgeFlag)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	neighbours := s.catalog.Index().Neighbours(sub.Name, s.topK)

	catSignal := InferCategory(neighbours)
	priceSignal := InferPriceBand(neighbours)
	ageSignal := InferAgeFlag(neighbours)

	catDecision, catMsg := classifyCategory(sub.Category, catSignal, s.assertiveConfidence)
	priceDecision, priceMsg := classifyPrice(sub.Price, priceSignal, s.priceWarningPct, s.priceHardStopPct)
	ageDecision, ageMsg := classifyAgeFlag(sub.Name, sub.Category, submittedYes, ageSignal, s.policy, s.assertiveConfidence)

	result := &domain.ValidationResult{
		Category: domain.FieldDecision{
			Decision:  catDecision,
			Message:   catMsg,
			Predicted: catSignal.Predicted,
		},
		Price: domain.PriceDecision{
			Decision: priceDecision,
			Message:  priceMsg,
			Median:   priceSignal.Median,
			Lower:    priceSignal.Lower,
			Upper:    priceSignal.Upper,
		},
		AgeVerification: domain.FieldDecision{
			Decision: ageDecision,
			Message:  ageMsg,
		},
		Overall:    Aggregate(catDecision, priceDecision, ageDecision),
		Neighbours: neighbours,
	}

	if catSignal.Predicted != nil {
		conf := catSignal.Confidence
		result.Category.Confidence = &conf
	}
	if ageSignal.Predicted != nil {
		label := ageFlagLabel(*ageSignal.Predicted)
		conf := ageSignal.Confidence
		result.AgeVerification.Predicted = &label
		result.AgeVerification.Confidence = &conf
	}

	return result, nil
}

// parseAgeFlag normalises the submitted flag to a boolean. Anything other
// than yes/no violates the input contract and fails fast.
func parseAgeFlag(flag string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: age flag must be \"yes\" or \"no\", got %q", domain.ErrInvalidSubmission, flag)
	}
}
