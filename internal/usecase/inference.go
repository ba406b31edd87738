package usecase

import (
	"math"
	"sort"

	"github.com/shelfcheck/backend/internal/domain"
)

// CategorySignal is the predicted category derived from a neighbour set.
// Predicted is nil when the neighbours carry no usable evidence.
type CategorySignal struct {
	Predicted  *string
	Confidence float64
}

// PriceSignal is the typical price band derived from a neighbour set.
// All fields are nil when no neighbours were available.
type PriceSignal struct {
	Median *float64
	Lower  *float64
	Upper  *float64
}

// AgeSignal is the predicted age-verification setting derived from a
// neighbour set. Predicted is nil when no neighbours were available.
type AgeSignal struct {
	Predicted  *bool
	Confidence float64
}

// Band half-width around the median price.
const priceBandPct = 0.25

// InferCategory groups neighbours by category, summing similarity scores
// rather than counting, and predicts the category with the highest mass.
// Confidence is that group's share of the total similarity mass. Zero
// total mass means no evidence, not a unanimous prediction.
func InferCategory(neighbours []domain.Neighbour) CategorySignal {
	if len(neighbours) == 0 {
		return CategorySignal{}
	}

	sums := make(map[string]float64)
	order := make([]string, 0, len(neighbours))
	var total float64
	for _, n := range neighbours {
		if _, ok := sums[n.Record.Category]; !ok {
			order = append(order, n.Record.Category)
		}
		sums[n.Record.Category] += n.Similarity
		total += n.Similarity
	}
	if total == 0 {
		return CategorySignal{}
	}

	// Exact ties go to the category seen first in the neighbour ordering,
	// i.e. the one backed by the most similar record.
	best := order[0]
	for _, cat := range order[1:] {
		if sums[cat] > sums[best] {
			best = cat
		}
	}

	return CategorySignal{
		Predicted:  &best,
		Confidence: sums[best] / total,
	}
}

// InferPriceBand takes the median neighbour price and derives a band of
// ±25% around it.
func InferPriceBand(neighbours []domain.Neighbour) PriceSignal {
	if len(neighbours) == 0 {
		return PriceSignal{}
	}

	prices := make([]float64, len(neighbours))
	for i, n := range neighbours {
		prices[i] = n.Record.Price
	}
	sort.Float64s(prices)

	var median float64
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		median = (prices[mid-1] + prices[mid]) / 2
	} else {
		median = prices[mid]
	}

	lower := median * (1 - priceBandPct)
	upper := median * (1 + priceBandPct)
	return PriceSignal{Median: &median, Lower: &lower, Upper: &upper}
}

// InferAgeFlag predicts the age-verification setting from the share of
// neighbours that require it. A 50/50 split predicts "yes" at confidence
// zero; a unanimous set has confidence one.
func InferAgeFlag(neighbours []domain.Neighbour) AgeSignal {
	if len(neighbours) == 0 {
		return AgeSignal{}
	}

	var yes int
	for _, n := range neighbours {
		if n.Record.AgeVerificationRequired {
			yes++
		}
	}
	yesRatio := float64(yes) / float64(len(neighbours))

	predicted := yesRatio >= 0.5
	return AgeSignal{
		Predicted:  &predicted,
		Confidence: 2 * math.Abs(yesRatio-0.5),
	}
}
