package usecase

import (
	"math"
	"testing"

	"github.com/shelfcheck/backend/internal/domain"
)

func neighbour(category string, price float64, ageRequired bool, similarity float64) domain.Neighbour {
	return domain.Neighbour{
		Record: domain.CatalogRecord{
			Name:                    "product",
			Category:                category,
			Price:                   price,
			AgeVerificationRequired: ageRequired,
		},
		Similarity: similarity,
	}
}

func TestInferCategory(t *testing.T) {
	t.Run("empty neighbour set gives no prediction", func(t *testing.T) {
		signal := InferCategory(nil)
		if signal.Predicted != nil {
			t.Errorf("Predicted = %v, want nil", *signal.Predicted)
		}
		if signal.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", signal.Confidence)
		}
	})

	t.Run("sums similarity, not counts", func(t *testing.T) {
		// Two weak snack matches vs one strong drink match
		neighbours := []domain.Neighbour{
			neighbour("Snacks", 1, false, 0.1),
			neighbour("Snacks", 1, false, 0.1),
			neighbour("Soft drinks", 1, false, 0.8),
		}
		signal := InferCategory(neighbours)
		if signal.Predicted == nil || *signal.Predicted != "Soft drinks" {
			t.Fatalf("Predicted = %v, want Soft drinks", signal.Predicted)
		}
		if math.Abs(signal.Confidence-0.8) > 1e-9 {
			t.Errorf("Confidence = %v, want 0.8", signal.Confidence)
		}
	})

	t.Run("per-category sums account for the whole similarity mass", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("A", 1, false, 0.5),
			neighbour("B", 1, false, 0.3),
			neighbour("A", 1, false, 0.15),
			neighbour("C", 1, false, 0.05),
		}
		sums := make(map[string]float64)
		var total float64
		for _, n := range neighbours {
			sums[n.Record.Category] += n.Similarity
			total += n.Similarity
		}
		var mass float64
		for _, s := range sums {
			mass += s
		}
		if math.Abs(mass-total) > 1e-9 {
			t.Errorf("category mass = %v, total = %v", mass, total)
		}

		signal := InferCategory(neighbours)
		if signal.Confidence < 0 || signal.Confidence > 1 {
			t.Errorf("Confidence = %v, want within [0,1]", signal.Confidence)
		}
		if math.Abs(signal.Confidence-0.65) > 1e-9 {
			t.Errorf("Confidence = %v, want 0.65", signal.Confidence)
		}
	})

	t.Run("zero similarity mass means no evidence", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("Snacks", 1, false, 0),
			neighbour("Soft drinks", 1, false, 0),
		}
		signal := InferCategory(neighbours)
		if signal.Predicted != nil {
			t.Errorf("Predicted = %v, want nil for zero mass", *signal.Predicted)
		}
		if signal.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", signal.Confidence)
		}
	})
}

func TestInferPriceBand(t *testing.T) {
	t.Run("empty neighbour set gives no band", func(t *testing.T) {
		signal := InferPriceBand(nil)
		if signal.Median != nil || signal.Lower != nil || signal.Upper != nil {
			t.Errorf("signal = %+v, want all nil", signal)
		}
	})

	t.Run("odd count takes the middle value", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("X", 3.0, false, 1),
			neighbour("X", 1.0, false, 1),
			neighbour("X", 2.0, false, 1),
		}
		signal := InferPriceBand(neighbours)
		if signal.Median == nil || *signal.Median != 2.0 {
			t.Fatalf("Median = %v, want 2.0", signal.Median)
		}
		if *signal.Lower != 1.5 || *signal.Upper != 2.5 {
			t.Errorf("band = [%v, %v], want [1.5, 2.5]", *signal.Lower, *signal.Upper)
		}
	})

	t.Run("even count averages the two middle values", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("X", 1.0, false, 1),
			neighbour("X", 4.0, false, 1),
			neighbour("X", 2.0, false, 1),
			neighbour("X", 3.0, false, 1),
		}
		signal := InferPriceBand(neighbours)
		if signal.Median == nil || *signal.Median != 2.5 {
			t.Errorf("Median = %v, want 2.5", signal.Median)
		}
	})
}

func TestInferAgeFlag(t *testing.T) {
	t.Run("empty neighbour set gives no prediction", func(t *testing.T) {
		signal := InferAgeFlag(nil)
		if signal.Predicted != nil {
			t.Errorf("Predicted = %v, want nil", *signal.Predicted)
		}
		if signal.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", signal.Confidence)
		}
	})

	t.Run("unanimous yes has confidence 1", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("X", 1, true, 1),
			neighbour("X", 1, true, 1),
		}
		signal := InferAgeFlag(neighbours)
		if signal.Predicted == nil || !*signal.Predicted {
			t.Fatalf("Predicted = %v, want yes", signal.Predicted)
		}
		if signal.Confidence != 1 {
			t.Errorf("Confidence = %v, want 1", signal.Confidence)
		}
	})

	t.Run("exact tie predicts yes at confidence 0", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("X", 1, true, 1),
			neighbour("X", 1, false, 1),
		}
		signal := InferAgeFlag(neighbours)
		if signal.Predicted == nil || !*signal.Predicted {
			t.Fatalf("Predicted = %v, want yes on a tie", signal.Predicted)
		}
		if signal.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0 on a tie", signal.Confidence)
		}
	})

	t.Run("minority yes predicts no", func(t *testing.T) {
		neighbours := []domain.Neighbour{
			neighbour("X", 1, true, 1),
			neighbour("X", 1, false, 1),
			neighbour("X", 1, false, 1),
			neighbour("X", 1, false, 1),
		}
		signal := InferAgeFlag(neighbours)
		if signal.Predicted == nil || *signal.Predicted {
			t.Fatalf("Predicted = %v, want no", signal.Predicted)
		}
		// yes_ratio 0.25 -> confidence 0.5
		if math.Abs(signal.Confidence-0.5) > 1e-9 {
			t.Errorf("Confidence = %v, want 0.5", signal.Confidence)
		}
	})
}
