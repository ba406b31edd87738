package usecase

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/shelfcheck/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var tokenRegex = regexp.MustCompile(`\w\w+`)

// DefaultTopK is the neighbour count used when a query does not ask for a
// specific k.
const DefaultTopK = 15

// Index is a TF-IDF vector space over catalog product names, using
// unigrams and bigrams of normalised tokens. It is built once from a
// catalog snapshot, is immutable afterwards, and is safe for concurrent
// readers. Rebuilding from the same snapshot is deterministic down to the
// bit: dimensions are assigned in term-sequence order and every float
// accumulation runs in a fixed order, never over map iteration.
type Index struct {
	records    []domain.CatalogRecord
	vocab      map[string]int // term -> dimension, assigned in first-seen order
	idf        []float64
	vectors    []sparseVector // one L2-normalised vector per record
	categories []string
	defaultK   int
}

// termWeight is one (dimension, weight) component of a sparse vector.
type termWeight struct {
	dim    int
	weight float64
}

// sparseVector is a vector's non-zero components, sorted by dimension.
// The fixed order keeps norms and dot products order-deterministic, since
// float addition is not associative.
type sparseVector []termWeight

// BuildIndex constructs the similarity index from a catalog snapshot.
// defaultK <= 0 falls back to DefaultTopK.
func BuildIndex(records []domain.CatalogRecord, defaultK int) *Index {
	if defaultK <= 0 {
		defaultK = DefaultTopK
	}

	ix := &Index{
		records:  records,
		vocab:    make(map[string]int),
		defaultK: defaultK,
	}

	// First pass: assign vocabulary dimensions and count document
	// frequency. Terms are walked in sequence order, not counts-map order,
	// so a rebuild assigns identical dimensions.
	termCounts := make([]map[string]int, len(records))
	df := make(map[int]int)
	for i, rec := range records {
		ts := terms(rec.Name)
		termCounts[i] = countTerms(ts)

		seen := make(map[string]bool, len(ts))
		for _, term := range ts {
			if seen[term] {
				continue
			}
			seen[term] = true
			dim, ok := ix.vocab[term]
			if !ok {
				dim = len(ix.vocab)
				ix.vocab[term] = dim
			}
			df[dim]++
		}
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1. Keeps every weight positive so
	// cosine scores stay in [0,1].
	n := float64(len(records))
	ix.idf = make([]float64, len(ix.vocab))
	for dim, count := range df {
		ix.idf[dim] = math.Log((1+n)/(1+float64(count))) + 1
	}

	// Second pass: weight and normalise each record vector.
	ix.vectors = make([]sparseVector, len(records))
	for i, counts := range termCounts {
		ix.vectors[i] = ix.vector(counts)
	}

	ix.categories = distinctCategories(records)
	return ix
}

// Size returns the number of catalog records in the index.
func (ix *Index) Size() int {
	return len(ix.records)
}

// Categories returns the sorted distinct categories in the snapshot.
func (ix *Index) Categories() []string {
	out := make([]string, len(ix.categories))
	copy(out, ix.categories)
	return out
}

// Neighbours returns the top-k catalog records most similar to name,
// ordered by descending cosine similarity. Ties keep catalog insertion
// order. k <= 0 uses the index default; k larger than the catalog returns
// all records sorted. An empty catalog yields an empty list.
func (ix *Index) Neighbours(name string, k int) []domain.Neighbour {
	if len(ix.records) == 0 {
		return nil
	}
	if k <= 0 {
		k = ix.defaultK
	}
	if k > len(ix.records) {
		k = len(ix.records)
	}

	query := ix.vector(countTerms(terms(name)))

	sims := make([]float64, len(ix.records))
	for i, vec := range ix.vectors {
		sims[i] = cosine(query, vec)
	}

	order := make([]int, len(ix.records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	neighbours := make([]domain.Neighbour, 0, k)
	for _, idx := range order[:k] {
		neighbours = append(neighbours, domain.Neighbour{
			Record:     ix.records[idx],
			Similarity: sims[idx],
		})
	}
	return neighbours
}

// vector turns term counts into a unit-length sparse vector over the
// existing vocabulary, sorted by dimension. Out-of-vocabulary terms
// contribute zero weight.
func (ix *Index) vector(counts map[string]int) sparseVector {
	vec := make(sparseVector, 0, len(counts))
	for term, count := range counts {
		dim, ok := ix.vocab[term]
		if !ok {
			continue
		}
		vec = append(vec, termWeight{dim: dim, weight: float64(count) * ix.idf[dim]})
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].dim < vec[b].dim })
	normalise(vec)
	return vec
}

// terms produces the unigram+bigram term sequence for a product name.
// Tokens are lowercased runs of two or more word characters, so pack-size
// suffixes like "1L" or "x6" mostly dissolve into low-weight noise.
func terms(name string) []string {
	tokens := tokenRegex.FindAllString(strings.ToLower(name), -1)

	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func countTerms(ts []string) map[string]int {
	counts := make(map[string]int, len(ts))
	for _, t := range ts {
		counts[t]++
	}
	return counts
}

// normalise scales a vector to unit L2 length in place. The sum runs in
// dimension order.
func normalise(vec sparseVector) {
	var sum float64
	for _, tw := range vec {
		sum += tw.weight * tw.weight
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i].weight /= norm
	}
}

// cosine computes the dot product of two dim-sorted unit vectors by merge
// join, clamped to [0,1] against floating-point drift.
func cosine(a, b sparseVector) float64 {
	var dot float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].dim < b[j].dim:
			i++
		case a[i].dim > b[j].dim:
			j++
		default:
			dot += a[i].weight * b[j].weight
			i++
			j++
		}
	}
	if dot > 1 {
		return 1
	}
	if dot < 0 {
		return 0
	}
	return dot
}

func distinctCategories(records []domain.CatalogRecord) []string {
	seen := make(map[string]bool, len(records))
	var out []string
	for _, rec := range records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			out = append(out, rec.Category)
		}
	}
	sort.Strings(out)
	return out
}
