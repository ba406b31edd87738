package domain

// CatalogRecord is one reference product from the head-office catalog.
// Records are loaded once at startup and never mutated by the engine.
type CatalogRecord struct {
	Name                    string  `json:"name"`
	Category                string  `json:"category"`
	Price                   float64 `json:"price"`
	AgeVerificationRequired bool    `json:"age_verification_required"`
}

// Neighbour is a catalog record selected as textually similar to a
// submitted product name, annotated with its cosine similarity in [0,1].
type Neighbour struct {
	Record     CatalogRecord `json:"record"`
	Similarity float64       `json:"similarity"`
}
