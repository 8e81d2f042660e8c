package recommender

import (
	"strings"

	"github.com/google/uuid"
)

// MaxPopularity is the upper bound of the editorial popularity scale.
const MaxPopularity = 10.0

// Attraction is one catalog record. It is never modified after the catalog is built.
type Attraction struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Popularity  float64   `json:"popularity"`
	Embedding   []float32 `json:"-"`
}

// AttractionInput is the raw material a catalog is built from.
// Embedding may already be set when it was computed earlier and stored.
type AttractionInput struct {
	ID          uuid.UUID
	Name        string
	City        string
	Description string
	Category    string
	Popularity  float64
	Embedding   []float32
}

// attractionNamespace scopes name-derived IDs for records without an explicit key.
var attractionNamespace = uuid.MustParse("6f1c2b1e-3c7a-4d51-9a43-5b0d1e7f2a90")

// DeriveID returns a stable ID for an attraction that has no explicit key.
func DeriveID(name, city string) uuid.UUID {
	key := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(city))
	return uuid.NewSHA1(attractionNamespace, []byte(key))
}
