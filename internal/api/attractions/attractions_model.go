package attractions

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("attraction not found")

const (
	SourceSeed     = "seed"
	SourcePostgres = "postgres"
)

// CatalogStatus describes the catalog currently served.
type CatalogStatus struct {
	Ready     bool      `json:"ready"`
	Source    string    `json:"source"`
	Size      int       `json:"size"`
	Dimension int       `json:"dimension,omitempty"`
	BuiltAt   time.Time `json:"built_at,omitzero"`
}

// AttractionResponse is the public view of a catalog record.
type AttractionResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Category    string    `json:"category"`
	Popularity  float64   `json:"popularity"`
	Description string    `json:"description"`
}

// BackfillResult counts the records an embedding backfill touched.
type BackfillResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}
