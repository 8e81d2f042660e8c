package attractions

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

//go:embed seed/attractions.yaml
var seedYAML []byte

type seedEntry struct {
	Name        string  `yaml:"name"`
	City        string  `yaml:"city"`
	Category    string  `yaml:"category"`
	Popularity  float64 `yaml:"popularity"`
	Description string  `yaml:"description"`
}

// LoadSeed returns the embedded catalog in file order.
func LoadSeed() ([]recommender.AttractionInput, error) {
	return parseSeed(seedYAML)
}

func parseSeed(data []byte) ([]recommender.AttractionInput, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	inputs := make([]recommender.AttractionInput, len(entries))
	for i, e := range entries {
		inputs[i] = recommender.AttractionInput{
			ID:          recommender.DeriveID(e.Name, e.City),
			Name:        e.Name,
			City:        e.City,
			Description: e.Description,
			Category:    e.Category,
			Popularity:  e.Popularity,
		}
	}
	return inputs, nil
}
