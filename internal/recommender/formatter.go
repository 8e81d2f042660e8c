package recommender

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	// NoRecommendationsMessage is rendered for an empty ranking.
	NoRecommendationsMessage = "No attractions match your preferences right now. Try another location or broader interests."

	// UnavailableMessage is shown instead of a ranking when the recommender cannot run.
	UnavailableMessage = "The recommendation system is currently unavailable. Please try again later."
)

// Recommendation is one ranked entry ready for presentation.
type Recommendation struct {
	Rank            int             `json:"rank"`
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	City            string          `json:"city"`
	Category        string          `json:"category"`
	MatchPercentage float64         `json:"match_percentage"`
	Description     string          `json:"description"`
	Scores          ScoreComponents `json:"scores"`
}

// MatchPercentage rescales a final score to 0-100 rounded to one decimal
// place, halves away from zero.
func MatchPercentage(final float64) float64 {
	return math.Round(final*1000) / 10
}

// Present converts a ranking into presentation entries with 1-based ranks.
func Present(ranked []Scored) []Recommendation {
	out := make([]Recommendation, len(ranked))
	for i, s := range ranked {
		out[i] = Recommendation{
			Rank:            i + 1,
			ID:              s.Attraction.ID,
			Name:            s.Attraction.Name,
			City:            s.Attraction.City,
			Category:        s.Attraction.Category,
			MatchPercentage: MatchPercentage(s.Scores.Final),
			Description:     s.Attraction.Description,
			Scores:          s.Scores,
		}
	}
	return out
}

// FormatExplanation renders a ranking as plain text. It has no side effects
// and returns the same text for the same ranking.
func FormatExplanation(ranked []Scored) string {
	if len(ranked) == 0 {
		return NoRecommendationsMessage
	}
	var b strings.Builder
	if len(ranked) == 1 {
		b.WriteString("Here is your top recommendation:\n")
	} else {
		fmt.Fprintf(&b, "Here are your top %d recommendations:\n", len(ranked))
	}
	for _, r := range Present(ranked) {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", r.Rank, r.Name, r.City)
		fmt.Fprintf(&b, "   Category: %s\n", r.Category)
		fmt.Fprintf(&b, "   Match: %.1f%%\n", r.MatchPercentage)
		fmt.Fprintf(&b, "   %s\n", r.Description)
	}
	return b.String()
}

// FormatUnavailable returns the degraded-mode message.
func FormatUnavailable() string {
	return UnavailableMessage
}
