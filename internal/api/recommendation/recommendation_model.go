package recommendation

import (
	"github.com/FACorreiaa/horus-ai/internal/recommender"
	"github.com/FACorreiaa/horus-ai/internal/types"
)

// RecommendationRequest is the JSON body of POST /recommendations. Interests
// and liked places accept an array or a comma separated string; top_n accepts
// a number or a string.
type RecommendationRequest struct {
	Location    string               `json:"location" validate:"max=100"`
	Interests   types.StringList     `json:"interests" validate:"max=20,dive,max=200"`
	LikedPlaces types.StringList     `json:"liked_places" validate:"max=50,dive,max=200"`
	TopN        types.FlexibleString `json:"top_n" validate:"max=16"`
}

func (r RecommendationRequest) raw() recommender.RawQuery {
	return recommender.RawQuery{
		Location:    r.Location,
		Interests:   r.Interests,
		LikedPlaces: r.LikedPlaces,
		TopN:        string(r.TopN),
	}
}

type QuerySummary struct {
	Location    string   `json:"location,omitempty"`
	Interests   []string `json:"interests"`
	LikedPlaces []string `json:"liked_places,omitempty"`
	TopN        int      `json:"top_n"`
}

type RecommendationResponse struct {
	Recommendations []recommender.Recommendation `json:"recommendations"`
	Explanation     string                       `json:"explanation"`
	Query           QuerySummary                 `json:"query"`
	CatalogSize     int                          `json:"catalog_size"`
}

func newResponse(res recommender.Result) RecommendationResponse {
	return RecommendationResponse{
		Recommendations: recommender.Present(res.Ranked),
		Explanation:     recommender.FormatExplanation(res.Ranked),
		Query: QuerySummary{
			Location:    res.Query.Location,
			Interests:   res.Query.Interests,
			LikedPlaces: res.Query.LikedPlaces,
			TopN:        res.Query.TopN,
		},
		CatalogSize: res.CatalogSize,
	}
}
