package recommendation

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/FACorreiaa/horus-ai/internal/api"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
	"github.com/FACorreiaa/horus-ai/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Recommend godoc
// @Summary      Rank attractions for a traveller
// @Description  Scores every catalog attraction against location, interests and liked places and returns the top N.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request body RecommendationRequest true "Traveller preferences"
// @Success      200 {object} RecommendationResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Recommend"))

	var req RecommendationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.respond(w, r, l, req)
}

// RecommendQuery godoc
// @Summary      Rank attractions from query parameters
// @Tags         recommendations
// @Produce      json
// @Param        location query string false "City filter; empty, all or any disables it"
// @Param        interests query string false "Comma separated interests"
// @Param        liked_places query string false "Comma separated attraction names"
// @Param        top_n query string false "Number of results, default 3"
// @Success      200 {object} RecommendationResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /recommendations [get]
func (h *Handler) RecommendQuery(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "RecommendQuery"))
	h.respond(w, r, l, requestFromQuery(r.URL.Query()))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, l *slog.Logger, req RecommendationRequest) {
	if err := api.ValidateStruct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.Recommend(r.Context(), req.raw())
	if err != nil {
		switch {
		case errors.Is(err, recommender.ErrInvalidQuery):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, recommender.ErrRecommenderUnavailable):
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, recommender.FormatUnavailable())
		default:
			l.ErrorContext(r.Context(), "Unexpected recommendation failure", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute recommendations")
		}
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, newResponse(res))
}

func requestFromQuery(q url.Values) RecommendationRequest {
	req := RecommendationRequest{
		Location: q.Get("location"),
		TopN:     types.FlexibleString(q.Get("top_n")),
	}
	for _, v := range q["interests"] {
		req.Interests = append(req.Interests, recommender.SplitList(v)...)
	}
	for _, v := range q["liked_places"] {
		req.LikedPlaces = append(req.LikedPlaces, recommender.SplitList(v)...)
	}
	return req
}
