package attractions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/horus-ai/internal/api"
	"github.com/FACorreiaa/horus-ai/internal/api/auth"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
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

// ListAttractions godoc
// @Summary      List catalog attractions
// @Tags         attractions
// @Produce      json
// @Param        city query string false "Only attractions in this city"
// @Success      200 {array} AttractionResponse
// @Failure      503 {object} map[string]interface{}
// @Router       /attractions [get]
func (h *Handler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ListAttractions"))

	list, err := h.service.ListAttractions(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		if errors.Is(err, recommender.ErrRecommenderUnavailable) {
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, recommender.FormatUnavailable())
			return
		}
		l.ErrorContext(r.Context(), "Failed to list attractions", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list attractions")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, list)
}

// Ready godoc
// @Summary      Catalog readiness
// @Tags         health
// @Produce      json
// @Success      200 {object} CatalogStatus
// @Failure      503 {object} CatalogStatus
// @Router       /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.service.Status()
	code := http.StatusOK
	if !status.Ready {
		code = http.StatusServiceUnavailable
	}
	api.WriteJSONResponse(w, r, code, status)
}

// ReloadCatalog godoc
// @Summary      Rebuild and swap the catalog
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} CatalogStatus
// @Failure      401 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /admin/catalog/reload [post]
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ReloadCatalog"))
	if sub, ok := auth.GetSubjectFromContext(r.Context()); ok {
		l = l.With(slog.String("admin", sub))
	}

	status, err := h.service.BuildCatalog(r.Context())
	if err != nil {
		l.ErrorContext(r.Context(), "Catalog reload failed", slog.Any("error", err))
		code := http.StatusInternalServerError
		if errors.Is(err, recommender.ErrRecommenderUnavailable) {
			code = http.StatusServiceUnavailable
		}
		api.ErrorResponse(w, r, code, "Catalog reload failed; the previous catalog is still served")
		return
	}
	l.InfoContext(r.Context(), "Catalog reloaded", slog.Int("size", status.Size))
	api.WriteJSONResponse(w, r, http.StatusOK, status)
}
