package interaction

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/horus-ai/internal/api"
)

// MaxImageBytes caps uploaded photos.
const MaxImageBytes = 10 << 20

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

// Interact godoc
// @Summary      Identify a photo or answer a question
// @Description  Classifies an uploaded photo of an Egyptian artifact and describes it, answers a free-form question, or both.
// @Tags         interaction
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file false "Photo to identify"
// @Param        question formData string false "Question to answer"
// @Success      200 {object} InteractResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      500 {object} map[string]interface{}
// @Router       /interact [post]
func (h *Handler) Interact(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Interact"))

	in, err := readInteractInput(w, r)
	if err != nil {
		l.WarnContext(r.Context(), "Failed to read interaction form", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	resp, err := h.service.Interact(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoInput):
			api.ErrorResponse(w, r, http.StatusBadRequest, noInputMessage)
		case errors.Is(err, ErrQuestionFailed):
			api.ErrorResponse(w, r, http.StatusInternalServerError, questionFailedMessage)
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, descriptionFailedMessage)
		}
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Chat godoc
// @Summary      Chat with Horus AI about an artifact
// @Tags         interaction
// @Accept       json
// @Produce      json
// @Param        request body ChatRequest true "Message and artifact context"
// @Success      200 {object} ChatResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Chat"))

	var req ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.service.Chat(r.Context(), req))
}

func readInteractInput(w http.ResponseWriter, r *http.Request) (InteractInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(MaxImageBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return InteractInput{}, err
	}

	in := InteractInput{Question: r.FormValue("question")}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil
	case err != nil:
		return InteractInput{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return InteractInput{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return InteractInput{}, fmt.Errorf("image must not be larger than %d bytes", MaxImageBytes)
	}
	in.Image = data
	in.MimeType = header.Header.Get("Content-Type")
	if in.MimeType == "" || in.MimeType == "application/octet-stream" {
		in.MimeType = http.DetectContentType(data)
	}
	return in, nil
}
