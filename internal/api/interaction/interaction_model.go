package interaction

import "errors"

var (
	ErrNoInput           = errors.New("no image or question provided")
	ErrDescriptionFailed = errors.New("failed to classify or describe image")
	ErrQuestionFailed    = errors.New("failed to answer question")
)

// Client-facing error texts.
const (
	noInputMessage           = "Please upload an image or ask a question."
	descriptionFailedMessage = "Failed to classify or generate description."
	questionFailedMessage    = "Failed to process question."
)

// InteractInput is one /interact submission. Either field may be empty, not both.
type InteractInput struct {
	Image    []byte
	MimeType string
	Question string
}

type InteractResponse struct {
	Reply string `json:"reply"`
	Label string `json:"label,omitempty"`
}

type ChatRequest struct {
	Message             string `json:"message" validate:"required,max=2000"`
	ArtifactName        string `json:"artifact_name" validate:"max=200"`
	ArtifactDescription string `json:"artifact_description" validate:"max=4000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
