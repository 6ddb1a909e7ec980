package gemini

import "errors"

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("gemini: API key is required")

	// ErrMissingModel is returned when a model name is empty
	ErrMissingModel = errors.New("gemini: model name is required")

	// ErrNoImage is returned when an image response carries no inline image
	ErrNoImage = errors.New("gemini: no image in response")
)
