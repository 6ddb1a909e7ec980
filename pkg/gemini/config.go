package gemini

import "time"

// Config represents the configuration for the Gemini client
type Config struct {
	// APIKey authenticates against the Gemini API
	APIKey string

	// ChatModel answers storefront chat
	ChatModel string

	// ImageModel renders product photos
	ImageModel string

	// AspectRatio of generated images, e.g. "1:1"
	AspectRatio string

	// Timeout bounds a single generate call. Zero means no extra bound.
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ChatModel == "" || c.ImageModel == "" {
		return ErrMissingModel
	}
	return nil
}
