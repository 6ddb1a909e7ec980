package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Role tags a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation sent to the model.
type Turn struct {
	Role Role
	Text string
}

// Image is raw image bytes returned by the model.
type Image struct {
	Data     []byte
	MIMEType string
}

// Client is a thin wrapper over the genai SDK for the two storefront calls.
type Client struct {
	config Config
	genai  *genai.Client
}

// NewClient creates a new Gemini client with the given configuration
func NewClient(ctx context.Context, config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{config: config, genai: gc}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.config.Timeout)
}

// GenerateText sends the conversation under a system instruction and returns
// the model's text. An empty string means the model produced no text.
func (c *Client) GenerateText(ctx context.Context, system string, turns []Turn) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.config.ChatModel, toContents(turns), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// GenerateImage renders a single image for prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	cfg := &genai.GenerateContentConfig{}
	if c.config.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: c.config.AspectRatio}
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := c.genai.Models.GenerateContent(ctx, c.config.ImageModel, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	img := firstInlineImage(resp)
	if img == nil {
		return nil, ErrNoImage
	}
	return img, nil
}

func toContents(turns []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}

// firstInlineImage scans candidates in order and returns the first inline
// image part.
func firstInlineImage(resp *genai.GenerateContentResponse) *Image {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return &Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}
		}
	}
	return nil
}
