package flows

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator is the generative-text capability contract: given a prompt,
// optional media parts, and a target output schema, return raw JSON conforming
// to the schema or fail.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, parts []*genai.Part, schema *genai.Schema) ([]byte, error)
}

// Client implements Generator using the Google GenAI API.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create GenAI client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) GenerateJSON(ctx context.Context, prompt string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	all := append([]*genai.Part{genai.NewPartFromText(prompt)}, parts...)
	contents := []*genai.Content{genai.NewContentFromParts(all, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty model response")
	}
	return []byte(text), nil
}
