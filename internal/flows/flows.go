// Package flows implements the three generative flows the site exposes:
// categorize an uploaded design by style, turn a free-text idea into a
// concrete concept, and summarize an appointment request for the admin.
//
// Every flow is the same shape: render a typed input into a fixed prompt
// template, call the generative capability with a target output schema, and
// parse the response against that schema. A response that fails to parse is a
// generation error; a partial result is never returned.
package flows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// ErrInvalidInput marks input that fails validation before any model call.
var ErrInvalidInput = errors.New("invalid input")

// ErrGeneration marks a failed model call or a response that failed schema
// parsing.
var ErrGeneration = errors.New("generation failed")

// Service runs the generative flows over a Generator.
type Service struct {
	generator Generator
	logger    *slog.Logger
}

func NewService(generator Generator, logger *slog.Logger) *Service {
	return &Service{generator: generator, logger: logger}
}

// call renders one structured prompt call: invoke the generator and strictly
// decode the raw response into T.
func call[T any](ctx context.Context, g Generator, prompt string, parts []*genai.Part, schema *genai.Schema) (T, error) {
	var out T

	raw, err := g.GenerateJSON(ctx, prompt, parts, schema)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: response does not match schema: %v", ErrGeneration, err)
	}
	return out, nil
}
