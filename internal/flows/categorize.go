package flows

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const categorizePrompt = `You are an expert tattoo style categorizer.

Analyze the provided tattoo design image and determine its style category. Provide only the most relevant style category.
Examples of tattoo styles include: Traditional, Minimalist, Watercolor, Geometric, Tribal, Realism, Abstract, Neo-Traditional, Japanese, Blackwork.

Respond with only the style category.`

var categorizeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"styleCategory": {
			Type:        genai.TypeString,
			Description: "The style category of the tattoo design (e.g., traditional, minimalist, watercolor).",
		},
	},
	Required: []string{"styleCategory"},
}

// CategorizeResult is the output of the categorize flow.
type CategorizeResult struct {
	StyleCategory string `json:"styleCategory"`
}

// CategorizeDesign determines the style category of a tattoo design supplied
// as a base64 image data URI ("data:image/...;base64,..."). Inputs that do
// not look like image data fail with ErrInvalidInput before any model call.
func (s *Service) CategorizeDesign(ctx context.Context, photoDataURI string) (*CategorizeResult, error) {
	mimeType, data, err := parseImageDataURI(photoDataURI)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{genai.NewPartFromBytes(data, mimeType)}
	result, err := call[CategorizeResult](ctx, s.generator, categorizePrompt, parts, categorizeSchema)
	if err != nil {
		s.logger.Error("categorize flow failed", "error", err)
		return nil, err
	}
	if strings.TrimSpace(result.StyleCategory) == "" {
		return nil, fmt.Errorf("%w: empty style category", ErrGeneration)
	}
	return &result, nil
}

// parseImageDataURI validates and decodes a "data:image/<subtype>;base64,..."
// URI.
func parseImageDataURI(uri string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URI", ErrInvalidInput)
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URI is not base64 encoded", ErrInvalidInput)
	}
	if !strings.HasPrefix(mimeType, "image/") || len(mimeType) <= len("image/") {
		return "", nil, fmt.Errorf("%w: data URI is not an image", ErrInvalidInput)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, fmt.Errorf("%w: malformed base64 image data", ErrInvalidInput)
	}
	return mimeType, data, nil
}
