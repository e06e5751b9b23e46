package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/taehan09/studio/internal/appointment"
	"google.golang.org/genai"
)

const summarizePromptTemplate = `You are an expert assistant for a tattoo studio admin. Your job is to summarize a new appointment request into a single, easy-to-read sentence.

Focus on the most important details: what the tattoo is, and its style.

Here is the request data:
- Name: %s
- Style: %s
- Description: %s
- Placement: %s
- Preferred Artist: %s
- Budget: %s
- Timeframe: %s

Generate a summary sentence. Example: "Client wants a black and grey realism tiger tattoo."`

var summarizeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A concise, one-sentence summary of the tattoo request for an admin to review quickly.",
		},
	},
	Required: []string{"summary"},
}

type summarizeResult struct {
	Summary string `json:"summary"`
}

// SummarizeRequest produces a one-sentence summary of an appointment request.
// It is invoked once at submission time; the result is persisted on the
// request and never recomputed.
func (s *Service) SummarizeRequest(ctx context.Context, req appointment.Request) (string, error) {
	prompt := fmt.Sprintf(summarizePromptTemplate,
		req.FullName,
		req.TattooStyle,
		req.TattooDescription,
		req.Placement,
		req.PreferredArtist,
		req.BudgetRange,
		req.PreferredTimeframe,
	)

	result, err := call[summarizeResult](ctx, s.generator, prompt, nil, summarizeSchema)
	if err != nil {
		s.logger.Error("summarize flow failed", "error", err)
		return "", err
	}
	if strings.TrimSpace(result.Summary) == "" {
		return "", fmt.Errorf("%w: empty summary", ErrGeneration)
	}
	return result.Summary, nil
}
