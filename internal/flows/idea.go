package flows

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taehan09/studio/internal/content"
	"google.golang.org/genai"
)

// MinIdeaPromptLength is the minimum length of a client's idea prompt.
const MinIdeaPromptLength = 10

const ideaPromptTemplate = `You are an expert tattoo studio concierge. A potential client is asking for a tattoo idea.
Your task is to take their initial prompt and transform it into a more creative and concrete tattoo concept.

You must also recommend the best tattoo style and the most suitable artist for the job based on their specialties.

Here are the available artists and their specialties:
%s
Analyze the client's prompt below and generate a response in the specified output format.
Be creative and inspiring with your description. Make the client excited about their new tattoo!

Client's Idea: %s`

var ideaSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"creativeDescription": {
			Type:        genai.TypeString,
			Description: "A creative and detailed description of the tattoo design, written in an inspiring and visual tone. It should be 2-3 sentences long.",
		},
		"recommendedStyle": {
			Type:        genai.TypeString,
			Description: "The single most fitting tattoo style for this design (e.g., Traditional, Realism, Blackwork).",
		},
		"recommendedArtist": {
			Type:        genai.TypeString,
			Description: "The name of the artist from the provided list who is the best fit for this style.",
		},
	},
	Required: []string{"creativeDescription", "recommendedStyle", "recommendedArtist"},
}

// IdeaResult is the output of the generate-idea flow.
type IdeaResult struct {
	CreativeDescription string `json:"creativeDescription"`
	RecommendedStyle    string `json:"recommendedStyle"`
	RecommendedArtist   string `json:"recommendedArtist"`
}

// GenerateIdea turns a client's free-text prompt into a concrete tattoo
// concept with a recommended style and artist. The artist is chosen from the
// given roster; when the roster is empty the default roster is used.
func (s *Service) GenerateIdea(ctx context.Context, prompt string, roster []content.Artist) (*IdeaResult, error) {
	if utf8.RuneCountInString(strings.TrimSpace(prompt)) < MinIdeaPromptLength {
		return nil, fmt.Errorf("%w: please provide a more detailed description for your tattoo idea", ErrInvalidInput)
	}
	if len(roster) == 0 {
		roster = content.DefaultArtists()
	}

	var sb strings.Builder
	for _, a := range roster {
		fmt.Fprintf(&sb, "- %s: Specializes in %s tattoos.\n", a.Name, a.Specialty)
	}

	fullPrompt := fmt.Sprintf(ideaPromptTemplate, sb.String(), prompt)
	result, err := call[IdeaResult](ctx, s.generator, fullPrompt, nil, ideaSchema)
	if err != nil {
		s.logger.Error("idea flow failed", "error", err)
		return nil, err
	}
	return &result, nil
}
