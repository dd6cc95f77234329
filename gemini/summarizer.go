package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docmodel"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const defaultInstruction = "Summarize the content in two or three sentences."

// Ensure Summarizer implements docmodel.Summarizer at compile time.
var _ docmodel.Summarizer = (*Summarizer)(nil)

// Summarizer implements docmodel.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model uses DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize returns a summary of text following instruction.
func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", docmodel.Errorf(docmodel.EINVALID, "text required")
	}

	prompt := BuildUserPrompt(text, instruction)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docmodel.Errorf(docmodel.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You condense content extracted from web pages. Use only the content provided. Reply with the summary text and nothing else.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the content and the
// summarization instruction.
func BuildUserPrompt(text, instruction string) string {
	if instruction == "" {
		instruction = defaultInstruction
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<content>\n%s\n</content>\n\n", text)
	fmt.Fprintf(&sb, "Instruction: %s", instruction)
	return sb.String()
}
