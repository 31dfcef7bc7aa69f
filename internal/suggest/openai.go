package suggest

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const suggestionPrompt = `You are helping a team retrospective. Given the notes from one retro column, suggest short, concrete action items the team could take. Reply with one action item per line and nothing else.`

// OpenAIGenerator implements Generator with the OpenAI Chat Completions
// API. A custom base URL enables OpenAI-compatible providers.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given API key. model
// and baseURL are optional.
func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Generate asks the model for action items based on the column text.
func (g *OpenAIGenerator) Generate(ctx context.Context, text string) ([]string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(suggestionPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty completion")
	}
	return parseSuggestions(resp.Choices[0].Message.Content), nil
}
