package clients

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIRequestTimeout = 60 * time.Second

var ErrMissingOpenAIKey = errors.New("missing OpenAI API key")

type OpenAIClient struct {
	Client *openai.Client
}

func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OpenAI API key")
		return nil, ErrMissingOpenAIKey
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(openAIRequestTimeout),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{Client: client}, nil
}

// Complete sends a system + user message pair and returns the first choice,
// with any markdown fence stripped.
func (o *OpenAIClient) Complete(ctx context.Context, model, system, user string) (string, error) {
	chatCompletion, err := o.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			}),
			Model:       openai.F(openai.ChatModel(model)),
			Temperature: openai.Float(0),
		})
	if err != nil {
		slog.Warn("[OpenAIClient] OpenAI API call failed",
			slog.String("error", err.Error()))
		return "", err
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return "", errors.New("OpenAI returned an empty response")
	}

	return CleanOpenAIResponse(chatCompletion.Choices[0].Message.Content), nil
}

func CleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	// models occasionally emit curly quotes
	response = strings.ReplaceAll(response, "“", `"`)
	response = strings.ReplaceAll(response, "”", `"`)

	return strings.TrimSpace(response)
}
