package infrastructure

import (
	"context"
	"errors"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIKeyEnv       = "OPENAI_API_KEY"
	defaultOpenAIModel = "gpt-4o-mini"
)

// openAIClient talks to the Chat Completions endpoint.
type openAIClient struct {
	model   string
	baseURL string
}

// NewOpenAIClient creates a new OpenAI client. OPENAI_API_KEY is read on every call.
func NewOpenAIClient(model, baseURL string) AIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openAIClient{model: model, baseURL: baseURL}
}

func (c *openAIClient) Provider() string      { return "OpenAI" }
func (c *openAIClient) CredentialEnv() string { return openAIKeyEnv }

// Complete issues a single chat completion with a system and a user message.
func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	apiKey, err := lookupKey(openAIKeyEnv)
	if err != nil {
		return "", err
	}

	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: openAITemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// openAITemperature maps 0 to the smallest positive float32, since go-openai
// omits a zero temperature and the API would then apply its own default.
func openAITemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}
