package infrastructure

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	anthropicKeyEnv          = "ANTHROPIC_API_KEY"
	defaultAnthropicModel    = "claude-sonnet-4-20250514"
	defaultAnthropicMaxToken = 1024
)

type anthropicClient struct {
	model   string
	baseURL string
}

// NewAnthropicClient creates a client for the Messages API. ANTHROPIC_API_KEY is read on every call.
func NewAnthropicClient(model, baseURL string) AIClient {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicClient{model: model, baseURL: baseURL}
}

func (c *anthropicClient) Provider() string      { return "Anthropic" }
func (c *anthropicClient) CredentialEnv() string { return anthropicKeyEnv }

func (c *anthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	apiKey, err := lookupKey(anthropicKeyEnv)
	if err != nil {
		return "", err
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	client := anthropic.NewClient(opts...)

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxToken
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
		Temperature: anthropic.Float(req.Temperature),
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", errors.New("empty response from Anthropic")
	}
	return out.String(), nil
}
