package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiKeyEnv       = "GEMINI_API_KEY"
	defaultGeminiModel = "gemini-2.5-flash"
)

type geminiClient struct {
	model   string
	baseURL string
}

// NewGeminiClient creates a client for the Gemini API. GEMINI_API_KEY is read on every call.
func NewGeminiClient(model, baseURL string) AIClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClient{model: model, baseURL: baseURL}
}

func (c *geminiClient) Provider() string      { return "Gemini" }
func (c *geminiClient) CredentialEnv() string { return geminiKeyEnv }

func (c *geminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	apiKey, err := lookupKey(geminiKeyEnv)
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	temperature := float32(req.Temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &temperature}
	if strings.TrimSpace(req.System) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from Gemini")
	}
	return text, nil
}
