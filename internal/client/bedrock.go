package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"

	"github.com/meetscribe/summarizer/internal/config"
	"github.com/meetscribe/summarizer/internal/logger"
)

// TextGenerator defines the interface for the model used to produce summaries
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Anthropic messages payload for Bedrock model invocation
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
	TopK             int                `json:"top_k"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
}

// BedrockClient implements TextGenerator via Bedrock model invocation
type BedrockClient struct {
	api *bedrockruntime.Client
	cfg *config.BedrockConfig
	log logger.Logger
}

// NewBedrockClient creates a text generation client for the configured model
func NewBedrockClient(awsCfg aws.Config, cfg *config.BedrockConfig, log logger.Logger) *BedrockClient {
	return &BedrockClient{
		api: bedrockruntime.NewFromConfig(awsCfg),
		cfg: cfg,
		log: log,
	}
}

// Generate invokes the model with a system prompt and a user prompt and
// returns the generated text.
func (c *BedrockClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := c.requestBody(systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.ModelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			c.log.Error(ctx, "model invocation failed: %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return "", fmt.Errorf("failed to invoke model %s: %w", c.cfg.ModelID, err)
	}

	return decodeGeneratedText(out.Body, c.cfg.ModelID)
}

func (c *BedrockClient) requestBody(systemPrompt, userPrompt string) ([]byte, error) {
	req := anthropicRequest{
		AnthropicVersion: c.cfg.AnthropicVersion,
		MaxTokens:        c.cfg.MaxTokens,
		System:           systemPrompt,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: userPrompt}},
			},
		},
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
		TopK:        c.cfg.TopK,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model request: %w", err)
	}

	return body, nil
}

func decodeGeneratedText(body []byte, modelID string) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("model %s returned no text", modelID)
	}

	return text.String(), nil
}
