package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/config"
	"github.com/gradewise/eval-backend/internal/entity"
	pkghttp "github.com/gradewise/eval-backend/pkg/http"
)

// Connector talks to an OpenAI-compatible chat completion endpoint.
// The default configuration points it at Gemini's compatibility layer.
type Connector struct {
	api    *openai.Client
	config config.LLMConfig
	logger *zap.Logger
}

func NewConnector(cfg config.LLMConfig, logger *zap.Logger) *Connector {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = pkghttp.NewClient(
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnTimeout(cfg.ConnTimeout),
		pkghttp.WithKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	)

	return &Connector{
		api:    openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}
}

// Generate performs a single chat completion and returns the raw reply
// text. An empty reply is a valid return; retrying is the caller's
// concern, not the connector's.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "calling model",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", entity.ErrLLMUnavailable)
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Debug(ctx, "model replied", zap.Int("content_length", len(content)))

	return content, nil
}

// classifyError maps provider failures onto entity.ErrLLMUnavailable.
// Provider errors keep only the HTTP status: their messages may describe
// the credential and must not travel further.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: provider status %d", entity.ErrLLMUnavailable, apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: provider status %d", entity.ErrLLMUnavailable, reqErr.HTTPStatusCode)
	}

	return fmt.Errorf("%w: %v", entity.ErrLLMUnavailable, err)
}
