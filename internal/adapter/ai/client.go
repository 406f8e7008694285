// Package ai provides clients for OpenAI-compatible chat completion APIs
// plus response cleaning and caching wrappers.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sarensabesk/HireAI/internal/adapter/observability"
	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
)

// Client implements domain.AIClient against an OpenAI-compatible
// chat-completions endpoint (OpenRouter by default).
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a client with the configured request timeout.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.AITimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends one chat completion request and returns the message content.
// Calls are single-shot: a failed generation surfaces to the caller, which
// degrades to its fallback content instead of retrying.
func (c *Client) Generate(ctx domain.Context, prompt string) (string, error) {
	if c.cfg.AIAPIKey == "" {
		return "", fmt.Errorf("%w: AI_API_KEY missing", domain.ErrInvalidArgument)
	}

	body, _ := json.Marshal(chatRequest{
		Model:       c.cfg.AIModel,
		Temperature: 0.2,
		MaxTokens:   c.cfg.AIMaxTokens,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	})

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AIBaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("op=ai.generate: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AIAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveAIRequest("generate", "error", time.Since(start))
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			slog.Warn("ai provider timeout", slog.String("model", c.cfg.AIModel))
			return "", fmt.Errorf("op=ai.generate: %w", domain.ErrUpstreamTimeout)
		}
		return "", fmt.Errorf("op=ai.generate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.ObserveAIRequest("generate", "error", time.Since(start))
		return "", fmt.Errorf("op=ai.generate: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.ObserveAIRequest("generate", "error", time.Since(start))
		snippet := string(raw)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		slog.Warn("ai provider non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("model", c.cfg.AIModel),
			slog.String("body", snippet))
		return "", fmt.Errorf("op=ai.generate: status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		observability.ObserveAIRequest("generate", "error", time.Since(start))
		return "", fmt.Errorf("op=ai.generate: decode: %w", err)
	}
	if len(out.Choices) == 0 {
		observability.ObserveAIRequest("generate", "error", time.Since(start))
		return "", fmt.Errorf("op=ai.generate: empty choices")
	}

	observability.ObserveAIRequest("generate", "ok", time.Since(start))
	if out.Model != "" && out.Model != c.cfg.AIModel {
		slog.Debug("model substitution",
			slog.String("requested", c.cfg.AIModel),
			slog.String("actual", out.Model))
	}
	return out.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
