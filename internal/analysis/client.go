package analysis

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

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no API key is set. The check runs
// before any network I/O so misconfiguration fails fast on every call.
var ErrNotConfigured = errors.New("analysis: api key is not configured")

// FallbackMessage is shown to the user when the backend fails.
const FallbackMessage = "Sorry, I encountered an error analyzing this bet. Please try again."

const systemPrompt = `You are an expert NBA betting analyst with deep knowledge of statistics, game analysis, and betting markets.
When users ask about betting questions (especially true/false questions about NBA games), provide:
1. A clear analysis based on current stats, team performance, and relevant factors
2. Your confidence level in the outcome (high, medium, low)
3. Key factors that could influence the result
4. A recommendation on whether the bet has value

Be concise but thorough. Focus on actionable insights that help users make informed betting decisions.`

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Client calls an OpenAI-compatible chat-completion endpoint.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a chat-completion client.
func NewClient(url, apiKey, model string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Analyze sends the question, prefixed by the analyst system prompt and any
// prior conversation turns, and returns the model's answer.
func (c *Client) Analyze(ctx context.Context, question string, history []Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID)

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: question})

	payload, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logger.Debug("sending analysis request", "model", c.model, "turns", len(messages))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("analysis backend error",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return "", fmt.Errorf("analysis request failed: status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("analysis response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
