// Package llm talks to a hosted vision-capable chat-completions endpoint.
// The endpoint is treated as an opaque collaborator: it receives a page image
// plus an instruction and returns text the evaluator parses defensively.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Treedy2020/FinalCheck/internal/domain"
	"github.com/Treedy2020/FinalCheck/internal/observability"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel   = "openai/gpt-4o"
)

// Client handles communication with the chat-completions API.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	maxAttempts int
	backoff     time.Duration
	httpClient  *http.Client
	logger      *observability.Logger
}

// Config holds client construction options. Zero values fall back to defaults.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryBackoff   time.Duration
}

// Message represents a chat message.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart represents a part of message content (text or image).
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an image URL in the message.
type ImageURL struct {
	URL string `json:"url"`
}

// Request represents the API request structure.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    bool      `json:"stream"`
}

// Response represents the API response structure.
type Response struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage carries the assistant's reply content.
type ChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewClient creates a new vision model client.
func NewClient(cfg Config, logger *observability.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ConfigError("API key is required", nil)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 90 * time.Second
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.RetryBackoff,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		logger:      logger.WithComponent("llm"),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends a page image with an instruction and returns the model's
// text reply. Transient failures are retried with exponential backoff up to
// the configured attempt count.
func (c *Client) Complete(ctx context.Context, system, prompt string, imagePNG []byte) (string, error) {
	body, err := json.Marshal(c.buildRequest(system, prompt, imagePNG))
	if err != nil {
		return "", domain.EvaluationError("failed to marshal request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("X-Title", "FinalCheck Compliance Verification")

		return c.httpClient.Do(req)
	})
	if err != nil {
		return "", domain.EvaluationError("failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", domain.EvaluationError(
			fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", domain.EvaluationError("failed to decode API response", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", domain.EvaluationError("no choices in API response", nil)
	}

	return apiResp.Choices[0].Message.Content, nil
}

// buildRequest constructs the API request with the image as a data URL.
func (c *Client) buildRequest(system, prompt string, imagePNG []byte) *Request {
	imageURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imagePNG)

	messages := []Message{}
	if system != "" {
		messages = append(messages, Message{
			Role:    "system",
			Content: []ContentPart{{Type: "text", Text: system}},
		})
	}
	messages = append(messages, Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		},
	})

	return &Request{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: 1500,
		Stream:    false,
	}
}

// retryWithBackoff retries the request on transport errors, 429, and 5xx
// responses. The final attempt's result is returned as-is.
func (c *Client) retryWithBackoff(ctx context.Context, do func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := do()
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}

		if attempt == c.maxAttempts {
			break
		}

		c.logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Err(lastErr).
			Msg("request failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", c.maxAttempts, lastErr)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
