package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"airfoil-lab-service/internal/domain"
)

const (
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"

	// Replies are short pedagogy, not essays.
	maxReplyTokens = 500
)

// AnthropicClient implements ChatModel against the Anthropic Messages API.
type AnthropicClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewAnthropicClient(apiKey, model string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is empty")
	}
	if model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicClient{
		session: &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.anthropic.com",
		model:   model,
	}, nil
}

func (c *AnthropicClient) Name() string { return "anthropic" }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *AnthropicClient) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	msgs := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: maxReplyTokens,
		System:    system,
		Messages:  msgs,
	})
	if err != nil {
		return "", fmt.Errorf("marshal messages request: %w", err)
	}

	resp, err := doWithRetry(ctx, c.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", anthropicVersion)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("messages request failed: %w", err)
	}
	defer resp.Body.Close()

	var ar anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("decode messages response: %w", err)
	}
	if len(ar.Content) == 0 {
		return "", errors.New("messages response has no content")
	}

	return ar.Content[0].Text, nil
}
