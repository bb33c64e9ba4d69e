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

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient implements ChatModel against the OpenAI chat completions API.
type OpenAIClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIClient{
		session: &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openai.com",
		model:   model,
	}, nil
}

func (c *OpenAIClient) Name() string { return "openai" }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	// The completions API carries the system prompt as the first message.
	msgs := make([]openAIMessage, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: system})
	}
	for _, m := range messages {
		msgs = append(msgs, openAIMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(openAIRequest{
		Model:     c.model,
		MaxTokens: maxReplyTokens,
		Messages:  msgs,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completions request: %w", err)
	}

	resp, err := doWithRetry(ctx, c.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("completions request failed: %w", err)
	}
	defer resp.Body.Close()

	var or openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", fmt.Errorf("decode completions response: %w", err)
	}
	if len(or.Choices) == 0 {
		return "", errors.New("completions response has no choices")
	}

	return or.Choices[0].Message.Content, nil
}
