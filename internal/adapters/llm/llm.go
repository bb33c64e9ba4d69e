// Package llm provides the tutor's language model backends: hosted
// Anthropic or OpenAI clients plus a rule-based fallback for offline runs.
package llm

import (
	"fmt"

	"airfoil-lab-service/internal/ports"
)

// New builds the ChatModel for a provider name. Supported providers are
// "anthropic", "openai" and "none" (the rule-based fallback).
func New(provider, apiKey, model string) (ports.ChatModel, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicClient(apiKey, model)
	case "openai":
		return NewOpenAIClient(apiKey, model)
	case "", "none":
		return NewRuleBased(), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", provider)
}
