package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"waypoint/internal/config"
)

// OpenAIProvider implements Provider against any OpenAI-compatible
// chat-completions endpoint: the OpenAI API itself or a local server
// (Ollama, llama.cpp) selected via cfg.UseLocal.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

// NewOpenAIProvider builds a provider from the LLM config. When UseLocal is
// set the client points at LocalURL and no API key is required; otherwise
// CloudAPIKey must be present.
func NewOpenAIProvider(cfg config.LLMConfig) (*OpenAIProvider, error) {
	model := cfg.CloudModel
	var clientCfg openai.ClientConfig
	if cfg.UseLocal {
		clientCfg = openai.DefaultConfig("")
		clientCfg.BaseURL = cfg.LocalURL
		model = cfg.LocalModel
	} else {
		if cfg.CloudAPIKey == "" {
			return nil, fmt.Errorf("cloud LLM API key is required when not using a local LLM")
		}
		clientCfg = openai.DefaultConfig(cfg.CloudAPIKey)
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}, nil
}

// Complete sends the messages to the chat-completions endpoint and returns
// the first choice's content.
func (p *OpenAIProvider) Complete(ctx context.Context, msgs []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	chatMsgs := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		chatMsgs = append(chatMsgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    chatMsgs,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
