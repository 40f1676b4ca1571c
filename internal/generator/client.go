package generator

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	openai "github.com/sashabaranov/go-openai"
)

// LLMClient is the provider boundary: a chat-style completion request that
// returns raw response content. Implementations decide model fallback.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and the model that produced it.
type LLMResponse struct {
	Content string
	Model   string
}

// NewClient picks a provider from the environment. LLM_PROVIDER selects
// anthropic or mock; the default is the OpenAI chat completions API with an
// ordered model fallback list, matching the production deployment.
func NewClient() LLMClient {
	switch os.Getenv("LLM_PROVIDER") {
	case "anthropic":
		model := os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-20250514"
		}
		log.Println("Generator using Anthropic API:", model)
		return NewAnthropicClient(model)
	case "mock":
		log.Println("Generator using mock data")
		return NewMockClient()
	default:
		primary := os.Getenv("OPENAI_MODEL")
		if primary == "" {
			primary = "gpt-4o-mini"
		}
		models := []string{primary, "gpt-4o-mini", "gpt-5"}
		log.Println("Generator using OpenAI API:", primary)
		return NewOpenAIClient(models)
	}
}

// ── OpenAIClient — chat completions with model fallback ────

type OpenAIClient struct {
	client *openai.Client
	models []string
}

// NewOpenAIClient builds a client that tries each model in order until one
// returns content.
func NewOpenAIClient(models []string) *OpenAIClient {
	config := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
	config.HTTPClient = &http.Client{Timeout: 40 * time.Second}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		models: models,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	var lastErr error
	for _, model := range c.models {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Temperature: 0.9,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
		})
		if err != nil {
			lastErr = err
			log.Printf("OpenAI model %s failed: %v", model, err)
			continue
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = fmt.Errorf("no content in response from %s", model)
			continue
		}
		return &LLMResponse{Content: resp.Choices[0].Message.Content, Model: model}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return nil, fmt.Errorf("openai request failed: %w", lastErr)
}

// ── AnthropicClient ────────────────────────────────────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.9),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{Content: responseText, Model: c.model}, nil
}

func (c *AnthropicClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}
