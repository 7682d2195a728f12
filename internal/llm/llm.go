package llm

import (
	"context"
	"fmt"
	"strings"
)

// creates the fast and capable ports plus the embedder from environment variables
func NewPorts(ctx context.Context) (*Ports, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewPortsWithConfig(ctx, config)
}

// creates the ports with explicit configuration
func NewPortsWithConfig(ctx context.Context, config *Config) (*Ports, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	fast, err := NewGenerator(ctx, config.Fast)
	if err != nil {
		return nil, fmt.Errorf("fast port: %w", err)
	}

	capable, err := NewGenerator(ctx, config.Capable)
	if err != nil {
		return nil, fmt.Errorf("capable port: %w", err)
	}

	embedder, err := NewEmbedderWithConfig(config.Embedder)
	if err != nil {
		return nil, err
	}

	return &Ports{
		Fast:     fast,
		Capable:  capable,
		Embedder: embedder,
	}, nil
}

// creates a text generator for the configured provider
func NewGenerator(ctx context.Context, config GeneratorConfig) (TextGenerator, error) {
	switch config.Provider {
	case ProviderAnthropic:
		return NewAnthropicGenerator(config), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(config), nil
	case ProviderGemini:
		return NewGeminiGenerator(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.Provider)
	}
}

// creates the embedder alone from environment variables (ingester)
func NewEmbedder() (*OpenAIEmbedder, error) {
	config, err := loadEmbedderConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedder config: %w", err)
	}

	return NewEmbedderWithConfig(*config)
}

func NewEmbedderWithConfig(config EmbedderConfig) (*OpenAIEmbedder, error) {
	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIEmbedder(config), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.Provider)
	}
}

// sends a single fully-rendered prompt to gen and returns the trimmed text.
// every failure is wrapped with ErrInvocation and the model name.
func Complete(ctx context.Context, gen TextGenerator, prompt string) (string, error) {
	resp, err := gen.GenerateText(ctx, TextGenerationRequest{
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvocation, gen.Model(), err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: %s: empty response", ErrInvocation, gen.Model())
	}

	return strings.TrimSpace(resp.Text), nil
}
