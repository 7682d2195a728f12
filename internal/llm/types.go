package llm

import (
	"context"
	"errors"
)

// returned (wrapped) whenever a model port call fails: transport, quota,
// non-2xx status or a response without text
var ErrInvocation = errors.New("model invocation failed")

// represents different LLM providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

// produces plain text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int // 0 uses the generator's configured limit
}

type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// the two model ports plus the embedder, built once per process
type Ports struct {
	// near-deterministic, short outputs: classification, small talk, judging
	Fast TextGenerator
	// fuller, mildly creative outputs: grounded answers
	Capable TextGenerator
	// query and document embeddings
	Embedder Embedder
}

// holds configuration for one text generator
type GeneratorConfig struct {
	Provider    Provider
	APIKey      string
	Model       string  // e.g., "claude-3-haiku-20240307"
	MaxTokens   int     // max tokens for response
	Temperature float32 // 0.0 to 1.0, zero is honored
	BaseURL     string  // optional override, used by tests and proxies
}

type EmbedderConfig struct {
	Provider   Provider
	APIKey     string
	Model      string // e.g., "text-embedding-3-small"
	Dimensions int
	BaseURL    string
}

// holds configuration for port initialization
type Config struct {
	Fast     GeneratorConfig
	Capable  GeneratorConfig
	Embedder EmbedderConfig
}
