package llm

import (
	"fmt"
)

const (
	defaultFastModel       = "claude-3-haiku-20240307"
	defaultFastMaxTokens   = 200
	defaultFastTemperature = 0

	defaultCapableModel       = "claude-sonnet-4-20250514"
	defaultCapableMaxTokens   = 1024
	defaultCapableTemperature = 0.3

	defaultEmbedderModel = "text-embedding-3-small"
)

// default model names when a port switches provider without naming a model
var defaultModels = map[Provider]struct{ fast, capable string }{
	ProviderAnthropic: {defaultFastModel, defaultCapableModel},
	ProviderOpenAI:    {"gpt-4o-mini", "gpt-4o"},
	ProviderGemini:    {"gemini-2.5-flash-lite", "gemini-2.5-flash"},
}

// loadConfig loads port configuration from environment variables
func loadConfig() (*Config, error) {
	fast, err := loadGeneratorConfig("FAST", defaultFastMaxTokens, defaultFastTemperature, false)
	if err != nil {
		return nil, err
	}

	capable, err := loadGeneratorConfig("CAPABLE", defaultCapableMaxTokens, defaultCapableTemperature, true)
	if err != nil {
		return nil, err
	}

	embedder, err := loadEmbedderConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Fast:     *fast,
		Capable:  *capable,
		Embedder: *embedder,
	}, nil
}

// reads <prefix>_PROVIDER, <prefix>_MODEL, <prefix>_MAX_TOKENS,
// <prefix>_TEMPERATURE and <prefix>_BASE_URL
func loadGeneratorConfig(prefix string, maxTokens int, temperature float32, capable bool) (*GeneratorConfig, error) {
	provider := Provider(envString(prefix+"_PROVIDER", string(ProviderAnthropic)))

	defaults, ok := defaultModels[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported %s provider: %s", prefix, provider)
	}

	model := defaults.fast
	if capable {
		model = defaults.capable
	}

	apiKey := apiKeyForProvider(provider)
	if apiKey == "" {
		return nil, fmt.Errorf("API key for %s provider %s is required", prefix, provider)
	}

	return &GeneratorConfig{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       envString(prefix+"_MODEL", model),
		MaxTokens:   envInt(prefix+"_MAX_TOKENS", maxTokens),
		Temperature: envFloat32(prefix+"_TEMPERATURE", temperature),
		BaseURL:     envString(prefix+"_BASE_URL", ""),
	}, nil
}

// loads embedder configuration, shared by the server and the ingester
func loadEmbedderConfig() (*EmbedderConfig, error) {
	provider := Provider(envString("EMBEDDER_PROVIDER", string(ProviderOpenAI)))
	if provider != ProviderOpenAI {
		return nil, fmt.Errorf("unsupported embedder provider: %s", provider)
	}

	apiKey := apiKeyForProvider(provider)
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	return &EmbedderConfig{
		Provider:   provider,
		APIKey:     apiKey,
		Model:      envString("EMBEDDER_MODEL", defaultEmbedderModel),
		Dimensions: envInt("EMBEDDER_DIMENSIONS", openaiEmbeddingDimension),
		BaseURL:    envString("EMBEDDER_BASE_URL", ""),
	}, nil
}
