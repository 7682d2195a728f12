package llm

import (
	"os"
	"strconv"
)

// returns the API key for the given provider from the environment
func apiKeyForProvider(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("ANTHROPIC_API_KEY")
	}
}

func envString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func envInt(key string, fallback int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil && val > 0 {
		return val
	}

	return fallback
}

func envFloat32(key string, fallback float32) float32 {
	if raw := os.Getenv(key); raw != "" {
		if val, err := strconv.ParseFloat(raw, 32); err == nil && val >= 0 {
			return float32(val)
		}
	}

	return fallback
}
