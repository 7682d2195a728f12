package retriever

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultTopK     = 3
	defaultCacheTTL = 10 * time.Minute
)

// loadConfig loads configuration from environment variables
func loadConfig() Config {
	topK := defaultTopK
	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		if val, err := strconv.Atoi(topKStr); err == nil && val > 0 {
			topK = val
		}
	}

	ttl := defaultCacheTTL
	if ttlStr := os.Getenv("EMBEDDING_CACHE_TTL"); ttlStr != "" {
		if val, err := time.ParseDuration(ttlStr); err == nil && val >= 0 {
			ttl = val
		}
	}

	return Config{TopK: topK, CacheTTL: ttl}
}
