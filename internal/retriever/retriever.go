package retriever

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/chefbot/server/internal/llm"
	"github.com/patrickmn/go-cache"
	"github.com/pgvector/pgvector-go"
)

// separator placed between chunk contents when building the generation context
const ContextSeparator = "\n\n"

// creates a retriever with configuration from environment
func NewClient(db Querier, embedder llm.Embedder) *Client {
	return NewClientWithConfig(db, embedder, loadConfig())
}

// creates a retriever with explicit configuration. a zero CacheTTL disables caching.
func NewClientWithConfig(db Querier, embedder llm.Embedder, config Config) *Client {
	if config.TopK < 1 {
		config.TopK = defaultTopK
	}

	c := &Client{
		db:       db,
		embedder: embedder,
		topK:     config.TopK,
	}

	if config.CacheTTL > 0 {
		c.cache = cache.New(config.CacheTTL, 2*config.CacheTTL)
	}

	return c
}

// configured number of chunks per search
func (c *Client) TopK() int {
	return c.topK
}

// reports whether the index is reachable
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

// returns up to k chunks most similar to query, nearest first.
// an empty result is not an error.
func (c *Client) Retrieve(ctx context.Context, query string, k int) ([]Chunk, error) {
	if k < 1 {
		return nil, fmt.Errorf("invalid k %d: must be at least 1", k)
	}

	embedding, err := c.queryEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate query embedding: %w", ErrUnavailable, err)
	}

	rows, err := c.db.Query(ctx, searchChunksQuery, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute search query: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var chunks []Chunk

	for rows.Next() {
		var chunk Chunk

		if err := rows.Scan(
			&chunk.ID,
			&chunk.Source,
			&chunk.Page,
			&chunk.Content,
			&chunk.Similarity,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan row: %w", ErrUnavailable, err)
		}

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating rows: %w", ErrUnavailable, err)
	}

	return chunks, nil
}

func (c *Client) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(query); ok {
			return cached.([]float32), nil //nolint:forcetypeassert // only this method writes the cache
		}
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetDefault(query, embedding)
	}

	return embedding, nil
}

// concatenates chunk contents in order, skipping blank ones.
// returns "" when there is nothing to ground an answer on.
func JoinChunks(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		if content := strings.TrimSpace(chunk.Content); content != "" {
			parts = append(parts, content)
		}
	}

	return strings.Join(parts, ContextSeparator)
}
