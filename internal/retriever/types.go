package retriever

import (
	"context"
	"errors"
	"time"

	"codeberg.org/chefbot/server/internal/llm"
	"github.com/jackc/pgx/v5"
	"github.com/patrickmn/go-cache"
)

// returned (wrapped) when the index, or the query embedding needed to
// search it, cannot be reached
var ErrUnavailable = errors.New("vector index unavailable")

// the subset of *pgxpool.Pool the retriever needs
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

type Client struct {
	db       Querier
	embedder llm.Embedder
	topK     int
	// query text -> embedding, so repeated questions skip the embedding call
	cache *cache.Cache
}

// one passage of the cookbook, as returned by a similarity search
type Chunk struct {
	ID         string
	Source     string
	Page       int
	Content    string
	Similarity float32
}

type Config struct {
	TopK     int
	CacheTTL time.Duration
}
