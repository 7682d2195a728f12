package retriever

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows iterates over in-memory chunks
type fakeRows struct {
	chunks  []Chunk
	pos     int
	scanErr error
	iterErr error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.iterErr }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.chunks) {
		return false
	}

	r.pos++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}

	c := r.chunks[r.pos-1]
	*dest[0].(*string) = c.ID
	*dest[1].(*string) = c.Source
	*dest[2].(*int) = c.Page
	*dest[3].(*string) = c.Content
	*dest[4].(*float32) = c.Similarity

	return nil
}

type fakeDB struct {
	rows     *fakeRows
	queryErr error
	pingErr  error
	args     []any
	queries  int
}

func (d *fakeDB) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	d.queries++
	d.args = args

	if d.queryErr != nil {
		return nil, d.queryErr
	}

	return d.rows, nil
}

func (d *fakeDB) Ping(context.Context) error { return d.pingErr }

type fakeEmbedder struct {
	calls int
	err   error
}

func (e *fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	e.calls++

	if e.err != nil {
		return nil, e.err
	}

	return []float32{0.1, 0.2, 0.3}, nil
}

func (e *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	for i, text := range texts {
		v, err := e.GenerateEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

var bookChunks = []Chunk{
	{ID: "1", Source: "recetario", Page: 42, Content: "LOCRO: maíz blanco, porotos, zapallo.", Similarity: 0.91},
	{ID: "2", Source: "recetario", Page: 43, Content: "Cocinar a fuego lento tres horas.", Similarity: 0.88},
}

func TestRetrieveReturnsChunksInOrder(t *testing.T) {
	rows := &fakeRows{chunks: bookChunks}
	db := &fakeDB{rows: rows}
	c := NewClientWithConfig(db, &fakeEmbedder{}, Config{TopK: 3})

	chunks, err := c.Retrieve(context.Background(), "¿Cómo se hace el locro?", 2)
	require.NoError(t, err)

	assert.Equal(t, bookChunks, chunks)
	assert.True(t, rows.closed)

	require.Len(t, db.args, 2)
	assert.Equal(t, pgvector.NewVector([]float32{0.1, 0.2, 0.3}), db.args[0])
	assert.Equal(t, 2, db.args[1])
}

func TestRetrieveEmptyIsNotAnError(t *testing.T) {
	c := NewClientWithConfig(&fakeDB{rows: &fakeRows{}}, &fakeEmbedder{}, Config{})

	chunks, err := c.Retrieve(context.Background(), "tango", 3)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrieveRejectsNonPositiveK(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{}}
	c := NewClientWithConfig(db, &fakeEmbedder{}, Config{})

	_, err := c.Retrieve(context.Background(), "locro", 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, db.queries)
}

func TestRetrieveFailuresWrapErrUnavailable(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		db       *fakeDB
		embedder *fakeEmbedder
	}{
		{"embedding", &fakeDB{rows: &fakeRows{}}, &fakeEmbedder{err: boom}},
		{"query", &fakeDB{queryErr: boom}, &fakeEmbedder{}},
		{"scan", &fakeDB{rows: &fakeRows{chunks: bookChunks, scanErr: boom}}, &fakeEmbedder{}},
		{"iteration", &fakeDB{rows: &fakeRows{iterErr: boom}}, &fakeEmbedder{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClientWithConfig(tt.db, tt.embedder, Config{})

			_, err := c.Retrieve(context.Background(), "locro", 3)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnavailable)
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestRetrieveCachesQueryEmbedding(t *testing.T) {
	emb := &fakeEmbedder{}
	c := NewClientWithConfig(&fakeDB{rows: &fakeRows{}}, emb, Config{CacheTTL: time.Minute})

	for range 3 {
		_, err := c.Retrieve(context.Background(), "empanadas salteñas", 3)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, emb.calls)

	_, err := c.Retrieve(context.Background(), "alfajores", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, emb.calls)
}

func TestPingWrapsErrUnavailable(t *testing.T) {
	c := NewClientWithConfig(&fakeDB{pingErr: errors.New("refused")}, &fakeEmbedder{}, Config{})

	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestJoinChunks(t *testing.T) {
	assert.Equal(t,
		"LOCRO: maíz blanco, porotos, zapallo.\n\nCocinar a fuego lento tres horas.",
		JoinChunks(bookChunks))

	assert.Empty(t, JoinChunks(nil))
	assert.Empty(t, JoinChunks([]Chunk{{Content: "  \n"}, {Content: ""}}))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RETRIEVAL_TOP_K", "")
	t.Setenv("EMBEDDING_CACHE_TTL", "")
	assert.Equal(t, Config{TopK: 3, CacheTTL: defaultCacheTTL}, loadConfig())

	t.Setenv("RETRIEVAL_TOP_K", "5")
	t.Setenv("EMBEDDING_CACHE_TTL", "0s")
	assert.Equal(t, Config{TopK: 5, CacheTTL: 0}, loadConfig())

	t.Setenv("RETRIEVAL_TOP_K", "-2")
	assert.Equal(t, 3, loadConfig().TopK)
}
