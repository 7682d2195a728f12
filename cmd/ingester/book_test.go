package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"codeberg.org/chefbot/server/internal/chunker"
	"codeberg.org/chefbot/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	mu       sync.Mutex
	calls    int
	inFlight atomic.Int32
	peak     atomic.Int32
	failOn   string
}

func (e *countingEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	n := e.inFlight.Add(1)
	defer e.inFlight.Add(-1)

	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}

	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	out := make([][]float32, len(texts))

	for i, text := range texts {
		if text == e.failOn {
			return nil, errors.New("rate limited")
		}

		// first component encodes the chunk so alignment can be checked
		var idx float32
		_, _ = fmt.Sscanf(text, "chunk %f", &idx)
		out[i] = []float32{idx, 1}
	}

	return out, nil
}

func makeChunks(n int) []chunker.Chunk {
	chunks := make([]chunker.Chunk, n)
	for i := range chunks {
		chunks[i] = chunker.Chunk{Source: "recetario", Page: 1, Index: i, Content: fmt.Sprintf("chunk %d", i)}
	}

	return chunks
}

func TestBatchRanges(t *testing.T) {
	assert.Equal(t, []batchRange{{0, 3}, {3, 6}, {6, 7}}, batchRanges(7, 3))
	assert.Equal(t, []batchRange{{0, 4}}, batchRanges(4, 10))
	assert.Equal(t, []batchRange{{0, 5}}, batchRanges(5, 0))
	assert.Empty(t, batchRanges(0, 3))
}

func TestEmbedChunksKeepsOrder(t *testing.T) {
	emb := &countingEmbedder{}
	chunks := makeChunks(10)

	vectors, err := embedChunks(context.Background(), emb, chunks, 3, 2)
	require.NoError(t, err)
	require.Len(t, vectors, 10)

	for i, v := range vectors {
		assert.Equal(t, float32(i), v[0], "vector %d out of place", i)
	}

	assert.Equal(t, 4, emb.calls)
	assert.LessOrEqual(t, emb.peak.Load(), int32(2))
}

func TestEmbedChunksFailsWholeRun(t *testing.T) {
	emb := &countingEmbedder{failOn: "chunk 4"}

	_, err := embedChunks(context.Background(), emb, makeChunks(6), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunks 4-5")
}

// records writes so tests can see what reached the table
type fakeStore struct {
	schemaDims int
	inserted   []chunker.Chunk
	replaced   []chunker.Chunk
	replaces   int
	count      int
}

func (s *fakeStore) EnsureSchema(_ context.Context, dimensions int) error {
	s.schemaDims = dimensions
	return nil
}

func (s *fakeStore) InsertChunksBatch(_ context.Context, chunks []chunker.Chunk, _ [][]float32) error {
	s.inserted = append(s.inserted, chunks...)
	s.count += len(chunks)

	return nil
}

func (s *fakeStore) ReplaceChunks(_ context.Context, chunks []chunker.Chunk, _ [][]float32) error {
	s.replaces++
	s.replaced = chunks
	s.count = len(chunks)

	return nil
}

func (s *fakeStore) GetChunkCount(context.Context) (int, error) {
	return s.count, nil
}

type failingEmbedder struct{}

func (failingEmbedder) GenerateEmbeddings(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("insufficient_quota")
}

// writes a two-page cookbook as page files and returns an ingest config for it
func pageDirConfig(t *testing.T) config.IngestConfig {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001.txt"),
		[]byte("GASTRONOMIA REGIONAL ARGENTINA\nchunk 0 Locro: maíz blanco, porotos y zapallo."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002.txt"),
		[]byte("chunk 1 Empanadas salteñas: carne cortada a cuchillo."), 0o600))

	cfg := config.DefaultIngestConfig()
	cfg.Source.Path = dir

	return cfg
}

func TestIngestBookEmbeddingFailureKeepsIndex(t *testing.T) {
	store := &fakeStore{count: 42}

	err := IngestBook(context.Background(), pageDirConfig(t), store, failingEmbedder{}, 2, true)
	require.Error(t, err)

	assert.Zero(t, store.replaces)
	assert.Empty(t, store.inserted)
	assert.Equal(t, 42, store.count)
}

func TestIngestBookResetReplacesIndex(t *testing.T) {
	store := &fakeStore{count: 42}

	require.NoError(t, IngestBook(context.Background(), pageDirConfig(t), store, &countingEmbedder{}, 2, true))

	assert.Equal(t, 2, store.schemaDims)
	assert.Equal(t, 1, store.replaces)
	assert.Empty(t, store.inserted)
	require.Len(t, store.replaced, 2)
	assert.Equal(t, 1, store.replaced[0].Page)
	assert.NotContains(t, store.replaced[0].Content, "GASTRONOMIA REGIONAL ARGENTINA")
	assert.Equal(t, 2, store.count)
}

func TestIngestBookAppendsWithoutReset(t *testing.T) {
	store := &fakeStore{count: 42}

	require.NoError(t, IngestBook(context.Background(), pageDirConfig(t), store, &countingEmbedder{}, 2, false))

	assert.Zero(t, store.replaces)
	assert.Len(t, store.inserted, 2)
	assert.Equal(t, 44, store.count)
}
