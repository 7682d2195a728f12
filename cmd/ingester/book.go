package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/chefbot/server/internal/chunker"
	"codeberg.org/chefbot/server/internal/config"
	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/logger"
	"codeberg.org/chefbot/server/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// the part of the embedder the pipeline needs
type batchEmbedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// the chunk table operations the pipeline needs; *storage.Client satisfies it
type chunkStore interface {
	EnsureSchema(ctx context.Context, dimensions int) error
	InsertChunksBatch(ctx context.Context, chunks []chunker.Chunk, embeddings [][]float32) error
	ReplaceChunks(ctx context.Context, chunks []chunker.Chunk, embeddings [][]float32) error
	GetChunkCount(ctx context.Context) (int, error)
}

func runBook(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ingestCfg, err := config.LoadIngestConfig(configPath)
	if err != nil {
		return err
	}

	if sourcePath != "" {
		ingestCfg.Source.Path = sourcePath
	}

	if err := ingestCfg.Validate(); err != nil {
		return err
	}

	dbURL, err := databaseURL()
	if err != nil {
		return err
	}

	embedder, err := llm.NewEmbedder()
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := storage.NewClient(ctx, dbURL)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("connected to database")

	return IngestBook(ctx, ingestCfg, store, embedder, embedder.Dimensions(), clearFirst)
}

// loads, chunks, embeds and stores the cookbook described by cfg.
// with reset the existing chunks are swapped out only after every embedding succeeded.
func IngestBook(ctx context.Context, cfg config.IngestConfig, store chunkStore, embedder batchEmbedder, dimensions int, reset bool) error {
	start := time.Now()
	logger.Info("starting book ingestion", "path", cfg.Source.Path, "clear", reset)

	pages, err := chunker.LoadPages(ctx, cfg.Source.Path)
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}

	logger.Info("loaded pages", "count", len(pages))

	chunks := chunker.ChunkPages(pages, cfg.Source.Name, cfg.Source.Noise, chunker.Options{
		Size:       cfg.Chunking.Size,
		Overlap:    cfg.Chunking.Overlap,
		Separators: cfg.Chunking.Separators,
	})

	if len(chunks) == 0 {
		return fmt.Errorf("no chunks generated from %s", cfg.Source.Path)
	}

	logger.Info("generated chunks", "count", len(chunks))

	if err := store.EnsureSchema(ctx, dimensions); err != nil {
		return err
	}

	embeddings, err := embedChunks(ctx, embedder, chunks, cfg.Embedding.BatchSize, cfg.Embedding.Concurrency)
	if err != nil {
		return err
	}

	logger.Info("generated embeddings", "count", len(embeddings))

	if reset {
		logger.Info("replacing existing chunks")

		if err := store.ReplaceChunks(ctx, chunks, embeddings); err != nil {
			return fmt.Errorf("failed to replace chunks: %w", err)
		}
	} else if err := store.InsertChunksBatch(ctx, chunks, embeddings); err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}

	count, err := store.GetChunkCount(ctx)
	if err != nil {
		logger.Warn("failed to verify chunk count", "error", err)
	} else {
		logger.Info("ingestion complete",
			"inserted", len(chunks),
			"total_in_db", count,
			"duration", time.Since(start).Round(time.Millisecond).String(),
		)
	}

	return nil
}

// embeds chunk contents in batches, at most concurrency requests in flight.
// the result is index-aligned with chunks.
func embedChunks(ctx context.Context, embedder batchEmbedder, chunks []chunker.Chunk, batchSize, concurrency int) ([][]float32, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	embeddings := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, r := range batchRanges(len(chunks), batchSize) {
		g.Go(func() error {
			texts := make([]string, 0, r.end-r.start)
			for _, chunk := range chunks[r.start:r.end] {
				texts = append(texts, chunk.Content)
			}

			vectors, err := embedder.GenerateEmbeddings(gctx, texts)
			if err != nil {
				return fmt.Errorf("failed to embed chunks %d-%d: %w", r.start, r.end-1, err)
			}

			if len(vectors) != len(texts) {
				return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(texts))
			}

			copy(embeddings[r.start:r.end], vectors)

			logger.Debug("embedded batch", "start", r.start, "end", r.end)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return embeddings, nil
}

type batchRange struct {
	start, end int
}

// splits n items into consecutive [start, end) ranges of at most size
func batchRanges(n, size int) []batchRange {
	if size < 1 {
		size = n
	}

	var ranges []batchRange

	for start := 0; start < n; start += size {
		ranges = append(ranges, batchRange{start: start, end: min(start+size, n)})
	}

	return ranges
}
