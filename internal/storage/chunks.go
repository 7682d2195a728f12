package storage

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/chefbot/server/internal/chunker"
	"codeberg.org/chefbot/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// multiple chunks in a single transaction
func (c *Client) InsertChunksBatch(ctx context.Context, chunks []chunker.Chunk, embeddings [][]float32) error {
	if err := checkBatch(chunks, embeddings); err != nil {
		return err
	}

	if len(chunks) == 0 {
		return nil
	}

	return c.writeChunks(ctx, chunks, embeddings, false)
}

// swaps the whole index for chunks in one transaction.
// readers see either the old chunks or the new ones, never an empty table.
func (c *Client) ReplaceChunks(ctx context.Context, chunks []chunker.Chunk, embeddings [][]float32) error {
	if err := checkBatch(chunks, embeddings); err != nil {
		return err
	}

	if len(chunks) == 0 {
		return errors.New("refusing to replace the index with no chunks")
	}

	return c.writeChunks(ctx, chunks, embeddings, true)
}

func (c *Client) writeChunks(ctx context.Context, chunks []chunker.Chunk, embeddings [][]float32, replace bool) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	if replace {
		if _, err := tx.Exec(ctx, deleteAllChunksQuery); err != nil {
			return fmt.Errorf("failed to clear chunks: %w", err)
		}
	}

	batch := &pgx.Batch{}

	for i, chunk := range chunks {
		batch.Queue(insertChunkQuery,
			chunk.Source,
			chunk.Page,
			chunk.Index,
			chunk.Content,
			pgvector.NewVector(embeddings[i]),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(chunks) {
		_, err := br.Exec()
		if err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rejects batches whose chunks and embeddings do not line up
func checkBatch(chunks []chunker.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d != %d", len(chunks), len(embeddings))
	}

	for i, emb := range embeddings {
		if len(emb) == 0 {
			return fmt.Errorf("chunk %d has an empty embedding", i)
		}
	}

	return nil
}

// returns the total number of chunks in the database
func (c *Client) GetChunkCount(ctx context.Context) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, getChunkCountQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get chunk count: %w", err)
	}

	return count, nil
}
