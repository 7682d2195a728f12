package storage

const (
	getChunkCountQuery   = "SELECT COUNT(*) FROM book_chunks"
	deleteAllChunksQuery = "DELETE FROM book_chunks"

	insertChunkQuery = `
		INSERT INTO book_chunks (source, page, chunk_index, content, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`

	createExtensionQuery = "CREATE EXTENSION IF NOT EXISTS vector"

	// %d is the embedding dimension
	createChunksTableQuery = `
		CREATE TABLE IF NOT EXISTS book_chunks (
			id          BIGSERIAL PRIMARY KEY,
			source      TEXT NOT NULL,
			page        INTEGER NOT NULL,
			chunk_index INTEGER NOT NULL,
			content     TEXT NOT NULL,
			embedding   VECTOR(%d) NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	createEmbeddingIndexQuery = `
		CREATE INDEX IF NOT EXISTS book_chunks_embedding_idx
		ON book_chunks USING hnsw (embedding vector_cosine_ops)
	`
)
