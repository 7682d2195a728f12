package retriever

const (
	// cosine distance, nearest first
	searchChunksQuery = `
		SELECT
			id::text,
			source,
			page,
			content,
			(1 - (embedding <=> $1))::real AS similarity
		FROM book_chunks
		ORDER BY embedding <=> $1
		LIMIT $2
	`
)
