package agent

import (
	"context"

	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/retriever"
)

// interface for cookbook passage retrieval
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]retriever.Chunk, error)
}

// runs the classify, retrieve, generate, verify pipeline for one question at a time.
// safe for concurrent use: it holds no per-request state.
type Agent struct {
	retriever Retriever
	fast      llm.TextGenerator
	capable   llm.TextGenerator
	topK      int
}

// output of the retrieval-augmented generator
type Generation struct {
	Answer string
	// chunks joined with retriever.ContextSeparator, empty when nothing was found
	Context      string
	Chunks       []retriever.Chunk
	ContextFound bool
	// groundedness verdict for Answer, set by the orchestrator; false when no context was found
	Verified bool
}

// what the orchestrator hands back to the caller
type Result struct {
	Response string
	Intent   Intent
	// true for greetings and refusals, the verifier's verdict for searches
	Verified bool
}
