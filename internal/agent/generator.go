package agent

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/retriever"
)

// answer given when the index returns nothing usable
const NoContextAnswer = "No encontré información en el libro sobre eso."

// retrieves the top passages for utterance and asks the capable port to answer
// from them only. with no usable context it returns NoContextAnswer without
// calling the capable port.
func (a *Agent) Generate(ctx context.Context, utterance string) (*Generation, error) {
	chunks, err := a.retriever.Retrieve(ctx, utterance, a.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	contextText := retriever.JoinChunks(chunks)

	if strings.TrimSpace(contextText) == "" {
		return &Generation{
			Answer:       NoContextAnswer,
			Chunks:       chunks,
			ContextFound: false,
		}, nil
	}

	prompt, err := renderPrompt(groundedTemplate, promptData{
		Utterance: utterance,
		Context:   contextText,
	})
	if err != nil {
		return nil, err
	}

	answer, err := llm.Complete(ctx, a.capable, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &Generation{
		Answer:       answer,
		Context:      contextText,
		Chunks:       chunks,
		ContextFound: true,
	}, nil
}
