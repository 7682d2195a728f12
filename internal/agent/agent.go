package agent

import (
	"context"
	"fmt"

	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/logger"
)

const (
	// fixed reply for anything that is neither cooking nor small talk
	RefusalAnswer = "Lo siento, mi delantal es solo para cocinar. Preguntame sobre empanadas, locro o postres argentinos."

	// appended to search answers the verifier did not accept
	UnverifiedDisclaimer = "\n\n**Nota del sistema:** Esta respuesta podría contener información externa no verificada en el libro original."

	DefaultTopK = 3
)

// builds an agent over a retriever and the fast and capable ports.
// topK below 1 falls back to DefaultTopK.
func New(ret Retriever, ports *llm.Ports, topK int) *Agent {
	if topK < 1 {
		topK = DefaultTopK
	}

	return &Agent{
		retriever: ret,
		fast:      ports.Fast,
		capable:   ports.Capable,
		topK:      topK,
	}
}

// routes question through classification and the matching path.
// errors wrap retriever.ErrUnavailable or llm.ErrInvocation and abort only this call.
func (a *Agent) Orchestrate(ctx context.Context, question string) (*Result, error) {
	intent, err := a.Classify(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to classify question: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debugw("classified question", "intent", intent.String())

	switch intent {
	case IntentGreeting:
		reply, err := a.RespondCasually(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("failed to respond casually: %w", err)
		}

		return &Result{Response: reply, Intent: intent, Verified: true}, nil

	case IntentSearch:
		gen, err := a.search(ctx, question)
		if err != nil {
			return nil, err
		}

		log.Debugw("search answered",
			"chunks", len(gen.Chunks),
			"context_found", gen.ContextFound,
			"verified", gen.Verified,
		)

		response := gen.Answer
		if gen.ContextFound && !gen.Verified {
			response += UnverifiedDisclaimer
		}

		return &Result{Response: response, Intent: intent, Verified: gen.Verified}, nil

	case IntentOffTopic:
		return &Result{Response: RefusalAnswer, Intent: intent, Verified: true}, nil

	default:
		return nil, fmt.Errorf("unhandled intent %d", intent)
	}
}

// generates a grounded answer and pairs it with its verdict.
// verification only runs when context was found.
func (a *Agent) search(ctx context.Context, question string) (*Generation, error) {
	gen, err := a.Generate(ctx, question)
	if err != nil {
		return nil, err
	}

	if !gen.ContextFound {
		gen.Verified = false
		return gen, nil
	}

	verified, err := a.Verify(ctx, question, gen.Answer, gen.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to verify answer: %w", err)
	}

	gen.Verified = verified

	return gen, nil
}
