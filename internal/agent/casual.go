package agent

import (
	"context"

	"codeberg.org/chefbot/server/internal/llm"
)

// answers greetings and small talk with the ChefBot persona on the fast port.
// no retrieval and no verification happen here. the persona is told not to
// make up recipes, but that is a prompt instruction only and is not checked.
func (a *Agent) RespondCasually(ctx context.Context, utterance string) (string, error) {
	prompt, err := renderPrompt(casualTemplate, promptData{Utterance: utterance})
	if err != nil {
		return "", err
	}

	return llm.Complete(ctx, a.fast, prompt)
}
