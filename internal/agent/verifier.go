package agent

import (
	"context"
	"strings"
	"unicode"

	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/logger"
)

var (
	affirmativeVerdicts = map[string]bool{"SI": true, "SÍ": true, "YES": true}
	negativeVerdicts    = map[string]bool{"NO": true}
)

// asks the fast port whether answer is supported by contextText.
// anything other than a clear affirmative is treated as not grounded.
func (a *Agent) Verify(ctx context.Context, utterance, answer, contextText string) (bool, error) {
	prompt, err := renderPrompt(auditorTemplate, promptData{
		Utterance: utterance,
		Context:   contextText,
		Answer:    answer,
	})
	if err != nil {
		return false, err
	}

	raw, err := llm.Complete(ctx, a.fast, prompt)
	if err != nil {
		return false, err
	}

	verified, clear := parseVerdict(raw)
	if !clear {
		logger.FromContext(ctx).Debugw("ambiguous verdict, treating as unverified", "raw", raw)
	}

	return verified, nil
}

// the first SI/SÍ/YES or NO word decides, so an explanation after the verdict is ignored.
// clear is false when the output had no verdict word at all.
func parseVerdict(raw string) (verified, clear bool) {
	words := strings.FieldsFunc(strings.ToUpper(raw), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	for _, word := range words {
		if affirmativeVerdicts[word] {
			return true, true
		}

		if negativeVerdicts[word] {
			return false, true
		}
	}

	return false, false
}
