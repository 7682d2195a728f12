package agent

import (
	"context"
	"strings"

	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/logger"
)

// one of exactly three routes a question can take
type Intent int

const (
	IntentOffTopic Intent = iota
	IntentGreeting
	IntentSearch
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "SALUDO"
	case IntentSearch:
		return "BUSQUEDA"
	case IntentOffTopic:
		return "OFF_TOPIC"
	default:
		return "UNKNOWN"
	}
}

// user-facing label sent as intencion_detectada
func (i Intent) Label() string {
	switch i {
	case IntentGreeting:
		return "Saludo"
	case IntentSearch:
		return "Consulta gastronómica"
	case IntentOffTopic:
		return "Fuera de tema"
	default:
		return "Desconocida"
	}
}

// accepted model outputs, after normalizeLabel
var intentAliases = map[string]Intent{
	"SALUDO":    IntentGreeting,
	"GREETING":  IntentGreeting,
	"BUSQUEDA":  IntentSearch,
	"SEARCH":    IntentSearch,
	"OFF_TOPIC": IntentOffTopic,
	"OFFTOPIC":  IntentOffTopic,
}

// asks the fast port which route the utterance should take.
// never fails on content: blank input or an unrecognised answer yields IntentOffTopic.
// a model port failure is returned wrapped with llm.ErrInvocation.
func (a *Agent) Classify(ctx context.Context, utterance string) (Intent, error) {
	if strings.TrimSpace(utterance) == "" {
		return IntentOffTopic, nil
	}

	prompt, err := renderPrompt(routerTemplate, promptData{Utterance: utterance})
	if err != nil {
		return IntentOffTopic, err
	}

	raw, err := llm.Complete(ctx, a.fast, prompt)
	if err != nil {
		return IntentOffTopic, err
	}

	intent, ok := parseIntent(raw)
	if !ok {
		logger.FromContext(ctx).Debugw("ambiguous classification, routing off topic", "raw", raw)
	}

	return intent, nil
}

// maps a model answer onto an intent: exact match first, then containment of
// exactly one intent's aliases. ok is false when it fell back to IntentOffTopic.
func parseIntent(raw string) (Intent, bool) {
	label := normalizeLabel(raw)

	if intent, ok := intentAliases[label]; ok {
		return intent, true
	}

	found := make(map[Intent]struct{})

	for alias, intent := range intentAliases {
		if strings.Contains(label, alias) {
			found[intent] = struct{}{}
		}
	}

	if len(found) == 1 {
		for intent := range found {
			return intent, true
		}
	}

	return IntentOffTopic, false
}

// upper-cases, folds accents and joins words with underscores so that
// "off-topic", "Off topic." and "OFF_TOPIC" compare equal
func normalizeLabel(raw string) string {
	label := strings.ToUpper(strings.TrimSpace(raw))
	label = strings.Trim(label, " \t\n.,;:!?¡¿\"'`*")

	replacer := strings.NewReplacer(
		"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U",
		"-", "_", " ", "_", "\t", "_", "\n", "_",
	)

	return replacer.Replace(label)
}
