package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		raw    string
		want   Intent
		wantOK bool
	}{
		{"SALUDO", IntentGreeting, true},
		{"saludo.", IntentGreeting, true},
		{"Greeting", IntentGreeting, true},
		{"BUSQUEDA", IntentSearch, true},
		{"Búsqueda", IntentSearch, true},
		{" search\n", IntentSearch, true},
		{"OFF_TOPIC", IntentOffTopic, true},
		{"off-topic", IntentOffTopic, true},
		{"Off topic.", IntentOffTopic, true},
		{"La categoría es BUSQUEDA", IntentSearch, true},
		{"**SALUDO**", IntentGreeting, true},
		{"SALUDO o BUSQUEDA", IntentOffTopic, false},
		{"receta", IntentOffTopic, false},
		{"", IntentOffTopic, false},
		{"🤖🤖", IntentOffTopic, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseIntent(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	inputs := []string{"Hola", "", "   ", "asdf qwer zxcv", "¿¿??", "日本語のテキスト", "¿Cómo se hace el locro?"}
	outputs := []string{"SALUDO", "BUSQUEDA", "OFF_TOPIC", "no sé", "", "SALUDO BUSQUEDA OFF_TOPIC"}

	for _, out := range outputs {
		a := newTestAgent(&fakeRetriever{}, fastPort(out, ""), capablePort(""))

		for _, in := range inputs {
			intent, err := a.Classify(context.Background(), in)
			require.NoError(t, err)
			assert.Contains(t, []Intent{IntentGreeting, IntentSearch, IntentOffTopic}, intent)
		}
	}
}

func TestClassifyBlankSkipsModel(t *testing.T) {
	fast := fastPort("SALUDO", "")
	a := newTestAgent(&fakeRetriever{}, fast, capablePort(""))

	intent, err := a.Classify(context.Background(), " \n\t")
	require.NoError(t, err)

	assert.Equal(t, IntentOffTopic, intent)
	assert.Zero(t, fast.calls())
}

func TestClassifyRendersUtterance(t *testing.T) {
	fast := fastPort("BUSQUEDA", "")
	a := newTestAgent(&fakeRetriever{}, fast, capablePort(""))

	_, err := a.Classify(context.Background(), "¿Qué lleva la empanada tucumana?")
	require.NoError(t, err)

	require.Len(t, fast.prompts, 1)
	assert.Contains(t, fast.prompts[0], "Usuario: ¿Qué lleva la empanada tucumana?")
}

func TestIntentLabels(t *testing.T) {
	assert.Equal(t, "Saludo", IntentGreeting.Label())
	assert.Equal(t, "Consulta gastronómica", IntentSearch.Label())
	assert.Equal(t, "Fuera de tema", IntentOffTopic.Label())
	assert.Equal(t, "BUSQUEDA", IntentSearch.String())
}
