package agent

import (
	"fmt"
	"strings"
	"text/template"
)

var (
	routerTemplate = template.Must(template.New("router").Parse(
		`Eres el cerebro de un asistente de cocina. Clasifica la siguiente frase del usuario en una de estas 3 categorías:

1. "SALUDO": si el usuario saluda, agradece, se despide o hace charla casual (ej: "Hola", "Quién sos").
2. "BUSQUEDA": si el usuario pregunta sobre recetas, comida, historia culinaria o ingredientes.
3. "OFF_TOPIC": si el usuario habla de temas que NO son cocina ni saludos (ej: fútbol, programación).

Usuario: {{.Utterance}}

Responde ÚNICAMENTE con una palabra: SALUDO, BUSQUEDA u OFF_TOPIC.`))

	// the persona must not invent recipes; nothing checks this besides the prompt
	casualTemplate = template.Must(template.New("casual").Parse(
		`Eres "ChefBot", un asistente experto en gastronomía argentina, amigable y servicial.
El usuario te ha dicho: "{{.Utterance}}"

Respondele de forma breve y carismática, invitándolo siempre a cocinar o a preguntar por una receta.
NO inventes recetas, solo charla.`))

	groundedTemplate = template.Must(template.New("grounded").Parse(
		`Eres un experto Chef Argentino. Responde la pregunta del usuario basándote EXCLUSIVAMENTE en el siguiente contexto extraído del libro 'Gastronomía Regional Argentina'.

- Si la respuesta no está en el contexto, di amablemente que no tienes esa información.
- Cita el nombre de la receta si aplica.
- Sé claro y didáctico.
- No uses emojis ni símbolos decorativos.
- Responde siempre en español, sin importar el idioma de la pregunta.

CONTEXTO:
{{.Context}}

PREGUNTA DEL USUARIO:
{{.Utterance}}

RESPUESTA:`))

	auditorTemplate = template.Must(template.New("auditor").Parse(
		`Eres un auditor de calidad estricto. Tu trabajo es detectar alucinaciones en un sistema RAG.

1. Analiza el CONTEXTO y la RESPUESTA.
2. Si la respuesta contiene información que NO está en el contexto, es una alucinación: responde NO.
3. Si la respuesta contradice el contexto, responde NO.
4. Si la respuesta se basa fielmente en el contexto, aunque lo parafrasee, responde SI.

CONTEXTO:
{{.Context}}

PREGUNTA USUARIO: {{.Utterance}}
RESPUESTA BOT: {{.Answer}}

VEREDICTO (solo responde SI o NO):`))
)

// values available to every prompt template
type promptData struct {
	Utterance string
	Context   string
	Answer    string
}

func renderPrompt(tmpl *template.Template, data promptData) (string, error) {
	var builder strings.Builder

	if err := tmpl.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}

	return builder.String(), nil
}
