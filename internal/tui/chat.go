package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	chatHeaderHeight = 2
	chatFooterHeight = 6
	chatTitle        = "CHEFBOT"
	chatHelp         = "[Enter: Preguntar] [Tab: Sugerencia] [Ctrl+L: Borrar] [Ctrl+C: Salir]"
)

// returns a new chat screen talking to client
func NewChat(client *ChatClient) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Preguntame sobre una receta..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	return &ChatModel{
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		client:   client,
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.isFetching {
				return m, nil
			}

			m.input.SetValue("")
			m.isFetching = true
			m.appendMessage(ChatMessage{Role: roleUser, Content: question})

			return m, tea.Batch(m.client.AskCmd(question), m.spinner.Tick)

		case "tab":
			if m.isFetching {
				return m, nil
			}

			m.input.SetValue(suggestions[m.suggestionIndex%len(suggestions)])
			m.input.CursorEnd()
			m.suggestionIndex++

			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)

			return m, cmd

		case "ctrl+l":
			m.input.SetValue("")
			m.history = nil
			m.suggestionIndex = 0
			m.refreshViewport()

			return m, nil
		}

	case ChatResponseMsg:
		m.isFetching = false
		m.appendMessage(ChatMessage{
			Role:     roleAssistant,
			Content:  msg.answer,
			Intent:   msg.intent,
			Verified: msg.verified,
		})
		m.input.Focus()

		return m, nil

	case ChatErrorMsg:
		m.isFetching = false
		m.appendMessage(ChatMessage{Role: roleAssistant, Content: errorText(msg.err), IsError: true})
		m.input.Focus()

		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-10)
		m.viewport.Width = max(10, msg.Width-4)
		m.viewport.Height = max(3, msg.Height-chatHeaderHeight-chatFooterHeight)
		m.glamourRenderer = newRenderer(m.viewport.Width)
		m.ready = true
		m.refreshViewport()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	// keys belong to the input; the viewport only scrolls with the mouse and page keys
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *ChatModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render(chatTitle)
	help := lipgloss.NewStyle().Foreground(colorGray).Render(chatHelp)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(1, m.width-lipgloss.Width(header)-lipgloss.Width(help)-2)),
		help,
	))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString(m.emptyView())
	} else {
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")

	inputBox := borderStyle.
		Width(max(10, m.width-4)).
		Padding(0, 1).
		Render(m.input.View())

	b.WriteString(inputBox)
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(infoStyle.Render(m.spinner.View() + " Buscando en el libro de recetas..."))
	}

	return b.String()
}

// intro and suggestion list shown before the first question
func (m *ChatModel) emptyView() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Tu asistente experto en sabores regionales y recetas autóctonas."))
	b.WriteString("\n")
	b.WriteString(commandStyle.Render("Sugerencias:"))
	b.WriteString("\n\n")

	for _, s := range suggestions {
		b.WriteString(menuItemStyle.Render("• " + s))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *ChatModel) appendMessage(msg ChatMessage) {
	m.history = append(m.history, msg)
	m.shouldScrollBottom = true
	m.refreshViewport()
}

func (m *ChatModel) refreshViewport() {
	m.viewport.SetContent(m.renderHistory())

	if m.shouldScrollBottom {
		m.viewport.GotoBottom()
		m.shouldScrollBottom = false
	}
}

func (m *ChatModel) renderHistory() string {
	var b strings.Builder

	for _, msg := range m.history {
		switch {
		case msg.Role == roleUser:
			b.WriteString(inputStyle.Render("Vos: " + msg.Content))
			b.WriteString("\n\n")

		case msg.IsError:
			b.WriteString(errorStyle.Render(msg.Content))
			b.WriteString("\n\n")

		default:
			b.WriteString(m.renderMarkdown(msg.Content))

			if caption := formatCaption(msg); caption != "" {
				b.WriteString(infoStyle.Render(caption))
				b.WriteString("\n")
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}

// answers come back as markdown; plain text is used when no renderer is ready
func (m *ChatModel) renderMarkdown(content string) string {
	if m.glamourRenderer == nil {
		return content + "\n"
	}

	out, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content + "\n"
	}

	return out
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	return r
}

func errorText(err error) string {
	if errors.Is(err, ErrConnection) {
		return "Error de conexión: asegurate de que el servidor esté corriendo (CHEFBOT_API_ENDPOINT)."
	}

	return "Ocurrió un error: " + err.Error()
}
