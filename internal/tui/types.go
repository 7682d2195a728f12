package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the chat state
type EnterChatMsg struct{}

// one turn of the conversation
type ChatMessage struct {
	Role    string
	Content string
	// intent label shown under assistant replies
	Intent   string
	Verified bool
	IsError  bool
}

// chat screen
type ChatModel struct {
	input              textinput.Model
	viewport           viewport.Model
	spinner            spinner.Model
	glamourRenderer    *glamour.TermRenderer
	client             *ChatClient
	history            []ChatMessage
	suggestionIndex    int
	width              int
	height             int
	isFetching         bool
	ready              bool
	shouldScrollBottom bool
}

// sent when the server answers a question
type ChatResponseMsg struct {
	question string
	answer   string
	intent   string
	verified bool
}

// sent when a question could not be answered
type ChatErrorMsg struct {
	question string
	err      error
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

// sent when the server starts
type ServerStartedMsg struct{}

// sent when the ingester completes
type IngesterCompleteMsg struct{}
