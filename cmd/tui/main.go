package main

import (
	"flag"
	"fmt"
	"os"

	"codeberg.org/chefbot/server/internal/logger"
	"codeberg.org/chefbot/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

func main() {
	endpoint := flag.String("endpoint", "", "chat server base URL (default $CHEFBOT_API_ENDPOINT or http://localhost:8000)")
	flag.Parse()

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "chefbot tui needs an interactive terminal")
		os.Exit(1)
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// the UI owns the terminal, so logs only go to LOG_FILE
	defer logger.Replace(logger.NewFile(os.Getenv("LOG_FILE")))()

	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil && (w < 60 || h < 20) {
		fmt.Fprintf(os.Stderr, "terminal is %dx%d, the chat view works best at 60x20 or larger\n", w, h)
	}

	app := tui.NewApp(env, *endpoint)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running chefbot: %v\n", err)
		os.Exit(1)
	}
}
