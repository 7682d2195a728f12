package tui

import (
	"fmt"
	"os"
	"os/exec"

	"codeberg.org/chefbot/server/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	serverPath   = "bin/server"
	ingesterPath = "bin/ingester"
)

// builds the binary from pkg when it is not there yet
func ensureBinary(path, pkg string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		buildCmd := exec.Command("go", "build", "-o", path, pkg)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to build %s: %w: %s", pkg, err, out)
		}
	}

	return nil
}

func startServer() tea.Msg {
	if err := ensureBinary(serverPath, "./cmd/server"); err != nil {
		return ErrorMsg{err: err}
	}

	cmd := exec.Command(serverPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	go func() {
		if err := cmd.Run(); err != nil {
			logger.ErrorErr(err, "server error")
		}
	}()

	return ServerStartedMsg{}
}

func runIngester() tea.Msg {
	if err := ensureBinary(ingesterPath, "./cmd/ingester"); err != nil {
		return ErrorMsg{err: err}
	}

	cmd := exec.Command(ingesterPath, "book", "--clear")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return ErrorMsg{err: fmt.Errorf("ingester failed: %w", err)}
	}

	return IngesterCompleteMsg{}
}
