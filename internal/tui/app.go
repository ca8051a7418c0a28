package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"protogen/internal/header"
	"protogen/internal/protocol"
)

// Run starts the inspector for a generated header.
func Run(source string, desc *protocol.Description, h *header.Header) error {
	m := NewModel(source, h, header.Lint(desc, h))
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}

	return nil
}
