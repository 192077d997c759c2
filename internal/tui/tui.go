// Package tui renders an interactive roadmap timeline in the terminal:
// streams as rows, items as horizontal bars on a scrollable week/month grid,
// with mouse-driven drag, resize, and dependency linking.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program over an open document. The program
// uses the alternate screen buffer and cell-motion mouse tracking, which the
// drag and resize gestures depend on.
func NewProgram(model AppModel, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	allOpts = append(allOpts, opts...)

	return tea.NewProgram(model, allOpts...)
}
