package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ResponsiveTUIHelper tracks terminal dimensions for bubbletea models.
// This is a global utility that can be used by any service or command
type ResponsiveTUIHelper struct {
	width  int
	height int
}

// NewResponsiveTUIHelper creates a new responsive TUI helper with default dimensions
func NewResponsiveTUIHelper() *ResponsiveTUIHelper {
	return &ResponsiveTUIHelper{
		width:  80, // Default width
		height: 24, // Default height
	}
}

// SetSize updates the terminal dimensions
func (h *ResponsiveTUIHelper) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// GetSize returns the current terminal dimensions
func (h *ResponsiveTUIHelper) GetSize() (int, int) {
	return h.width, h.height
}

// GetWidth returns the current terminal width
func (h *ResponsiveTUIHelper) GetWidth() int {
	return h.width
}

// GetHeight returns the current terminal height
func (h *ResponsiveTUIHelper) GetHeight() int {
	return h.height
}

// HandleWindowSizeMsg is a helper function to handle tea.WindowSizeMsg
func (h *ResponsiveTUIHelper) HandleWindowSizeMsg(msg tea.WindowSizeMsg) {
	h.SetSize(msg.Width, msg.Height)
}
