package audit

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	agentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Bold(true)
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// Console echoes activity entries as "[Agent] Action: detail".
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console echo writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Print writes one styled entry line.
func (c *Console) Print(e Entry) {
	line := fmt.Sprintf("%s %s %s",
		agentStyle.Render("["+e.Agent+"]"),
		actionStyleFor(e).Render(e.Action+":"),
		detailStyle.Render(e.Detail),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

func actionStyleFor(e Entry) lipgloss.Style {
	switch {
	case e.Fallback:
		return fallbackStyle
	case strings.Contains(strings.ToLower(e.Action), "error"):
		return errorStyle
	default:
		return actionStyle
	}
}
