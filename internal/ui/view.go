package ui

import (
	"strings"

	"github.com/atomicstack/mizu/internal/kernel/scene"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const hintSeparator = " • "

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.canvas.Clear()
	m.kernel.Scenes.Render()
	body := m.canvas.Render()
	if !m.showFooter {
		return body
	}
	return body + "\n" + m.footerView()
}

// footerView renders key help plus the current scene's hints on one line.
func (m *Model) footerView() string {
	st := m.styles()
	m.help.Styles.ShortKey = st.Title.Copy()
	m.help.Styles.ShortDesc = st.Footer.Copy()
	m.help.Styles.ShortSeparator = st.Muted.Copy()

	parts := []string{m.help.ShortHelpView(m.kernel.Input.KeyMap().ShortHelp())}
	if h, ok := m.kernel.Scenes.Current().(scene.Helper); ok {
		if hints := h.Hints(); len(hints) > 0 {
			parts = append(parts, st.Footer.Render(strings.Join(hints, hintSeparator)))
		}
	}
	mode := "free"
	if m.kernel.Input.NavigationMode() {
		mode = "focus"
	}
	parts = append(parts, st.Muted.Render("["+mode+"]"))
	line := strings.Join(parts, st.Muted.Render(hintSeparator))
	if lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(m.width), "…")
	}
	return line
}
