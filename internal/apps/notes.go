package apps

import (
	"fmt"
	"strings"

	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/store"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// NotesKey is where the notes app keeps its tabs.
const NotesKey = "notes-tabs"

// Tab is one notes document.
type Tab struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type notes struct {
	c       *Container
	tabs    []Tab
	current int
	editor  textarea.Model
	status  string
}

// Notes is a tabbed plain-text editor. Every edit is saved.
func Notes() Definition {
	return Definition{ID: "notes", Name: "Notes", Icon: "✎", Entry: startNotes}
}

func startNotes(c *Container) error {
	n := &notes{c: c, editor: textarea.New()}
	n.editor.ShowLineNumbers = false
	n.editor.Prompt = ""
	n.editor.CharLimit = 0
	n.tabs = store.Load(c.Context(), c.Store(), NotesKey, []Tab{{Name: "File 1"}})
	if len(n.tabs) == 0 {
		n.tabs = []Tab{{Name: "File 1"}}
	}
	n.editor.SetValue(n.tabs[0].Content)
	n.editor.Focus()
	n.retitle()

	c.SetView(n.view)
	c.OnKey(n.key)
	c.OnClose(n.save)
	return nil
}

func (n *notes) key(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+n":
		n.sync()
		n.tabs = append(n.tabs, Tab{Name: fmt.Sprintf("File %d", len(n.tabs)+1)})
		n.switchTo(len(n.tabs) - 1)
		n.save()
	case "ctrl+w":
		n.closeTab(n.current)
	case "ctrl+s":
		n.save()
		n.status = "saved"
	case "ctrl+right":
		n.switchTo((n.current + 1) % len(n.tabs))
	case "ctrl+left":
		n.switchTo((n.current - 1 + len(n.tabs)) % len(n.tabs))
	default:
		before := n.editor.Value()
		n.editor, _ = n.editor.Update(msg)
		if n.editor.Value() != before {
			n.status = ""
			n.save()
		}
	}
	return true
}

func (n *notes) switchTo(i int) {
	n.sync()
	n.current = i
	n.editor.SetValue(n.tabs[i].Content)
	n.retitle()
}

// closeTab drops tab i. The last remaining tab cannot be closed.
func (n *notes) closeTab(i int) {
	if len(n.tabs) <= 1 {
		return
	}
	n.sync()
	n.tabs = append(n.tabs[:i], n.tabs[i+1:]...)
	if n.current >= len(n.tabs) {
		n.current = len(n.tabs) - 1
	} else if n.current > i {
		n.current--
	}
	n.editor.SetValue(n.tabs[n.current].Content)
	n.retitle()
	n.save()
}

func (n *notes) sync() {
	n.tabs[n.current].Content = n.editor.Value()
}

func (n *notes) save() {
	n.sync()
	if err := store.Save(n.c.Context(), n.c.Store(), NotesKey, n.tabs); err != nil {
		logging.Error(err)
		n.status = "save failed"
	}
}

func (n *notes) retitle() {
	n.c.SetTitle("Notes: " + n.tabs[n.current].Name)
}

func (n *notes) view(width, height int) string {
	var tabs []string
	for i, t := range n.tabs {
		if i == n.current {
			tabs = append(tabs, "["+t.Name+"]")
		} else {
			tabs = append(tabs, " "+t.Name+" ")
		}
	}
	header := ansi.Truncate(strings.Join(tabs, "")+" +", width, "…")
	lines := []string{header}
	if height > 2 {
		n.editor.SetWidth(width)
		n.editor.SetHeight(height - 2)
		lines = append(lines, n.editor.View())
	}
	if height > 1 {
		lines = append(lines, ansi.Truncate(n.status, width, ""))
	}
	return strings.Join(lines, "\n")
}
