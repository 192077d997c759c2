package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roadline-app/roadline/internal/roadmap"
)

// openEditor opens the rename overlay for the selected row, pre-filled with
// the current name.
func (m *AppModel) openEditor() {
	r, ok := m.selectedRow()
	if !ok || r.kind == rowPhases {
		return
	}

	data := m.Store.Data()
	stream := data.Stream(r.streamID)
	if stream == nil {
		return
	}

	var current string
	switch r.kind {
	case rowStream:
		current = stream.Name
	case rowItem:
		if item := stream.Item(r.itemID); item != nil {
			current = item.Name
		}
	case rowSubItem:
		if item := stream.Item(r.itemID); item != nil {
			if sub := item.SubItem(r.subItemID); sub != nil {
				current = sub.Name
			}
		}
	}

	m.editTarget = r
	m.editor = newEditorInput(current)
	m.editing = true
}

func newEditorInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "name: "
	ti.CharLimit = 120
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

// handleEditorKey drives the rename overlay: enter commits, esc cancels,
// everything else goes to the text input.
func (m AppModel) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return m, nil
	case "esc":
		m.editing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// commitEdit applies the edited name to the target entity. Blank names are
// discarded rather than committed.
func (m *AppModel) commitEdit() {
	m.editing = false
	name := m.editor.Value()
	if name == "" {
		return
	}

	r := m.editTarget
	switch r.kind {
	case rowStream:
		m.Store.RenameStream(r.streamID, name)
	case rowItem:
		m.Store.UpdateItem(r.streamID, r.itemID, roadmap.ItemPatch{Name: &name})
	case rowSubItem:
		m.Store.UpdateSubItem(r.streamID, r.itemID, r.subItemID, roadmap.ItemPatch{Name: &name})
	default:
		return
	}
	m.touch()
}

func (m AppModel) renderEditor() string {
	return styleEditOverlay.Render(styleEditTitle.Render("rename") + "\n" + m.editor.View())
}
