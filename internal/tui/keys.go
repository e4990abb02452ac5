package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/taxsheet/internal/wizard"
)

type keyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	Toggle      key.Binding
	SubmitNext  key.Binding
	SubmitPrev  key.Binding
	AddEntry    key.Binding
	RemoveEntry key.Binding
	PrevEntry   key.Binding
	NextEntry   key.Binding
	Summary     key.Binding
	Picker      key.Binding
	Export      key.Binding
	Quit        key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
}

var keys = keyMap{
	NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
	PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "prev field")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	SubmitNext:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "save & next")),
	SubmitPrev:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "save & back")),
	AddEntry:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add")),
	RemoveEntry: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove")),
	PrevEntry:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev entry")),
	NextEntry:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next entry")),
	Summary:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "summary")),
	Picker:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "go to step")),
	Export:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export pdf")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

	Up:     key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// wizardHelp lists the shortcuts shown in the footer for a step kind.
func (k keyMap) wizardHelp(kind wizard.StepKind) []key.Binding {
	out := []key.Binding{k.SubmitNext, k.SubmitPrev}
	switch kind {
	case wizard.KindTableOfContents:
		out = append(out, k.Down, k.Toggle)
	case wizard.KindEntryList:
		out = append(out, k.NextField, k.AddEntry, k.RemoveEntry, k.PrevEntry, k.NextEntry)
	case wizard.KindWorkRelatedTravel:
		out = append(out, k.NextField, k.AddEntry, k.RemoveEntry)
	case wizard.KindPlaceholder:
	default:
		out = append(out, k.NextField, k.Toggle)
	}
	return append(out, k.Summary, k.Picker, k.Export, k.Quit)
}

func (k keyMap) summaryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, withHelp(k.Select, "edit step"), k.Back, k.Export, k.Quit}
}

func (k keyMap) pickerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, withHelp(k.Select, "jump"), withHelp(k.Back, "cancel")}
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
