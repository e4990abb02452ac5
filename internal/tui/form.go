package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/taxsheet/internal/taxform"
)

// form edits one record. Booleans are toggled in place; every other field
// is backed by a text input that is parsed on submit.
type form struct {
	fields []taxform.Field
	rec    taxform.Record
	inputs map[string]textinput.Model
	errs   map[string]string
	focus  int
	active bool
}

func newForm(fields []taxform.Field, rec taxform.Record) *form {
	f := &form{
		fields: fields,
		rec:    rec.Clone(),
		inputs: make(map[string]textinput.Model, len(fields)),
		errs:   map[string]string{},
	}
	for _, fld := range fields {
		if fld.Kind == taxform.KindBool {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 40
		ti.Placeholder = placeholder(fld)
		ti.SetValue(taxform.FormatInput(fld, f.rec.Get(fld.Key)))
		f.inputs[fld.Key] = ti
	}
	return f
}

func placeholder(fld taxform.Field) string {
	switch fld.Kind {
	case taxform.KindDate:
		return "YYYY-MM-DD"
	case taxform.KindChoice:
		labels := make([]string, 0, len(fld.Options))
		for _, o := range fld.Options {
			labels = append(labels, o.Label)
		}
		return strings.Join(labels, " / ")
	case taxform.KindNumber, taxform.KindInteger:
		return "0"
	}
	return ""
}

func (f *form) visible() []taxform.Field {
	out := make([]taxform.Field, 0, len(f.fields))
	for _, fld := range f.fields {
		if fld.Visible(f.rec) {
			out = append(out, fld)
		}
	}
	return out
}

func (f *form) focused() (taxform.Field, bool) {
	vis := f.visible()
	if !f.active || len(vis) == 0 {
		return taxform.Field{}, false
	}
	return vis[min(f.focus, len(vis)-1)], true
}

func (f *form) setFocus(i int) tea.Cmd {
	f.blurInputs()
	vis := f.visible()
	if len(vis) == 0 {
		f.active = false
		return nil
	}
	f.active = true
	f.focus = max(0, min(i, len(vis)-1))
	fld := vis[f.focus]
	ti, ok := f.inputs[fld.Key]
	if !ok {
		return nil
	}
	cmd := ti.Focus()
	f.inputs[fld.Key] = ti
	return cmd
}

func (f *form) focusFirst() tea.Cmd { return f.setFocus(0) }
func (f *form) focusLast() tea.Cmd  { return f.setFocus(len(f.visible()) - 1) }

func (f *form) blur() {
	f.blurInputs()
	f.active = false
}

func (f *form) blurInputs() {
	for k, ti := range f.inputs {
		ti.Blur()
		f.inputs[k] = ti
	}
}

// next moves focus down; false means focus was already on the last field.
func (f *form) next() (bool, tea.Cmd) {
	if f.focus >= len(f.visible())-1 {
		return false, nil
	}
	return true, f.setFocus(f.focus + 1)
}

func (f *form) prev() (bool, tea.Cmd) {
	if f.focus <= 0 {
		return false, nil
	}
	return true, f.setFocus(f.focus - 1)
}

// update feeds a key to the focused field.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	fld, ok := f.focused()
	if !ok {
		return nil
	}
	if fld.Kind == taxform.KindBool {
		if key.Matches(msg, keys.Toggle) {
			b, _ := f.rec.Get(fld.Key).(bool)
			f.rec.Set(fld.Key, !b)
			delete(f.errs, fld.Key)
			return f.setFocus(f.focus)
		}
		return nil
	}
	ti := f.inputs[fld.Key]
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	f.inputs[fld.Key] = ti
	delete(f.errs, fld.Key)
	return cmd
}

// record parses every input into a copy of the record. Parse failures on
// visible fields are recorded and make ok false; hidden fields keep their
// last good value.
func (f *form) record() (taxform.Record, bool) {
	out := f.rec.Clone()
	ok := true
	for _, fld := range f.fields {
		ti, has := f.inputs[fld.Key]
		if !has {
			continue
		}
		v, err := taxform.ParseInput(fld, ti.Value())
		if err != nil {
			if fld.Visible(out) {
				f.errs[fld.Key] = err.Error()
				ok = false
			}
			continue
		}
		delete(f.errs, fld.Key)
		out.Set(fld.Key, v)
	}
	return out, ok
}

func (f *form) setErrors(fields []taxform.FieldError) {
	for _, fe := range fields {
		f.errs[fe.Field] = fe.Message
	}
}

func (f *form) hasErrors() bool { return len(f.errs) > 0 }

// focusError moves focus to the first visible field with an error.
func (f *form) focusError() tea.Cmd {
	for i, fld := range f.visible() {
		if _, bad := f.errs[fld.Key]; bad {
			return f.setFocus(i)
		}
	}
	return nil
}

func (f *form) view() string {
	vis := f.visible()
	lines := make([]string, 0, len(vis)*2)
	for i, fld := range vis {
		marker, ls := "  ", labelStyle
		if f.active && i == f.focus {
			marker, ls = "› ", focusedLabelStyle
		}
		var value string
		if fld.Kind == taxform.KindBool {
			b, _ := f.rec.Get(fld.Key).(bool)
			value = checkbox(b)
		} else {
			value = f.inputs[fld.Key].View()
		}
		lines = append(lines, marker+ls.Render(fld.Label)+value)
		if msg, bad := f.errs[fld.Key]; bad {
			lines = append(lines, "    "+errorStyle.Render(msg))
		}
	}
	return strings.Join(lines, "\n")
}

func checkbox(on bool) string {
	if on {
		return checkedStyle.Render("[x]") + " Yes"
	}
	return "[ ] No"
}
