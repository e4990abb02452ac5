package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/taxsheet/internal/taxform"
	"github.com/jask/taxsheet/internal/wizard"
)

var (
	errFieldInput  = errors.New("some fields could not be read")
	errNoCategory  = errors.New("no category ticked")
	errFirstEntry  = errors.New("the first entry cannot be removed")
	errNoExpense   = errors.New("focus an other expense to remove it")
	errUnsupported = errors.New("no editor for step")
)

const noCategoryMessage = "Must tick at least one category."

// stepEditor edits the value of one wizard step. Value parses and validates
// the edit, marking bad fields; a nil value means there is nothing to commit.
type stepEditor interface {
	Update(msg tea.KeyMsg) tea.Cmd
	View(width int) string
	Value() (any, error)
	Focus() tea.Cmd
}

func newEditor(step wizard.Step, store *wizard.Store) (stepEditor, error) {
	switch step.Kind {
	case wizard.KindTableOfContents:
		return newTOCEditor(store.Selection()), nil
	case wizard.KindPlaceholder:
		return placeholderEditor{title: step.Title}, nil
	}
	path, ok := step.Path()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnsupported, step.Kind)
	}
	value, err := store.Get(path)
	if err != nil {
		return nil, err
	}
	switch step.Kind {
	case wizard.KindPersonalInfo, wizard.KindMotorVehicle:
		return newRecordEditor(path, value)
	case wizard.KindEntryList:
		return newListEditor(path, value)
	case wizard.KindWorkRelatedTravel:
		return newTravelEditor(value)
	}
	return nil, fmt.Errorf("%w: %s", errUnsupported, step.Kind)
}

func statusCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

// validate converts edited records into the typed slot value and checks it
// against the form schema.
func validate(path taxform.Path, v any) (any, *taxform.ValidationError, error) {
	typed, err := taxform.DecodeFor(path, v)
	if err != nil {
		return nil, nil, err
	}
	err = taxform.Validate(path, typed)
	var ve *taxform.ValidationError
	if errors.As(err, &ve) {
		return nil, ve, err
	}
	if err != nil {
		return nil, nil, err
	}
	return typed, nil, nil
}

type recordEditor struct {
	path taxform.Path
	form *form
}

func newRecordEditor(path taxform.Path, value any) (*recordEditor, error) {
	rec, err := taxform.ToRecord(value)
	if err != nil {
		return nil, err
	}
	return &recordEditor{path: path, form: newForm(taxform.Fields(path), rec)}, nil
}

func (e *recordEditor) Focus() tea.Cmd { return e.form.setFocus(e.form.focus) }

func (e *recordEditor) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NextField):
		_, cmd := e.form.next()
		return cmd
	case key.Matches(msg, keys.PrevField):
		_, cmd := e.form.prev()
		return cmd
	}
	return e.form.update(msg)
}

func (e *recordEditor) Value() (any, error) {
	rec, ok := e.form.record()
	if !ok {
		e.form.focusError()
		return nil, errFieldInput
	}
	typed, ve, err := validate(e.path, rec)
	if ve != nil {
		e.form.setErrors(ve.Fields)
		e.form.focusError()
	}
	return typed, err
}

func (e *recordEditor) View(int) string { return e.form.view() }

// listEditor edits a repeatable section one entry at a time.
type listEditor struct {
	path  taxform.Path
	forms []*form
	idx   int
}

func newListEditor(path taxform.Path, value any) (*listEditor, error) {
	recs, err := taxform.ToRecords(value)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		blank, err := taxform.BlankEntry(path)
		if err != nil {
			return nil, err
		}
		recs = append(recs, blank)
	}
	e := &listEditor{path: path}
	for _, rec := range recs {
		e.forms = append(e.forms, newForm(taxform.Fields(path), rec))
	}
	return e, nil
}

func (e *listEditor) current() *form { return e.forms[e.idx] }

func (e *listEditor) Focus() tea.Cmd { return e.current().setFocus(e.current().focus) }

func (e *listEditor) show(i int) tea.Cmd {
	e.current().blur()
	e.idx = max(0, min(i, len(e.forms)-1))
	return e.current().focusFirst()
}

func (e *listEditor) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.AddEntry):
		blank, err := taxform.BlankEntry(e.path)
		if err != nil {
			return statusCmd(err)
		}
		e.forms = append(e.forms, newForm(taxform.Fields(e.path), blank))
		return e.show(len(e.forms) - 1)
	case key.Matches(msg, keys.RemoveEntry):
		if e.idx == 0 {
			return statusCmd(errFirstEntry)
		}
		e.forms = append(e.forms[:e.idx], e.forms[e.idx+1:]...)
		e.idx--
		return e.current().focusFirst()
	case key.Matches(msg, keys.PrevEntry):
		return e.show(e.idx - 1)
	case key.Matches(msg, keys.NextEntry):
		return e.show(e.idx + 1)
	case key.Matches(msg, keys.NextField):
		_, cmd := e.current().next()
		return cmd
	case key.Matches(msg, keys.PrevField):
		_, cmd := e.current().prev()
		return cmd
	}
	return e.current().update(msg)
}

func (e *listEditor) Value() (any, error) {
	recs := make([]taxform.Record, 0, len(e.forms))
	bad := -1
	for i, f := range e.forms {
		rec, ok := f.record()
		if !ok && bad < 0 {
			bad = i
		}
		recs = append(recs, rec)
	}
	if bad >= 0 {
		e.show(bad)
		e.current().focusError()
		return nil, errFieldInput
	}
	typed, ve, err := validate(e.path, recs)
	if ve == nil {
		return typed, err
	}
	first := -1
	for i, entryErrs := range splitByIndex(ve.Fields, "") {
		if i < 0 || i >= len(e.forms) {
			continue
		}
		e.forms[i].setErrors(entryErrs)
		if first < 0 || i < first {
			first = i
		}
	}
	if first >= 0 {
		e.show(first)
		e.current().focusError()
	}
	return nil, err
}

func (e *listEditor) View(int) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Entry %d of %d", e.idx+1, len(e.forms))))
	for i, f := range e.forms {
		if i != e.idx && f.hasErrors() {
			b.WriteString("  " + errorStyle.Render(fmt.Sprintf("entry %d has errors", i+1)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(e.current().view())
	return b.String()
}

// splitByIndex groups field errors of the form "<prefix><i>.<field>" by i,
// stripping the prefix and index from the field name.
func splitByIndex(fields []taxform.FieldError, prefix string) map[int][]taxform.FieldError {
	out := map[int][]taxform.FieldError{}
	for _, fe := range fields {
		rest, ok := strings.CutPrefix(fe.Field, prefix)
		if !ok {
			continue
		}
		head, field, _ := strings.Cut(rest, ".")
		i, err := strconv.Atoi(head)
		if err != nil {
			continue
		}
		out[i] = append(out[i], taxform.FieldError{Field: field, Message: fe.Message})
	}
	return out
}

// travelEditor edits the travel claim and its list of other expenses.
// Focus runs through the claim's fields then through each expense.
type travelEditor struct {
	main     *form
	expenses []*form
	// -1 while focus is in the claim's own fields.
	focusExp int
}

func newTravelEditor(value any) (*travelEditor, error) {
	rec, err := taxform.ToRecord(value)
	if err != nil {
		return nil, err
	}
	e := &travelEditor{focusExp: -1}
	if raw, ok := rec["otherExpenses"].([]any); ok {
		for _, item := range raw {
			m, _ := item.(map[string]any)
			e.expenses = append(e.expenses, newForm(taxform.OtherExpenseFields, taxform.Record(m)))
		}
	}
	delete(rec, "otherExpenses")
	e.main = newForm(taxform.Fields(taxform.PathWorkRelatedTravel), rec)
	return e, nil
}

func (e *travelEditor) active() *form {
	if e.focusExp < 0 {
		return e.main
	}
	return e.expenses[e.focusExp]
}

func (e *travelEditor) Focus() tea.Cmd { return e.active().setFocus(e.active().focus) }

func (e *travelEditor) moveTo(exp int, last bool) tea.Cmd {
	e.active().blur()
	e.focusExp = exp
	if last {
		return e.active().focusLast()
	}
	return e.active().focusFirst()
}

func (e *travelEditor) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NextField):
		moved, cmd := e.active().next()
		if !moved && e.focusExp < len(e.expenses)-1 {
			return e.moveTo(e.focusExp+1, false)
		}
		return cmd
	case key.Matches(msg, keys.PrevField):
		moved, cmd := e.active().prev()
		if !moved && e.focusExp >= 0 {
			return e.moveTo(e.focusExp-1, true)
		}
		return cmd
	case key.Matches(msg, keys.PrevEntry):
		if e.focusExp < 0 {
			return nil
		}
		return e.moveTo(e.focusExp-1, false)
	case key.Matches(msg, keys.NextEntry):
		if e.focusExp >= len(e.expenses)-1 {
			return nil
		}
		return e.moveTo(e.focusExp+1, false)
	case key.Matches(msg, keys.AddEntry):
		e.expenses = append(e.expenses, newForm(taxform.OtherExpenseFields, taxform.Record{"name": "", "amount": float64(0)}))
		return e.moveTo(len(e.expenses)-1, false)
	case key.Matches(msg, keys.RemoveEntry):
		if e.focusExp < 0 {
			return statusCmd(errNoExpense)
		}
		i := e.focusExp
		e.expenses = append(e.expenses[:i], e.expenses[i+1:]...)
		e.focusExp = -1
		if len(e.expenses) == 0 {
			return e.main.focusLast()
		}
		e.focusExp = min(i, len(e.expenses)-1)
		return e.active().focusFirst()
	}
	return e.active().update(msg)
}

func (e *travelEditor) Value() (any, error) {
	rec, ok := e.main.record()
	expenses := make([]taxform.Record, 0, len(e.expenses))
	bad := -2
	if !ok {
		bad = -1
	}
	for i, f := range e.expenses {
		r, good := f.record()
		if !good && bad == -2 {
			bad = i
		}
		expenses = append(expenses, r)
	}
	if bad != -2 {
		e.moveTo(bad, false)
		e.active().focusError()
		return nil, errFieldInput
	}
	rec["otherExpenses"] = expenses

	typed, ve, err := validate(taxform.PathWorkRelatedTravel, rec)
	if ve == nil {
		return typed, err
	}
	var own []taxform.FieldError
	for _, fe := range ve.Fields {
		if !strings.HasPrefix(fe.Field, "otherExpenses.") {
			own = append(own, fe)
		}
	}
	e.main.setErrors(own)
	for i, errs := range splitByIndex(ve.Fields, "otherExpenses.") {
		if i >= 0 && i < len(e.expenses) {
			e.expenses[i].setErrors(errs)
		}
	}
	target := -2
	if e.main.hasErrors() {
		target = -1
	} else {
		for i, f := range e.expenses {
			if f.hasErrors() {
				target = i
				break
			}
		}
	}
	if target != -2 {
		e.moveTo(target, false)
		e.active().focusError()
	}
	return nil, err
}

func (e *travelEditor) View(int) string {
	var b strings.Builder
	b.WriteString(e.main.view())
	b.WriteString("\n\n" + groupStyle.Render("Other expenses"))
	if len(e.expenses) == 0 {
		b.WriteString("\n" + mutedStyle.Render("  none, press ctrl+a to add one"))
	}
	for i, f := range e.expenses {
		b.WriteString(fmt.Sprintf("\n%s\n%s", mutedStyle.Render(fmt.Sprintf("  #%d", i+1)), f.view()))
	}
	return b.String()
}

// tocEditor is the table of contents: a checklist of optional sections.
type tocEditor struct {
	sel    taxform.Selection
	rows   []taxform.Section
	cursor int
	warn   bool
}

func newTOCEditor(sel taxform.Selection) *tocEditor {
	return &tocEditor{sel: sel.Clone(), rows: taxform.AllSections()}
}

func (e *tocEditor) Focus() tea.Cmd { return nil }

func (e *tocEditor) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		e.cursor = max(0, e.cursor-1)
	case key.Matches(msg, keys.Down):
		e.cursor = min(len(e.rows)-1, e.cursor+1)
	case key.Matches(msg, keys.Toggle):
		sel, err := e.sel.Toggle(e.rows[e.cursor].ID)
		if err != nil {
			return statusCmd(err)
		}
		e.sel = sel
		e.warn = false
	}
	return nil
}

func (e *tocEditor) Value() (any, error) {
	if e.sel.Len() == 0 {
		e.warn = true
		return nil, errNoCategory
	}
	return e.sel.Clone(), nil
}

func (e *tocEditor) View(int) string {
	var b strings.Builder
	b.WriteString("Tick every category that applies to you.\n")
	var group taxform.Group = -1
	for i, sec := range e.rows {
		if sec.Group != group {
			group = sec.Group
			b.WriteString("\n" + groupStyle.Render(group.String()) + "\n")
		}
		cursor := "  "
		if i == e.cursor {
			cursor = "› "
		}
		mark := "[ ]"
		if e.sel.Has(sec.ID) {
			mark = checkedStyle.Render("[x]")
		}
		b.WriteString(cursor + mark + " " + sec.Label + "\n")
	}
	if e.warn {
		b.WriteString("\n" + errorStyle.Render(noCategoryMessage))
	}
	return b.String()
}

// placeholderEditor stands in for sections that collect nothing yet.
type placeholderEditor struct {
	title string
}

func (placeholderEditor) Focus() tea.Cmd            { return nil }
func (placeholderEditor) Update(tea.KeyMsg) tea.Cmd { return nil }
func (placeholderEditor) Value() (any, error)       { return nil, nil }

func (e placeholderEditor) View(int) string {
	return mutedStyle.Render(e.title + " is not collected yet. Press ctrl+n to continue.")
}
