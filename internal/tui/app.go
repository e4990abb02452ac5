// Package tui hosts the wizard as a bubbletea program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jask/taxsheet/internal/report"
	"github.com/jask/taxsheet/internal/service"
	"github.com/jask/taxsheet/internal/taxform"
	"github.com/jask/taxsheet/internal/wizard"
)

// Exporter writes a snapshot somewhere durable.
type Exporter interface {
	Export(ctx context.Context, snap taxform.Snapshot) (service.ExportResult, error)
}

type Options struct {
	Report   report.Options
	Exporter Exporter
	Logger   *log.Logger
}

type screen int

const (
	screenWizard screen = iota
	screenSummary
	screenPicker
)

// App is the root model.
type App struct {
	ctx    context.Context
	wiz    *wizard.Wizard
	opts   Options
	log    *log.Logger
	help   help.Model
	screen screen

	editor  stepEditor
	summary *summaryView
	picker  *picker

	// sections whose data the last selection change reset
	discarded []taxform.SectionID

	status    string
	statusErr bool
	exporting bool
	width     int
	height    int
}

type errMsg struct{ error }

type exportedMsg struct {
	res service.ExportResult
	err error
}

func New(ctx context.Context, wiz *wizard.Wizard, opts Options) *App {
	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	a := &App{
		ctx:    ctx,
		wiz:    wiz,
		opts:   opts,
		log:    lg,
		help:   newHelp(),
		width:  100,
		height: 30,
	}
	wiz.Store().Subscribe(a.onStoreEvent)
	a.loadEditor()
	return a
}

func (a *App) onStoreEvent(ev wizard.Event) {
	if ev.Kind == wizard.EventSelectionChanged {
		a.discarded = ev.Discarded
	}
}

func (a *App) Init() tea.Cmd {
	if a.editor == nil {
		return nil
	}
	return a.editor.Focus()
}

// loadEditor rebuilds the editor for the current step from committed state.
func (a *App) loadEditor() tea.Cmd {
	step := a.wiz.Current()
	ed, err := newEditor(step, a.wiz.Store())
	if err != nil {
		a.log.Error("build editor", "step", step.Title, "err", err)
		a.setError(err)
		ed = placeholderEditor{title: step.Title}
	}
	a.editor = ed
	return ed.Focus()
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = statusText(err)
	a.statusErr = true
}

func statusText(err error) string {
	var ve *taxform.ValidationError
	switch {
	case errors.Is(err, errNoCategory):
		return noCategoryMessage
	case errors.As(err, &ve):
		return fmt.Sprintf("%d field(s) need attention", len(ve.Fields))
	case errors.Is(err, errFieldInput):
		return "Some fields could not be read"
	}
	return err.Error()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case errMsg:
		a.setError(m.error)
		return a, nil
	case exportedMsg:
		return a, a.handleExported(m)
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keys.Quit):
			return a, tea.Quit
		case key.Matches(m, keys.Export):
			return a, a.export()
		}
		switch a.screen {
		case screenPicker:
			return a, a.handlePickerKey(m)
		case screenSummary:
			return a, a.handleSummaryKey(m)
		default:
			return a, a.handleWizardKey(m)
		}
	}
	return a, nil
}

func (a *App) handleWizardKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, keys.SubmitNext):
		return a.submit(true)
	case key.Matches(m, keys.SubmitPrev):
		return a.submit(false)
	case key.Matches(m, keys.Summary):
		a.openSummary()
		return nil
	case key.Matches(m, keys.Picker):
		a.openPicker()
		return nil
	}
	return a.editor.Update(m)
}

// submit commits the current step and moves one step in either direction.
// Invalid input blocks both directions. Submitting the last step opens the
// summary.
func (a *App) submit(forward bool) tea.Cmd {
	step := a.wiz.Current()
	v, err := a.editor.Value()
	if err != nil {
		a.log.Debug("step rejected", "step", step.Title, "err", err)
		a.setError(err)
		return nil
	}
	before := a.wiz.Cursor()
	store := a.wiz.Store()

	switch path, hasPath := step.Path(); {
	case step.Kind == wizard.KindTableOfContents:
		sel := v.(taxform.Selection)
		a.discarded = nil
		if !sel.Equal(store.Selection()) {
			a.log.Info("selection changed", "income", len(sel.Income), "deductions", len(sel.Deductions))
		}
		if forward {
			err = a.wiz.SubmitSelection(sel)
		} else if err = store.SetSelection(sel); err == nil {
			a.wiz.Retreat()
		}
	case hasPath && forward:
		err = a.wiz.Submit(path, v)
	case hasPath:
		if err = store.Commit(path, v); err == nil {
			a.wiz.Retreat()
		}
	case forward:
		a.wiz.Advance()
	default:
		a.wiz.Retreat()
	}
	if err != nil {
		a.log.Error("commit step", "step", step.Title, "err", err)
		a.setError(err)
		return nil
	}
	a.log.Debug("step submitted", "step", step.Title, "from", before, "to", a.wiz.Cursor())

	if forward && a.wiz.Cursor() == before {
		a.setStatus("All steps complete. Review the summary and press ctrl+e to export.")
		a.openSummary()
		return a.loadEditor()
	}
	a.setStatus(savedStatus(step.Title, a.discarded))
	a.discarded = nil
	return a.loadEditor()
}

func savedStatus(title string, discarded []taxform.SectionID) string {
	if len(discarded) == 0 {
		return fmt.Sprintf("Saved %s", title)
	}
	labels := make([]string, len(discarded))
	for i, id := range discarded {
		labels[i] = id.Label()
	}
	return fmt.Sprintf("Saved %s. Discarded %s data", title, strings.Join(labels, ", "))
}

func (a *App) openSummary() {
	rep, err := report.Build(a.wiz.Store().Snapshot(), a.opts.Report)
	if err != nil {
		a.setError(err)
		return
	}
	a.summary = newSummaryView(rep)
	a.screen = screenSummary
}

func (a *App) handleSummaryKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, keys.Up):
		a.summary.up()
	case key.Matches(m, keys.Down):
		a.summary.down()
	case key.Matches(m, keys.Back):
		a.screen = screenWizard
	case key.Matches(m, keys.Select):
		card, ok := a.summary.selected()
		if !ok || !card.Editable() {
			return nil
		}
		a.wiz.JumpTo(card.Step)
		a.screen = screenWizard
		a.setStatus("Editing " + card.Title)
		return a.loadEditor()
	}
	return nil
}

func (a *App) openPicker() {
	steps := a.wiz.Steps()
	items := make([]pickerItem, 0, len(steps))
	for i, st := range steps {
		section := "Setup"
		if sec, ok := taxform.Lookup(st.Section); ok {
			section = sec.Group.String()
		}
		items = append(items, pickerItem{
			Index:   i,
			Label:   st.Title,
			Section: section,
			Search:  st.Title + " " + section,
		})
	}
	a.picker = newPicker("Go to step", items)
	a.screen = screenPicker
}

func (a *App) handlePickerKey(m tea.KeyMsg) tea.Cmd {
	res := a.picker.HandleKey(m.String())
	switch res.Action {
	case pickerActionCancelled:
		a.screen = screenWizard
	case pickerActionSelected:
		a.wiz.JumpTo(res.Item.Index)
		a.screen = screenWizard
		return a.loadEditor()
	}
	return nil
}

func (a *App) export() tea.Cmd {
	if a.opts.Exporter == nil {
		a.setError(errors.New("export is not configured"))
		return nil
	}
	if a.exporting {
		return nil
	}
	a.exporting = true
	a.setStatus("Exporting PDF...")
	snap := a.wiz.Store().Snapshot()
	ctx, exp := a.ctx, a.opts.Exporter
	return func() tea.Msg {
		res, err := exp.Export(ctx, snap)
		return exportedMsg{res: res, err: err}
	}
}

func (a *App) handleExported(m exportedMsg) tea.Cmd {
	a.exporting = false
	switch {
	case m.err != nil && m.res.Path == "":
		a.log.Error("export failed", "err", m.err)
		a.setError(fmt.Errorf("export failed: %w", m.err))
	case m.err != nil:
		a.log.Warn("export not archived", "path", m.res.Path, "err", m.err)
		a.setError(fmt.Errorf("saved %s but archiving failed: %w", m.res.Path, m.err))
	default:
		a.log.Info("export complete", "id", m.res.ID, "path", m.res.Path, "archived", m.res.Archived)
		a.setStatus("Saved " + m.res.Path)
	}
	return nil
}

func (a *App) View() string {
	bodyHeight := max(3, a.height-4)
	var body string
	var bindings []key.Binding
	switch a.screen {
	case screenSummary:
		body = a.summary.view(a.width, bodyHeight)
		bindings = keys.summaryHelp()
	case screenPicker:
		body = a.picker.view(bodyHeight)
		bindings = keys.pickerHelp()
	default:
		step := a.wiz.Current()
		body = stepTitleStyle.Render(step.Title) + "\n\n" + a.editor.View(a.width)
		bindings = keys.wizardHelp(step.Kind)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.header(),
		appStyle.Render(clipHeight(body, bodyHeight)),
		renderStatusBar(a.width, a.status, a.statusErr),
		renderFooter(a.help, a.width, bindings),
	)
}

func (a *App) header() string {
	title := headerAppStyle.Render(" taxsheet ")
	var where string
	switch a.screen {
	case screenSummary:
		where = "Summary"
	case screenPicker:
		where = "Go to step"
	default:
		where = fmt.Sprintf("Step %d of %d", a.wiz.Cursor()+1, a.wiz.StepCount())
	}
	return renderBar(headerBarStyle, a.width, title+headerBarStyle.Render(" "+where), colorMantle)
}
