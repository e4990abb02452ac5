package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/taxsheet/internal/logging"
	"github.com/jask/taxsheet/internal/report"
	"github.com/jask/taxsheet/internal/service"
	"github.com/jask/taxsheet/internal/taxform"
	"github.com/jask/taxsheet/internal/wizard"
)

type fakeExporter struct {
	snaps []taxform.Snapshot
	err   error
}

func (f *fakeExporter) Export(_ context.Context, snap taxform.Snapshot) (service.ExportResult, error) {
	f.snaps = append(f.snaps, snap)
	return service.ExportResult{ID: "id-1", Path: "/tmp/out.pdf", Archived: f.err == nil}, f.err
}

var namedKeys = map[string]tea.KeyType{
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+p":    tea.KeyCtrlP,
	"ctrl+a":    tea.KeyCtrlA,
	"ctrl+x":    tea.KeyCtrlX,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+g":    tea.KeyCtrlG,
	"ctrl+e":    tea.KeyCtrlE,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
}

func keyMsg(k string) tea.KeyMsg {
	if k == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if t, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestApp(t *testing.T) (*App, *wizard.Wizard, *fakeExporter) {
	t.Helper()
	wiz := wizard.New(wizard.NewStore())
	t.Cleanup(wiz.Close)
	exp := &fakeExporter{}
	a := New(context.Background(), wiz, Options{
		Report:   report.DefaultOptions(),
		Exporter: exp,
		Logger:   logging.Discard(),
	})
	return a, wiz, exp
}

// press sends keys without running the returned commands.
func press(a *App, ks ...string) {
	for _, k := range ks {
		a.Update(keyMsg(k))
	}
}

// pressRun sends one key and feeds the message produced by its command back.
func pressRun(t *testing.T, a *App, k string) {
	t.Helper()
	_, cmd := a.Update(keyMsg(k))
	require.NotNil(t, cmd)
	a.Update(cmd())
}

func repeat(k string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// tick moves the table of contents cursor to row and toggles it.
func tick(a *App, row int) {
	press(a, repeat("down", row)...)
	press(a, "space")
	press(a, repeat("up", row)...)
}

const (
	rowDividends         = 4
	rowRentalProperty    = 6
	rowWorkRelatedTravel = 8
)

func TestTableOfContentsRequiresATick(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	require.Equal(t, 1, wiz.Cursor())
	require.Equal(t, wizard.KindTableOfContents, wiz.Current().Kind)

	press(a, "ctrl+n")
	require.Equal(t, 1, wiz.Cursor())
	require.True(t, a.statusErr)
	require.Equal(t, noCategoryMessage, a.status)
	require.Contains(t, a.View(), noCategoryMessage)
}

func TestDividendsFlowEndsOnSummary(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowDividends)
	press(a, "ctrl+n")
	require.Equal(t, 2, wiz.Cursor())
	require.Equal(t, taxform.Dividends, wiz.Current().Section)

	press(a, "BHP", "ctrl+n")
	require.Equal(t, screenSummary, a.screen)
	require.Equal(t, "BHP", wiz.Store().State().Income.Dividends[0].CompanyName)

	// Personal Information, Dividends, Totals.
	require.Len(t, a.summary.rep.Cards, 3)
	press(a, "down", "enter")
	require.Equal(t, screenWizard, a.screen)
	require.Equal(t, 2, wiz.Cursor())

	press(a, "ctrl+s", "esc")
	require.Equal(t, screenWizard, a.screen)
}

func TestUnreadableInputBlocksBothDirections(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowDividends)
	press(a, "ctrl+n")

	press(a, "tab", "tab", "31/12/2021")
	press(a, "ctrl+p")
	require.Equal(t, 2, wiz.Cursor())
	require.True(t, a.statusErr)
	press(a, "ctrl+n")
	require.Equal(t, 2, wiz.Cursor())
	require.Contains(t, a.View(), "use YYYY-MM-DD")
}

func TestSchemaErrorsAreShownPerField(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, repeat("tab", 6)...)
	press(a, "nope", "ctrl+n")
	require.Equal(t, 0, wiz.Cursor())
	require.Equal(t, "1 field(s) need attention", a.status)
	require.Contains(t, a.View(), "invalid format")
	require.Empty(t, wiz.Store().State().PersonalInfo.Email)
}

func TestRetreatFromTableOfContentsKeepsSelection(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowDividends)
	press(a, "ctrl+p")
	require.Equal(t, 0, wiz.Cursor())
	require.True(t, wiz.Store().Selection().Has(taxform.Dividends))
	require.Equal(t, 3, wiz.StepCount())
}

func TestEntryListAddRemove(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowDividends)
	press(a, "ctrl+n")

	pressRun(t, a, "ctrl+x")
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "first entry")

	press(a, "ctrl+a")
	require.Contains(t, a.View(), "Entry 2 of 2")
	press(a, "CBA", "[")
	require.Contains(t, a.View(), "Entry 1 of 2")
	press(a, "BHP", "ctrl+s")
	require.Len(t, wiz.Store().State().Income.Dividends, 1, "summary does not commit")

	press(a, "esc", "ctrl+n")
	require.Equal(t, screenSummary, a.screen)
	divs := wiz.Store().State().Income.Dividends
	require.Len(t, divs, 2)
	require.Equal(t, "BHP", divs[0].CompanyName)
	require.Equal(t, "CBA", divs[1].CompanyName)
}

func TestTravelOtherExpenses(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowWorkRelatedTravel)
	press(a, "ctrl+n")
	require.Equal(t, wizard.KindWorkRelatedTravel, wiz.Current().Kind)

	press(a, "ctrl+a", "ctrl+n")
	require.Equal(t, "1 field(s) need attention", a.status)
	require.Contains(t, a.View(), "must not be empty")

	press(a, "Train", "tab", "7.50", "ctrl+n")
	require.Equal(t, screenSummary, a.screen)
	require.Equal(t,
		[]taxform.OtherExpense{{Name: "Train", Amount: 7.5}},
		wiz.Store().State().Deductions.WorkRelatedTravel.OtherExpenses)
}

func TestTravelEntryKeysSwitchExpenses(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowWorkRelatedTravel)
	press(a, "ctrl+n")

	press(a, "ctrl+a", "Train", "ctrl+a", "Bus")
	press(a, "[", "s")
	press(a, "]", "es")
	press(a, "]", "]")
	press(a, "ctrl+n")
	require.Equal(t, screenSummary, a.screen)
	require.Equal(t,
		[]taxform.OtherExpense{{Name: "Trains"}, {Name: "Buses"}},
		wiz.Store().State().Deductions.WorkRelatedTravel.OtherExpenses)
}

func TestDeselectingReportsDiscardedSections(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowDividends)
	tick(a, rowRentalProperty)
	press(a, "ctrl+n")
	require.Equal(t, taxform.Dividends, wiz.Current().Section)

	press(a, "BHP", "ctrl+p")
	require.Equal(t, wizard.KindTableOfContents, wiz.Current().Kind)
	require.Equal(t, "Saved Dividends", a.status)

	tick(a, rowRentalProperty)
	press(a, "ctrl+n")
	require.False(t, a.statusErr)
	require.Contains(t, a.status, "Discarded Rental Property data")
	require.Equal(t, []taxform.SectionID{taxform.Dividends}, wiz.Store().Selection().Income)
	require.Equal(t, "BHP", wiz.Store().State().Income.Dividends[0].CompanyName)

	press(a, "ctrl+p", "ctrl+n")
	require.NotContains(t, a.status, "Discarded")
}

func TestPickerJumpsToStep(t *testing.T) {
	t.Parallel()

	a, wiz, _ := newTestApp(t)
	press(a, "ctrl+n")
	tick(a, rowDividends)
	press(a, "ctrl+n")
	require.Equal(t, 2, wiz.Cursor())

	press(a, "ctrl+g")
	require.Equal(t, screenPicker, a.screen)
	press(a, "p", "e", "r", "s", "enter")
	require.Equal(t, screenWizard, a.screen)
	require.Equal(t, 0, wiz.Cursor())

	press(a, "ctrl+g", "esc")
	require.Equal(t, screenWizard, a.screen)
	require.Equal(t, 0, wiz.Cursor())
}

func TestExport(t *testing.T) {
	t.Parallel()

	a, _, exp := newTestApp(t)
	press(a, "Ada")
	pressRun(t, a, "ctrl+e")
	require.Len(t, exp.snaps, 1)
	require.Empty(t, exp.snaps[0].State.PersonalInfo.Title, "export uses committed state")
	require.False(t, a.statusErr)
	require.Equal(t, "Saved /tmp/out.pdf", a.status)
	require.False(t, a.exporting)
}

func TestExportArchiveFailureIsReported(t *testing.T) {
	t.Parallel()

	a, _, exp := newTestApp(t)
	exp.err = errors.New("disk full")
	pressRun(t, a, "ctrl+e")
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "/tmp/out.pdf")
	require.Contains(t, a.status, "disk full")
}

func TestQuit(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
