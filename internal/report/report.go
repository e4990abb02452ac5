// Package report turns a form snapshot into presentation cards shared by the
// summary screen and the PDF export.
package report

import (
	"fmt"
	"time"

	"github.com/jask/taxsheet/internal/taxform"
	"github.com/jask/taxsheet/internal/wizard"
)

type Item struct {
	Label string
	Value string
}

// Entry is one element of a list section.
type Entry struct {
	Title string
	Items []Item
}

type Table struct {
	Headers []string
	Rows    [][]string
}

// Card is one summary block. Step is the wizard index that edits it, or
// wizard.NotPresent for derived cards such as totals.
type Card struct {
	Title   string
	Section taxform.SectionID
	Step    int
	Items   []Item
	Entries []Entry
	Table   *Table
	Note    string
}

// Editable reports whether the card has a step to jump to.
func (c Card) Editable() bool { return c.Step != wizard.NotPresent }

type Report struct {
	Taxpayer string
	TakenAt  time.Time
	Cards    []Card
}

var cardTitles = map[taxform.SectionID]string{
	taxform.BankInterest:      "Bank Interest",
	taxform.Dividends:         "Dividends",
	taxform.RentalProperty:    "Rental Income",
	taxform.MotorVehicle:      "Motor Vehicle Deductions",
	taxform.WorkRelatedTravel: "Work-Related Travel Deductions",
}

var entryTitles = map[taxform.SectionID]string{
	taxform.BankInterest:   "Bank Interest",
	taxform.Dividends:      "Dividend",
	taxform.RentalProperty: "Rental Property",
}

// Build lays out personal information, one card per selected section in
// step order, then totals. Unselected sections never appear.
func Build(snap taxform.Snapshot, opts Options) (Report, error) {
	f := newFormatter(opts)
	rep := Report{Taxpayer: snap.TaxpayerName(), TakenAt: snap.TakenAt}

	personal, err := recordCard(f, "Personal Information", taxform.PathPersonalInfo, snap.State.PersonalInfo)
	if err != nil {
		return Report{}, err
	}
	personal.Step = 0
	rep.Cards = append(rep.Cards, personal)

	for _, id := range snap.Selection.IDs() {
		card, err := sectionCard(f, snap, id)
		if err != nil {
			return Report{}, err
		}
		rep.Cards = append(rep.Cards, card)
	}

	if snap.Selection.Len() > 0 {
		rep.Cards = append(rep.Cards, totalsCard(f, snap.State.Totals(snap.Selection)))
	}
	return rep, nil
}

func sectionCard(f formatter, snap taxform.Snapshot, id taxform.SectionID) (Card, error) {
	step := wizard.SectionIndex(snap.Selection, id)
	path, ok := id.Path()
	if !ok {
		return Card{Title: id.Label(), Section: id, Step: step, Note: "No details are collected for this section yet."}, nil
	}
	value, err := snap.State.Get(path)
	if err != nil {
		return Card{}, err
	}
	title := cardTitles[id]

	var card Card
	switch path {
	case taxform.PathWorkRelatedTravel:
		card, err = travelCard(f, title, snap.State.Deductions.WorkRelatedTravel)
	default:
		if path.IsList() {
			card, err = listCard(f, title, entryTitles[id], path, value)
		} else {
			card, err = recordCard(f, title, path, value)
		}
	}
	if err != nil {
		return Card{}, err
	}
	card.Section = id
	card.Step = step
	return card, nil
}

func recordCard(f formatter, title string, path taxform.Path, value any) (Card, error) {
	rec, err := taxform.ToRecord(value)
	if err != nil {
		return Card{}, err
	}
	return Card{Title: title, Items: items(f, taxform.Fields(path), rec)}, nil
}

func listCard(f formatter, title, entryTitle string, path taxform.Path, value any) (Card, error) {
	recs, err := taxform.ToRecords(value)
	if err != nil {
		return Card{}, err
	}
	fields := taxform.Fields(path)
	card := Card{Title: title, Table: &Table{Headers: headers(fields)}}
	for i, rec := range recs {
		card.Entries = append(card.Entries, Entry{
			Title: fmt.Sprintf("%s #%d", entryTitle, i+1),
			Items: items(f, fields, rec),
		})
		card.Table.Rows = append(card.Table.Rows, row(f, fields, rec))
	}
	return card, nil
}

func travelCard(f formatter, title string, claim taxform.WorkRelatedTravelClaim) (Card, error) {
	card, err := recordCard(f, title, taxform.PathWorkRelatedTravel, claim)
	if err != nil {
		return Card{}, err
	}
	recs, err := taxform.ToRecords(claim.OtherExpenses)
	if err != nil {
		return Card{}, err
	}
	card.Table = &Table{Headers: headers(taxform.OtherExpenseFields)}
	for i, rec := range recs {
		card.Entries = append(card.Entries, Entry{
			Title: fmt.Sprintf("Other Expense #%d", i+1),
			Items: items(f, taxform.OtherExpenseFields, rec),
		})
		card.Table.Rows = append(card.Table.Rows, row(f, taxform.OtherExpenseFields, rec))
	}
	return card, nil
}

func totalsCard(f formatter, t taxform.Totals) Card {
	return Card{
		Title: "Totals",
		Step:  wizard.NotPresent,
		Items: []Item{
			{Label: "Bank Interest", Value: f.money(t.Interest)},
			{Label: "Franked Dividends", Value: f.money(t.FrankedDividends)},
			{Label: "Unfranked Dividends", Value: f.money(t.UnfrankedDividends)},
			{Label: "Imputation Credits", Value: f.money(t.ImputationCredits)},
			{Label: "Rental Property Cost", Value: f.money(t.RentalPropertyCost)},
			{Label: "Motor Vehicle Expenses", Value: f.money(t.MotorVehicleExpenses)},
			{Label: "Work-Related Travel Expenses", Value: f.money(t.TravelExpenses)},
			{Label: "Total Income", Value: f.money(t.IncomeTotal())},
			{Label: "Total Deductions", Value: f.money(t.DeductionTotal())},
		},
	}
}

func items(f formatter, fields []taxform.Field, rec taxform.Record) []Item {
	out := make([]Item, 0, len(fields))
	for _, field := range fields {
		if !field.Visible(rec) {
			continue
		}
		out = append(out, Item{Label: field.Label, Value: f.value(field, rec.Get(field.Key))})
	}
	return out
}

func headers(fields []taxform.Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Label)
	}
	return out
}

func row(f formatter, fields []taxform.Field, rec taxform.Record) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, f.value(field, rec.Get(field.Key)))
	}
	return out
}

// Card returns the card for a section, if present.
func (r Report) Card(id taxform.SectionID) (Card, bool) {
	for _, c := range r.Cards {
		if c.Section == id && c.Section != "" {
			return c, true
		}
	}
	return Card{}, false
}
