package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/taxsheet/internal/taxform"
	"github.com/jask/taxsheet/internal/wizard"
)

func snapshot(t *testing.T, ids ...taxform.SectionID) taxform.Snapshot {
	t.Helper()
	sel, err := taxform.NewSelection(ids...)
	require.NoError(t, err)
	state := taxform.NewFormState()
	state.PersonalInfo = taxform.PersonalInfo{Title: "dr", FirstName: "Ada", LastName: "Lovelace"}
	state.Income.BankInterest = []taxform.BankInterestEntry{
		{BankName: "ANZ", InterestAmount: 1234.56, IsJointAccount: true},
		{BankName: "NAB", InterestAmount: 10},
	}
	state.Income.RentalProperty = []taxform.RentalPropertyEntry{{Address: "123 Main St", YearBuilt: 1975, PercentageOwned: 50}}
	state.Deductions.MotorVehicle = taxform.MotorVehicleClaim{Make: "Mazda", KMTravelled: 5000}
	state.Deductions.WorkRelatedTravel = taxform.WorkRelatedTravelClaim{
		TaxiExpense:   20,
		OtherExpenses: []taxform.OtherExpense{{Name: "Train", Amount: 7.5}},
	}
	return taxform.NewSnapshot(state, sel, time.Date(2022, 7, 1, 9, 0, 0, 0, time.UTC))
}

func item(t *testing.T, items []Item, label string) string {
	t.Helper()
	for _, it := range items {
		if it.Label == label {
			return it.Value
		}
	}
	t.Fatalf("no item %q", label)
	return ""
}

func TestBuildOmitsUnselectedSections(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.BankInterest, taxform.MotorVehicle), DefaultOptions())
	require.NoError(t, err)

	titles := make([]string, 0, len(rep.Cards))
	for _, c := range rep.Cards {
		titles = append(titles, c.Title)
	}
	require.Equal(t, []string{"Personal Information", "Bank Interest", "Motor Vehicle Deductions", "Totals"}, titles)

	_, ok := rep.Card(taxform.RentalProperty)
	require.False(t, ok)
	require.Equal(t, "Ada Lovelace", rep.Taxpayer)
}

func TestBuildJumpIndexes(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.Dividends, taxform.BankInterest, taxform.WorkRelatedTravel), DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, 0, rep.Cards[0].Step)
	c, ok := rep.Card(taxform.BankInterest)
	require.True(t, ok)
	require.Equal(t, 3, c.Step)
	c, ok = rep.Card(taxform.WorkRelatedTravel)
	require.True(t, ok)
	require.Equal(t, 4, c.Step)

	last := rep.Cards[len(rep.Cards)-1]
	require.Equal(t, wizard.NotPresent, last.Step)
	require.False(t, last.Editable())
}

func TestBuildFormatsValues(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.BankInterest, taxform.RentalProperty), DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, "Dr.", item(t, rep.Cards[0].Items, "Title"))
	require.Equal(t, "-", item(t, rep.Cards[0].Items, "Email"))

	bank, _ := rep.Card(taxform.BankInterest)
	require.Len(t, bank.Entries, 2)
	require.Equal(t, "Bank Interest #2", bank.Entries[1].Title)
	require.Equal(t, "$1,234.56", item(t, bank.Entries[0].Items, "Interest Amount"))
	require.Equal(t, "Yes", item(t, bank.Entries[0].Items, "Joint Account?"))
	require.Equal(t, "No", bank.Table.Rows[1][4])
	require.Len(t, bank.Table.Headers, 5)

	rental, _ := rep.Card(taxform.RentalProperty)
	require.Equal(t, "Rental Income", rental.Title)
	require.Equal(t, "1975", item(t, rental.Entries[0].Items, "Year Built"))
	require.Equal(t, "50%", item(t, rental.Entries[0].Items, "Percentage Owned"))
}

func TestMotorVehicleShowsMethodFields(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.MotorVehicle), DefaultOptions())
	require.NoError(t, err)
	mv, ok := rep.Card(taxform.MotorVehicle)
	require.True(t, ok)
	require.Equal(t, "5,000 km", item(t, mv.Items, "KM Travelled"))
	for _, it := range mv.Items {
		require.NotEqual(t, "Fuel", it.Label)
	}
}

func TestTravelCardListsOtherExpenses(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.WorkRelatedTravel), DefaultOptions())
	require.NoError(t, err)
	travel, ok := rep.Card(taxform.WorkRelatedTravel)
	require.True(t, ok)
	require.Equal(t, "$20.00", item(t, travel.Items, "Taxi"))
	require.Equal(t, [][]string{{"Train", "$7.50"}}, travel.Table.Rows)

	totals := rep.Cards[len(rep.Cards)-1]
	require.Equal(t, "$27.50", item(t, totals.Items, "Total Deductions"))
}

func TestPlaceholderSectionGetsNoteCard(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.SalaryWages), DefaultOptions())
	require.NoError(t, err)
	c, ok := rep.Card(taxform.SalaryWages)
	require.True(t, ok)
	require.NotEmpty(t, c.Note)
	require.Equal(t, 2, c.Step)
}

func TestNoSelectionHasNoTotals(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, rep.Cards, 1)
}

func TestCurrencySymbolOption(t *testing.T) {
	t.Parallel()

	rep, err := Build(snapshot(t, taxform.BankInterest), Options{CurrencySymbol: "A$", Locale: "not a locale"})
	require.NoError(t, err)
	bank, _ := rep.Card(taxform.BankInterest)
	require.Equal(t, "A$10.00", item(t, bank.Entries[1].Items, "Interest Amount"))
}
