package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/taxsheet/internal/taxform"
)

func TestWizardFollowsSelection(t *testing.T) {
	t.Parallel()

	w := New(NewStore())
	defer w.Close()
	require.Equal(t, 2, w.StepCount())
	require.Equal(t, KindPersonalInfo, w.Current().Kind)

	require.NoError(t, w.Submit(taxform.PathPersonalInfo, taxform.PersonalInfo{LastName: "Hopper"}))
	require.Equal(t, KindTableOfContents, w.Current().Kind)

	sel, err := taxform.NewSelection(taxform.BankInterest, taxform.WorkRelatedTravel)
	require.NoError(t, err)
	require.NoError(t, w.SubmitSelection(sel))
	require.Equal(t, 4, w.StepCount())
	require.Equal(t, taxform.BankInterest, w.Current().Section)

	require.NoError(t, w.Submit(taxform.PathBankInterest, []taxform.BankInterestEntry{{BankName: "ING"}}))
	require.Equal(t, KindWorkRelatedTravel, w.Current().Kind)
	require.True(t, w.IsLast())

	require.NoError(t, w.Submit(taxform.PathWorkRelatedTravel, taxform.DefaultWorkRelatedTravel()))
	require.Equal(t, 3, w.Cursor(), "submit on the last step stays put")
}

func TestWizardShrinkingSelectionClampsCursor(t *testing.T) {
	t.Parallel()

	store := NewStore()
	w := New(store)
	defer w.Close()

	sel, err := taxform.NewSelection(taxform.Dividends, taxform.BankInterest, taxform.RentalProperty)
	require.NoError(t, err)
	require.NoError(t, store.SetSelection(sel))
	w.JumpTo(4)
	require.Equal(t, taxform.RentalProperty, w.Current().Section)

	require.NoError(t, store.SetSelection(taxform.Selection{}))
	require.Equal(t, 1, w.Cursor())
	require.Equal(t, KindTableOfContents, w.Current().Kind)
}

func TestJumpToSection(t *testing.T) {
	t.Parallel()

	w := New(NewStore())
	defer w.Close()
	sel, err := taxform.NewSelection(taxform.Allowance, taxform.MotorVehicle)
	require.NoError(t, err)
	require.NoError(t, w.Store().SetSelection(sel))

	require.True(t, w.JumpToSection(taxform.MotorVehicle))
	require.Equal(t, 3, w.Cursor())
	require.False(t, w.JumpToSection(taxform.Dividends))
	require.Equal(t, 3, w.Cursor())
}

func TestClosedWizardStopsFollowing(t *testing.T) {
	t.Parallel()

	store := NewStore()
	w := New(store)
	w.Close()
	w.Close()

	sel, err := taxform.NewSelection(taxform.Dividends)
	require.NoError(t, err)
	require.NoError(t, store.SetSelection(sel))
	require.Equal(t, 2, w.StepCount())
}
