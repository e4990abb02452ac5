package taxform

// Totals aggregates the amounts of the selected sections.
type Totals struct {
	Interest             float64
	FrankedDividends     float64
	UnfrankedDividends   float64
	ImputationCredits    float64
	RentalPropertyCost   float64
	MotorVehicleExpenses float64
	TravelExpenses       float64
}

// Totals only counts sections present in sel.
func (s FormState) Totals(sel Selection) Totals {
	var t Totals
	if sel.Has(BankInterest) {
		for _, e := range s.Income.BankInterest {
			t.Interest += e.InterestAmount
		}
	}
	if sel.Has(Dividends) {
		for _, e := range s.Income.Dividends {
			t.FrankedDividends += e.FrankedAmount
			t.UnfrankedDividends += e.UnfrankedAmount
			t.ImputationCredits += e.ImputationCredit
		}
	}
	if sel.Has(RentalProperty) {
		for _, e := range s.Income.RentalProperty {
			t.RentalPropertyCost += e.Cost
		}
	}
	if sel.Has(MotorVehicle) && s.Deductions.MotorVehicle.WithLogbook {
		t.MotorVehicleExpenses = s.Deductions.MotorVehicle.LogbookExpenses()
	}
	if sel.Has(WorkRelatedTravel) {
		t.TravelExpenses = s.Deductions.WorkRelatedTravel.Total()
	}
	return t
}

// IncomeTotal is interest plus franked and unfranked dividends.
func (t Totals) IncomeTotal() float64 {
	return t.Interest + t.FrankedDividends + t.UnfrankedDividends
}

func (t Totals) DeductionTotal() float64 {
	return t.MotorVehicleExpenses + t.TravelExpenses
}
