package taxform

import "slices"

// SectionID names an optional income or deduction section.
type SectionID string

const (
	SalaryWages       SectionID = "salaryWages"
	Allowance         SectionID = "allowance"
	TrustDistribution SectionID = "trustDistribution"
	CapitalGain       SectionID = "capitalGain"
	Dividends         SectionID = "dividends"
	BankInterest      SectionID = "bankInterest"
	RentalProperty    SectionID = "rentalProperty"

	MotorVehicle      SectionID = "motorVehicle"
	WorkRelatedTravel SectionID = "workRelatedTravel"
	InterestDeduction SectionID = "interestDeduction"
	DividendDeduction SectionID = "dividendDeduction"
	OtherDeductions   SectionID = "otherDeductions"
)

// Group is the table-of-contents column a section belongs to.
type Group int

const (
	GroupIncome Group = iota
	GroupDeductions
)

func (g Group) String() string {
	switch g {
	case GroupIncome:
		return "Income"
	case GroupDeductions:
		return "Deductions"
	default:
		return "Unknown"
	}
}

type Section struct {
	ID    SectionID
	Label string
	Group Group
}

// Enumeration order drives the table of contents and the derived step order.
// Dividends come before Bank Interest so a return with both asks about
// dividends first.
var incomeSections = []Section{
	{ID: SalaryWages, Label: "Salary and Wages", Group: GroupIncome},
	{ID: Allowance, Label: "Allowance", Group: GroupIncome},
	{ID: TrustDistribution, Label: "Trust Distribution", Group: GroupIncome},
	{ID: CapitalGain, Label: "Capital Gain", Group: GroupIncome},
	{ID: Dividends, Label: "Dividends", Group: GroupIncome},
	{ID: BankInterest, Label: "Bank Interest", Group: GroupIncome},
	{ID: RentalProperty, Label: "Rental Property", Group: GroupIncome},
}

var deductionSections = []Section{
	{ID: MotorVehicle, Label: "Motor Vehicle", Group: GroupDeductions},
	{ID: WorkRelatedTravel, Label: "Work Related Travel", Group: GroupDeductions},
	{ID: InterestDeduction, Label: "Interest Deduction", Group: GroupDeductions},
	{ID: DividendDeduction, Label: "Dividend Deduction", Group: GroupDeductions},
	{ID: OtherDeductions, Label: "Other Deductions", Group: GroupDeductions},
}

func IncomeSections() []Section    { return slices.Clone(incomeSections) }
func DeductionSections() []Section { return slices.Clone(deductionSections) }

// AllSections returns income sections followed by deduction sections.
func AllSections() []Section {
	return append(IncomeSections(), deductionSections...)
}

// SectionsOf returns the enumeration for one group.
func SectionsOf(g Group) []Section {
	if g == GroupDeductions {
		return DeductionSections()
	}
	return IncomeSections()
}

func Lookup(id SectionID) (Section, bool) {
	for _, s := range incomeSections {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range deductionSections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func (id SectionID) Label() string {
	if s, ok := Lookup(id); ok {
		return s.Label
	}
	return string(id)
}
