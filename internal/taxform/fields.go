package taxform

import "fmt"

type FieldKind int

const (
	KindText FieldKind = iota
	KindChoice
	KindDate
	KindNumber
	KindInteger
	KindBool
)

// Unit says how a number is presented.
type Unit int

const (
	UnitNone Unit = iota
	UnitMoney
	UnitPercent
	UnitKilometres
)

type Option struct {
	Value string
	Label string
}

// Condition shows a field only while the bool field Key equals Value.
type Condition struct {
	Key   string
	Value bool
}

// Field describes one editable value of a record. Key is a dotted path into
// the record's JSON shape.
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Unit    Unit
	Options []Option
	When    *Condition
}

// Visible reports whether f applies to rec.
func (f Field) Visible(rec Record) bool {
	if f.When == nil {
		return true
	}
	b, _ := rec.Get(f.When.Key).(bool)
	return b == f.When.Value
}

// OptionLabel maps a stored choice value to its display label.
func (f Field) OptionLabel(value string) string {
	for _, o := range f.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

var TitleOptions = []Option{
	{Value: "mr", Label: "Mr."},
	{Value: "mrs", Label: "Mrs."},
	{Value: "ms", Label: "Ms."},
	{Value: "dr", Label: "Dr."},
	{Value: "atty", Label: "Atty."},
}

var personalInfoFields = []Field{
	{Key: "title", Label: "Title", Kind: KindChoice, Options: TitleOptions},
	{Key: "firstName", Label: "First Name"},
	{Key: "middleName", Label: "Middle Name"},
	{Key: "lastName", Label: "Last Name"},
	{Key: "dateOfBirth", Label: "Date of Birth", Kind: KindDate},
	{Key: "mobile", Label: "Mobile #"},
	{Key: "email", Label: "Email"},
	{Key: "address", Label: "Address"},
	{Key: "taxFileNumber", Label: "Tax File Number"},
	{Key: "bankDetails.bsb", Label: "BSB"},
	{Key: "bankDetails.accountNumber", Label: "Account Number"},
}

var bankInterestFields = []Field{
	{Key: "bankName", Label: "Bank Name"},
	{Key: "bsb", Label: "BSB"},
	{Key: "accountNumber", Label: "Account Number"},
	{Key: "interestAmount", Label: "Interest Amount", Kind: KindNumber, Unit: UnitMoney},
	{Key: "isJointAccount", Label: "Joint Account?", Kind: KindBool},
}

var dividendFields = []Field{
	{Key: "companyName", Label: "Company Name"},
	{Key: "srnOrHin", Label: "SRN/HIN"},
	{Key: "datePaid", Label: "Date Paid", Kind: KindDate},
	{Key: "frankedAmount", Label: "Franked Amount", Kind: KindNumber, Unit: UnitMoney},
	{Key: "unfrankedAmount", Label: "Unfranked Amount", Kind: KindNumber, Unit: UnitMoney},
	{Key: "imputationCredit", Label: "Imputation Credit", Kind: KindNumber, Unit: UnitMoney},
}

var rentalPropertyFields = []Field{
	{Key: "address", Label: "Address"},
	{Key: "postcode", Label: "Postcode"},
	{Key: "cost", Label: "Cost of Property", Kind: KindNumber, Unit: UnitMoney},
	{Key: "dateOfPurchase", Label: "Date of Purchase", Kind: KindDate},
	{Key: "firstDateOfRent", Label: "Date of First Rent", Kind: KindDate},
	{Key: "yearBuilt", Label: "Year Built", Kind: KindInteger},
	{Key: "percentageOwned", Label: "Percentage Owned", Kind: KindNumber, Unit: UnitPercent},
	{Key: "isRegisteredForLandTax", Label: "Registered for Land Tax", Kind: KindBool},
	{Key: "outstandingLoanAmount", Label: "Outstanding Loan Amount", Kind: KindNumber, Unit: UnitMoney},
	{Key: "estimatedMarketValue", Label: "Estimated Market Value", Kind: KindNumber, Unit: UnitMoney},
}

var (
	withLogbook    = &Condition{Key: "withLogbook", Value: true}
	withoutLogbook = &Condition{Key: "withLogbook", Value: false}
)

var motorVehicleFields = []Field{
	{Key: "make", Label: "Make"},
	{Key: "model", Label: "Model"},
	{Key: "registrationNumber", Label: "Registration Number"},
	{Key: "dateOfPurchase", Label: "Date of Purchase", Kind: KindDate},
	{Key: "costOfCar", Label: "Cost of Car", Kind: KindNumber, Unit: UnitMoney},
	{Key: "tradeAmount", Label: "Trade-in Value", Kind: KindNumber, Unit: UnitMoney},
	{Key: "reasonForClaim", Label: "Reason for Claim"},
	{Key: "withLogbook", Label: "Kept a logbook for the year?", Kind: KindBool},
	{Key: "businessUsePercent", Label: "Business Use %", Kind: KindNumber, Unit: UnitPercent, When: withLogbook},
	{Key: "fuelExpense", Label: "Fuel", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "repairAndMaintenanceExpense", Label: "Repairs & Maintenance", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "registrationExpense", Label: "Registration", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "insuranceExpense", Label: "Insurance", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "leaseExpense", Label: "Lease/Hire Purchase", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "carWashExpense", Label: "Car Wash", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "interestExpense", Label: "Interest on Loan", Kind: KindNumber, Unit: UnitMoney, When: withLogbook},
	{Key: "kmTravelled", Label: "KM Travelled", Kind: KindNumber, Unit: UnitKilometres, When: withoutLogbook},
}

var workRelatedTravelFields = []Field{
	{Key: "reasonForClaim", Label: "Reason for Claim"},
	{Key: "taxiExpense", Label: "Taxi", Kind: KindNumber, Unit: UnitMoney},
	{Key: "tollExpense", Label: "Toll", Kind: KindNumber, Unit: UnitMoney},
	{Key: "parkingExpense", Label: "Parking", Kind: KindNumber, Unit: UnitMoney},
}

// OtherExpenseFields describes one entry of a work-related travel claim's
// otherExpenses list.
var OtherExpenseFields = []Field{
	{Key: "name", Label: "Name"},
	{Key: "amount", Label: "Amount", Kind: KindNumber, Unit: UnitMoney},
}

var pathFields = map[Path][]Field{
	PathPersonalInfo:      personalInfoFields,
	PathBankInterest:      bankInterestFields,
	PathDividends:         dividendFields,
	PathRentalProperty:    rentalPropertyFields,
	PathMotorVehicle:      motorVehicleFields,
	PathWorkRelatedTravel: workRelatedTravelFields,
}

// Fields returns the descriptors for the record at path; for list paths
// these describe a single entry.
func Fields(path Path) []Field {
	return append([]Field(nil), pathFields[path]...)
}

// BlankEntry returns a fresh entry for list paths.
func BlankEntry(path Path) (Record, error) {
	var v any
	switch path {
	case PathBankInterest:
		v = DefaultBankInterest()[0]
	case PathDividends:
		v = DefaultDividends()[0]
	case PathRentalProperty:
		v = DefaultRentalProperty()[0]
	default:
		return nil, fmt.Errorf("%w: %q is not a list", ErrUnknownPath, path)
	}
	return ToRecord(v)
}
