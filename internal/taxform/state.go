package taxform

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownPath  = errors.New("unknown form path")
	ErrTypeMismatch = errors.New("value type does not match path")
)

// Path addresses one committable slice of FormState.
type Path string

const (
	PathPersonalInfo      Path = "personalInfo"
	PathBankInterest      Path = "income.bankInterest"
	PathDividends         Path = "income.dividends"
	PathRentalProperty    Path = "income.rentalProperty"
	PathMotorVehicle      Path = "deductions.motorVehicle"
	PathWorkRelatedTravel Path = "deductions.workRelatedTravel"
)

var sectionPaths = map[SectionID]Path{
	BankInterest:      PathBankInterest,
	Dividends:         PathDividends,
	RentalProperty:    PathRentalProperty,
	MotorVehicle:      PathMotorVehicle,
	WorkRelatedTravel: PathWorkRelatedTravel,
}

// Path returns the FormState slot owned by a section. Sections without a
// data slot report false.
func (id SectionID) Path() (Path, bool) {
	p, ok := sectionPaths[id]
	return p, ok
}

// IsList reports whether the path holds a list of entries.
func (p Path) IsList() bool {
	switch p {
	case PathBankInterest, PathDividends, PathRentalProperty:
		return true
	}
	return false
}

type BankDetails struct {
	BSB           string `json:"bsb"`
	AccountNumber string `json:"accountNumber"`
}

type PersonalInfo struct {
	Title         string      `json:"title"`
	LastName      string      `json:"lastName"`
	FirstName     string      `json:"firstName"`
	MiddleName    string      `json:"middleName"`
	DateOfBirth   string      `json:"dateOfBirth"`
	TaxFileNumber string      `json:"taxFileNumber"`
	Address       string      `json:"address"`
	Mobile        string      `json:"mobile"`
	Email         string      `json:"email"`
	BankDetails   BankDetails `json:"bankDetails"`
}

type BankInterestEntry struct {
	BankName       string  `json:"bankName"`
	BSB            string  `json:"bsb"`
	AccountNumber  string  `json:"accountNumber"`
	InterestAmount float64 `json:"interestAmount"`
	IsJointAccount bool    `json:"isJointAccount"`
}

type DividendEntry struct {
	CompanyName      string  `json:"companyName"`
	SRNOrHIN         string  `json:"srnOrHin"`
	DatePaid         string  `json:"datePaid"`
	FrankedAmount    float64 `json:"frankedAmount"`
	UnfrankedAmount  float64 `json:"unfrankedAmount"`
	ImputationCredit float64 `json:"imputationCredit"`
}

type RentalPropertyEntry struct {
	Address                string  `json:"address"`
	Postcode               string  `json:"postcode"`
	Cost                   float64 `json:"cost"`
	DateOfPurchase         string  `json:"dateOfPurchase"`
	FirstDateOfRent        string  `json:"firstDateOfRent"`
	YearBuilt              int     `json:"yearBuilt"`
	PercentageOwned        float64 `json:"percentageOwned"`
	IsRegisteredForLandTax bool    `json:"isRegisteredForLandTax"`
	OutstandingLoanAmount  float64 `json:"outstandingLoanAmount"`
	EstimatedMarketValue   float64 `json:"estimatedMarketValue"`
}

type Income struct {
	BankInterest   []BankInterestEntry   `json:"bankInterest"`
	Dividends      []DividendEntry       `json:"dividends"`
	RentalProperty []RentalPropertyEntry `json:"rentalProperty"`
}

type MotorVehicleClaim struct {
	Make                        string  `json:"make"`
	Model                       string  `json:"model"`
	RegistrationNumber          string  `json:"registrationNumber"`
	DateOfPurchase              string  `json:"dateOfPurchase"`
	CostOfCar                   float64 `json:"costOfCar"`
	TradeAmount                 float64 `json:"tradeAmount"`
	ReasonForClaim              string  `json:"reasonForClaim"`
	WithLogbook                 bool    `json:"withLogbook"`
	BusinessUsePercent          float64 `json:"businessUsePercent"`
	FuelExpense                 float64 `json:"fuelExpense"`
	RepairAndMaintenanceExpense float64 `json:"repairAndMaintenanceExpense"`
	RegistrationExpense         float64 `json:"registrationExpense"`
	InsuranceExpense            float64 `json:"insuranceExpense"`
	LeaseExpense                float64 `json:"leaseExpense"`
	CarWashExpense              float64 `json:"carWashExpense"`
	InterestExpense             float64 `json:"interestExpense"`
	KMTravelled                 float64 `json:"kmTravelled"`
}

// LogbookExpenses sums the running costs claimable under the logbook method.
func (m MotorVehicleClaim) LogbookExpenses() float64 {
	return m.FuelExpense + m.RepairAndMaintenanceExpense + m.RegistrationExpense +
		m.InsuranceExpense + m.LeaseExpense + m.CarWashExpense + m.InterestExpense
}

type OtherExpense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type WorkRelatedTravelClaim struct {
	ReasonForClaim string         `json:"reasonForClaim"`
	TaxiExpense    float64        `json:"taxiExpense"`
	TollExpense    float64        `json:"tollExpense"`
	ParkingExpense float64        `json:"parkingExpense"`
	OtherExpenses  []OtherExpense `json:"otherExpenses"`
}

func (w WorkRelatedTravelClaim) Total() float64 {
	total := w.TaxiExpense + w.TollExpense + w.ParkingExpense
	for _, e := range w.OtherExpenses {
		total += e.Amount
	}
	return total
}

type Deductions struct {
	MotorVehicle      MotorVehicleClaim      `json:"motorVehicle"`
	WorkRelatedTravel WorkRelatedTravelClaim `json:"workRelatedTravel"`
}

// FormState is the aggregate record every wizard step reads and writes.
type FormState struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Income       Income       `json:"income"`
	Deductions   Deductions   `json:"deductions"`
}

func DefaultBankInterest() []BankInterestEntry { return []BankInterestEntry{{}} }
func DefaultDividends() []DividendEntry        { return []DividendEntry{{}} }

func DefaultRentalProperty() []RentalPropertyEntry {
	return []RentalPropertyEntry{{YearBuilt: 1900}}
}

func DefaultMotorVehicle() MotorVehicleClaim { return MotorVehicleClaim{} }

func DefaultWorkRelatedTravel() WorkRelatedTravelClaim {
	return WorkRelatedTravelClaim{OtherExpenses: []OtherExpense{}}
}

// NewFormState returns the wizard's starting state with every slot at its default.
func NewFormState() FormState {
	return FormState{
		Income: Income{
			BankInterest:   DefaultBankInterest(),
			Dividends:      DefaultDividends(),
			RentalProperty: DefaultRentalProperty(),
		},
		Deductions: Deductions{
			MotorVehicle:      DefaultMotorVehicle(),
			WorkRelatedTravel: DefaultWorkRelatedTravel(),
		},
	}
}

// Clone returns a deep copy; no slice is shared with the receiver.
func (s FormState) Clone() FormState {
	out := s
	out.Income.BankInterest = cloneList(s.Income.BankInterest)
	out.Income.Dividends = cloneList(s.Income.Dividends)
	out.Income.RentalProperty = cloneList(s.Income.RentalProperty)
	out.Deductions.WorkRelatedTravel.OtherExpenses = cloneList(s.Deductions.WorkRelatedTravel.OtherExpenses)
	return out
}

func cloneList[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

// Get returns a copy of the value stored at path.
func (s FormState) Get(path Path) (any, error) {
	c := s.Clone()
	switch path {
	case PathPersonalInfo:
		return c.PersonalInfo, nil
	case PathBankInterest:
		return c.Income.BankInterest, nil
	case PathDividends:
		return c.Income.Dividends, nil
	case PathRentalProperty:
		return c.Income.RentalProperty, nil
	case PathMotorVehicle:
		return c.Deductions.MotorVehicle, nil
	case PathWorkRelatedTravel:
		return c.Deductions.WorkRelatedTravel, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPath, path)
}

// Set replaces the value at path, leaving every other slot untouched.
func (s *FormState) Set(path Path, value any) error {
	mismatch := func() error {
		return fmt.Errorf("%w: %s got %T", ErrTypeMismatch, path, value)
	}
	switch path {
	case PathPersonalInfo:
		v, ok := value.(PersonalInfo)
		if !ok {
			return mismatch()
		}
		s.PersonalInfo = v
	case PathBankInterest:
		v, ok := value.([]BankInterestEntry)
		if !ok {
			return mismatch()
		}
		s.Income.BankInterest = cloneList(v)
	case PathDividends:
		v, ok := value.([]DividendEntry)
		if !ok {
			return mismatch()
		}
		s.Income.Dividends = cloneList(v)
	case PathRentalProperty:
		v, ok := value.([]RentalPropertyEntry)
		if !ok {
			return mismatch()
		}
		s.Income.RentalProperty = cloneList(v)
	case PathMotorVehicle:
		v, ok := value.(MotorVehicleClaim)
		if !ok {
			return mismatch()
		}
		s.Deductions.MotorVehicle = v
	case PathWorkRelatedTravel:
		v, ok := value.(WorkRelatedTravelClaim)
		if !ok {
			return mismatch()
		}
		v.OtherExpenses = cloneList(v.OtherExpenses)
		s.Deductions.WorkRelatedTravel = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	return nil
}

// Reset puts a section's slot back to its default. Sections without a slot
// are left alone.
func (s *FormState) Reset(id SectionID) {
	switch id {
	case BankInterest:
		s.Income.BankInterest = DefaultBankInterest()
	case Dividends:
		s.Income.Dividends = DefaultDividends()
	case RentalProperty:
		s.Income.RentalProperty = DefaultRentalProperty()
	case MotorVehicle:
		s.Deductions.MotorVehicle = DefaultMotorVehicle()
	case WorkRelatedTravel:
		s.Deductions.WorkRelatedTravel = DefaultWorkRelatedTravel()
	}
}

// Default returns the documented default value for path.
func Default(path Path) (any, error) {
	return NewFormState().Get(path)
}
