// Package testdata generates plausible filled-in returns for demos and tests.
package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/taxsheet/internal/taxform"
)

var (
	firstNames = []string{"Jane", "Ahmed", "Mei", "Liam", "Priya", "Tom"}
	lastNames  = []string{"Citizen", "Nguyen", "Okafor", "Smith", "Rossi", "Van Der Berg"}
	banks      = []string{"ANZ", "Westpac", "CBA", "NAB", "ING"}
	companies  = []string{"BHP Group", "Telstra", "Woolworths", "CSL", "Wesfarmers"}
	streets    = []string{"George St", "Collins St", "Smith St", "High St", "Station Rd"}
	makes      = []string{"Toyota", "Mazda", "Hyundai", "Ford"}
)

func pick(r *rand.Rand, xs []string) string { return xs[r.Intn(len(xs))] }

func money(r *rand.Rand, maxDollars int) float64 {
	return float64(r.Intn(maxDollars*100)) / 100
}

func bsb(r *rand.Rand) string { return fmt.Sprintf("%03d-%03d", r.Intn(1000), r.Intn(1000)) }

func date(r *rand.Rand, year int) string {
	return time.Date(year, time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC).Format(taxform.DateLayout)
}

// State returns a form state with every data section filled in. entries
// controls the length of each list section.
func State(r *rand.Rand, entries int) taxform.FormState {
	entries = max(1, entries)
	s := taxform.NewFormState()
	first, last := pick(r, firstNames), pick(r, lastNames)
	s.PersonalInfo = taxform.PersonalInfo{
		Title:         taxform.TitleOptions[r.Intn(len(taxform.TitleOptions))].Value,
		FirstName:     first,
		LastName:      last,
		DateOfBirth:   date(r, 1950+r.Intn(50)),
		TaxFileNumber: fmt.Sprintf("%03d %03d %03d", r.Intn(1000), r.Intn(1000), r.Intn(1000)),
		Address:       fmt.Sprintf("%d %s", 1+r.Intn(200), pick(r, streets)),
		Mobile:        fmt.Sprintf("04%08d", r.Intn(100000000)),
		Email:         fmt.Sprintf("%s.%d@example.com", first, r.Intn(100)),
		BankDetails:   taxform.BankDetails{BSB: bsb(r), AccountNumber: fmt.Sprintf("%08d", r.Intn(100000000))},
	}

	s.Income.BankInterest = nil
	s.Income.Dividends = nil
	s.Income.RentalProperty = nil
	for i := 0; i < entries; i++ {
		s.Income.BankInterest = append(s.Income.BankInterest, taxform.BankInterestEntry{
			BankName:       pick(r, banks),
			BSB:            bsb(r),
			AccountNumber:  fmt.Sprintf("%08d", r.Intn(100000000)),
			InterestAmount: money(r, 2000),
			IsJointAccount: r.Intn(2) == 0,
		})
		s.Income.Dividends = append(s.Income.Dividends, taxform.DividendEntry{
			CompanyName:      pick(r, companies),
			SRNOrHIN:         fmt.Sprintf("X%010d", r.Intn(1000000000)),
			DatePaid:         date(r, 2022),
			FrankedAmount:    money(r, 3000),
			UnfrankedAmount:  money(r, 500),
			ImputationCredit: money(r, 900),
		})
		s.Income.RentalProperty = append(s.Income.RentalProperty, taxform.RentalPropertyEntry{
			Address:                fmt.Sprintf("%d %s", 1+r.Intn(200), pick(r, streets)),
			Postcode:               fmt.Sprintf("%04d", 2000+r.Intn(2000)),
			Cost:                   float64(300000 + r.Intn(900000)),
			DateOfPurchase:         date(r, 2000+r.Intn(20)),
			FirstDateOfRent:        date(r, 2021),
			YearBuilt:              1900 + r.Intn(120),
			PercentageOwned:        float64(25 * (1 + r.Intn(4))),
			IsRegisteredForLandTax: r.Intn(2) == 0,
			OutstandingLoanAmount:  float64(r.Intn(500000)),
			EstimatedMarketValue:   float64(400000 + r.Intn(1200000)),
		})
	}

	s.Deductions.MotorVehicle = taxform.MotorVehicleClaim{
		Make:               pick(r, makes),
		Model:              "Sedan",
		RegistrationNumber: fmt.Sprintf("%03dXYZ", r.Intn(1000)),
		DateOfPurchase:     date(r, 2018),
		CostOfCar:          float64(20000 + r.Intn(40000)),
		ReasonForClaim:     "Client visits",
		WithLogbook:        r.Intn(2) == 0,
		BusinessUsePercent: float64(10 * (1 + r.Intn(9))),
		FuelExpense:        money(r, 3000),
		InsuranceExpense:   money(r, 1500),
		KMTravelled:        float64(r.Intn(5000)),
	}
	s.Deductions.WorkRelatedTravel = taxform.WorkRelatedTravelClaim{
		ReasonForClaim: "Interstate conference",
		TaxiExpense:    money(r, 200),
		ParkingExpense: money(r, 100),
		OtherExpenses:  []taxform.OtherExpense{{Name: "Train", Amount: money(r, 80)}},
	}
	return s
}

// Snapshot returns a generated state with every section that has a form
// selected.
func Snapshot(r *rand.Rand, entries int, at time.Time) taxform.Snapshot {
	sel, err := taxform.NewSelection(
		taxform.Dividends, taxform.BankInterest, taxform.RentalProperty,
		taxform.MotorVehicle, taxform.WorkRelatedTravel,
	)
	if err != nil {
		panic(err)
	}
	return taxform.NewSnapshot(State(r, entries), sel, at)
}
