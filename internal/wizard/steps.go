package wizard

import (
	"slices"

	"github.com/jask/taxsheet/internal/taxform"
)

// StepKind selects the editor a step is rendered with. Several sections
// share one kind.
type StepKind int

const (
	KindPersonalInfo StepKind = iota
	KindTableOfContents
	KindEntryList
	KindMotorVehicle
	KindWorkRelatedTravel
	KindPlaceholder
)

func (k StepKind) String() string {
	switch k {
	case KindPersonalInfo:
		return "personal-info"
	case KindTableOfContents:
		return "table-of-contents"
	case KindEntryList:
		return "entry-list"
	case KindMotorVehicle:
		return "motor-vehicle"
	case KindWorkRelatedTravel:
		return "work-related-travel"
	default:
		return "placeholder"
	}
}

// MandatorySteps is the number of steps that precede every optional section.
const MandatorySteps = 2

// NotPresent is returned by SectionIndex for unselected sections.
const NotPresent = -1

var sectionKinds = map[taxform.SectionID]StepKind{
	taxform.Dividends:         KindEntryList,
	taxform.BankInterest:      KindEntryList,
	taxform.RentalProperty:    KindEntryList,
	taxform.MotorVehicle:      KindMotorVehicle,
	taxform.WorkRelatedTravel: KindWorkRelatedTravel,
}

// KindFor maps a section to its editor. Sections without a dedicated editor
// get the placeholder step.
func KindFor(id taxform.SectionID) StepKind {
	if k, ok := sectionKinds[id]; ok {
		return k
	}
	return KindPlaceholder
}

// Step is one screen of the wizard. Section is empty for mandatory steps.
type Step struct {
	Kind    StepKind
	Section taxform.SectionID
	Title   string
}

// Path is the form slot the step commits to, if any.
func (s Step) Path() (taxform.Path, bool) {
	switch s.Kind {
	case KindPersonalInfo:
		return taxform.PathPersonalInfo, true
	case KindTableOfContents, KindPlaceholder:
		return "", false
	}
	return s.Section.Path()
}

var (
	personalInfoStep    = Step{Kind: KindPersonalInfo, Title: "Personal Information"}
	tableOfContentsStep = Step{Kind: KindTableOfContents, Title: "Table of Contents"}
)

// Derive builds the step sequence for a selection: the mandatory steps,
// then selected income sections, then selected deduction sections, each in
// enumeration order.
func Derive(sel taxform.Selection) []Step {
	steps := []Step{personalInfoStep, tableOfContentsStep}
	for _, g := range []taxform.Group{taxform.GroupIncome, taxform.GroupDeductions} {
		for _, sec := range taxform.SectionsOf(g) {
			if !slices.Contains(sel.Group(g), sec.ID) {
				continue
			}
			steps = append(steps, Step{Kind: KindFor(sec.ID), Section: sec.ID, Title: sec.Label})
		}
	}
	return steps
}

// SectionIndex resolves the position of a section within the sequence
// derived from sel, or NotPresent when it is not selected. sel must be
// normalized.
func SectionIndex(sel taxform.Selection, id taxform.SectionID) int {
	if i := slices.Index(sel.Income, id); i >= 0 {
		return MandatorySteps + i
	}
	if i := slices.Index(sel.Deductions, id); i >= 0 {
		return MandatorySteps + len(sel.Income) + i
	}
	return NotPresent
}
