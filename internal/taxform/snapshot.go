package taxform

import "time"

// Snapshot is an immutable copy of the wizard's data handed to summary and
// export collaborators.
type Snapshot struct {
	State     FormState `json:"state"`
	Selection Selection `json:"selection"`
	TakenAt   time.Time `json:"takenAt"`
}

func NewSnapshot(s FormState, sel Selection, at time.Time) Snapshot {
	return Snapshot{State: s.Clone(), Selection: sel.Clone(), TakenAt: at}
}

// TaxpayerName is "First Last" or empty when neither is known.
func (s Snapshot) TaxpayerName() string {
	first, last := s.State.PersonalInfo.FirstName, s.State.PersonalInfo.LastName
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}
