package taxform

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownSection = errors.New("unknown section")

// Selection records which optional sections the user ticked on the table
// of contents. Normalized selections are de-duplicated and ordered by the
// section enumeration.
type Selection struct {
	Income     []SectionID `json:"income"`
	Deductions []SectionID `json:"deductions"`
}

// NewSelection sorts ids into their groups and normalizes the result.
func NewSelection(ids ...SectionID) (Selection, error) {
	var sel Selection
	for _, id := range ids {
		s, ok := Lookup(id)
		if !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
		}
		if s.Group == GroupIncome {
			sel.Income = append(sel.Income, id)
		} else {
			sel.Deductions = append(sel.Deductions, id)
		}
	}
	return sel.Normalize()
}

// Normalize validates every identifier against its group and returns a
// copy in enumeration order without duplicates.
func (s Selection) Normalize() (Selection, error) {
	income, err := normalizeGroup(GroupIncome, s.Income)
	if err != nil {
		return Selection{}, err
	}
	deductions, err := normalizeGroup(GroupDeductions, s.Deductions)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Income: income, Deductions: deductions}, nil
}

func normalizeGroup(g Group, ids []SectionID) ([]SectionID, error) {
	for _, id := range ids {
		sec, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
		}
		if sec.Group != g {
			return nil, fmt.Errorf("%w: %q is not a %s section", ErrUnknownSection, id, g)
		}
	}
	out := make([]SectionID, 0, len(ids))
	for _, sec := range SectionsOf(g) {
		if slices.Contains(ids, sec.ID) {
			out = append(out, sec.ID)
		}
	}
	return out, nil
}

func (s Selection) Has(id SectionID) bool {
	return slices.Contains(s.Income, id) || slices.Contains(s.Deductions, id)
}

func (s Selection) Len() int { return len(s.Income) + len(s.Deductions) }

// IDs returns income then deduction identifiers.
func (s Selection) IDs() []SectionID {
	out := make([]SectionID, 0, s.Len())
	out = append(out, s.Income...)
	return append(out, s.Deductions...)
}

// Group returns the identifiers selected within g.
func (s Selection) Group(g Group) []SectionID {
	if g == GroupDeductions {
		return slices.Clone(s.Deductions)
	}
	return slices.Clone(s.Income)
}

func (s Selection) Clone() Selection {
	return Selection{
		Income:     append(make([]SectionID, 0, len(s.Income)), s.Income...),
		Deductions: append(make([]SectionID, 0, len(s.Deductions)), s.Deductions...),
	}
}

func (s Selection) Equal(o Selection) bool {
	return slices.Equal(s.Income, o.Income) && slices.Equal(s.Deductions, o.Deductions)
}

// Toggle returns a normalized copy with id added or removed.
func (s Selection) Toggle(id SectionID) (Selection, error) {
	sec, ok := Lookup(id)
	if !ok {
		return Selection{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	out := s.Clone()
	list := &out.Income
	if sec.Group == GroupDeductions {
		list = &out.Deductions
	}
	if i := slices.Index(*list, id); i >= 0 {
		*list = slices.Delete(*list, i, i+1)
	} else {
		*list = append(*list, id)
	}
	return out.Normalize()
}
