package wizard

import (
	"time"

	"github.com/jask/taxsheet/internal/taxform"
)

type EventKind int

const (
	EventCommitted EventKind = iota
	EventSelectionChanged
)

// Event describes a store mutation. Discarded lists sections that were
// selected before a selection change and lost their data to reconciliation.
type Event struct {
	Kind      EventKind
	Path      taxform.Path
	Selection taxform.Selection
	Discarded []taxform.SectionID
}

type subscriber struct {
	id int
	fn func(Event)
}

// Store owns one wizard's FormState and Selection. It is not safe for
// concurrent use.
type Store struct {
	state     taxform.FormState
	selection taxform.Selection
	subs      []subscriber
	nextID    int
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		state:     taxform.NewFormState(),
		selection: taxform.Selection{Income: []taxform.SectionID{}, Deductions: []taxform.SectionID{}},
		now:       time.Now,
	}
}

// State returns a deep copy of the current form state.
func (s *Store) State() taxform.FormState { return s.state.Clone() }

func (s *Store) Selection() taxform.Selection { return s.selection.Clone() }

// Get returns a copy of the value at path.
func (s *Store) Get(path taxform.Path) (any, error) { return s.state.Get(path) }

// Commit merges value into the form state at path. Only a wrong path or a
// value of the wrong type fails, and then nothing changes.
func (s *Store) Commit(path taxform.Path, value any) error {
	if err := s.state.Set(path, value); err != nil {
		return err
	}
	s.notify(Event{Kind: EventCommitted, Path: path, Selection: s.Selection()})
	return nil
}

// SetSelection replaces the selection and resets every unselected section's
// slot to its default in one pass over both groups.
func (s *Store) SetSelection(sel taxform.Selection) error {
	next, err := sel.Normalize()
	if err != nil {
		return err
	}
	var discarded []taxform.SectionID
	for _, sec := range taxform.AllSections() {
		if next.Has(sec.ID) {
			continue
		}
		if _, hasSlot := sec.ID.Path(); hasSlot && s.selection.Has(sec.ID) {
			discarded = append(discarded, sec.ID)
		}
		s.state.Reset(sec.ID)
	}
	s.selection = next
	s.notify(Event{Kind: EventSelectionChanged, Selection: next.Clone(), Discarded: discarded})
	return nil
}

// Subscribe registers fn for every later mutation. Subscribers run in
// registration order; the returned func removes fn.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	for _, sub := range append([]subscriber(nil), s.subs...) {
		sub.fn(ev)
	}
}

// Snapshot copies the state and selection for read-only collaborators.
func (s *Store) Snapshot() taxform.Snapshot {
	return taxform.NewSnapshot(s.state, s.selection, s.now())
}
