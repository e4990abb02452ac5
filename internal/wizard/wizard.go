package wizard

import "github.com/jask/taxsheet/internal/taxform"

// Wizard binds a Store to a Sequencer whose steps follow the store's
// selection.
type Wizard struct {
	store       *Store
	seq         *Sequencer
	unsubscribe func()
}

func New(store *Store) *Wizard {
	w := &Wizard{
		store: store,
		seq:   NewSequencer(Derive(store.Selection())),
	}
	w.unsubscribe = store.Subscribe(w.onEvent)
	return w
}

func (w *Wizard) onEvent(ev Event) {
	if ev.Kind == EventSelectionChanged {
		w.seq.SetSteps(Derive(ev.Selection))
	}
}

// Close detaches the wizard from its store.
func (w *Wizard) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

func (w *Wizard) Store() *Store { return w.store }

func (w *Wizard) Advance() bool  { return w.seq.Advance() }
func (w *Wizard) Retreat() bool  { return w.seq.Retreat() }
func (w *Wizard) JumpTo(i int)   { w.seq.JumpTo(i) }
func (w *Wizard) Cursor() int    { return w.seq.Cursor() }
func (w *Wizard) Steps() []Step  { return w.seq.Steps() }
func (w *Wizard) IsLast() bool   { return w.seq.IsLast() }
func (w *Wizard) IsFirst() bool  { return w.seq.IsFirst() }
func (w *Wizard) StepCount() int { return w.seq.Len() }

// Current returns the visible step. Derived sequences are never empty.
func (w *Wizard) Current() Step {
	st, _ := w.seq.Current()
	return st
}

// Submit commits a step's validated value and moves forward.
func (w *Wizard) Submit(path taxform.Path, value any) error {
	if err := w.store.Commit(path, value); err != nil {
		return err
	}
	w.seq.Advance()
	return nil
}

// SubmitSelection applies the table of contents and moves forward.
func (w *Wizard) SubmitSelection(sel taxform.Selection) error {
	if err := w.store.SetSelection(sel); err != nil {
		return err
	}
	w.seq.Advance()
	return nil
}

// JumpToSection moves to a selected section's step.
func (w *Wizard) JumpToSection(id taxform.SectionID) bool {
	i := SectionIndex(w.store.Selection(), id)
	if i == NotPresent {
		return false
	}
	w.seq.JumpTo(i)
	return true
}
