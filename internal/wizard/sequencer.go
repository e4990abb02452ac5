package wizard

import "slices"

// Sequencer is a cursor over an ordered list of steps. Operations at the
// edges are no-ops; nothing here ever fails.
type Sequencer struct {
	steps  []Step
	cursor int
}

func NewSequencer(steps []Step) *Sequencer {
	return &Sequencer{steps: slices.Clone(steps)}
}

// Advance moves forward one step and reports whether the cursor moved.
func (s *Sequencer) Advance() bool {
	if s.cursor >= len(s.steps)-1 {
		return false
	}
	s.cursor++
	return true
}

// Retreat moves back one step and reports whether the cursor moved.
func (s *Sequencer) Retreat() bool {
	if s.cursor <= 0 {
		return false
	}
	s.cursor--
	return true
}

// JumpTo places the cursor at i, clamped to the valid range.
func (s *Sequencer) JumpTo(i int) {
	s.cursor = s.clamp(i)
}

// Current returns the step under the cursor. ok is false only for an empty
// sequence.
func (s *Sequencer) Current() (Step, bool) {
	if len(s.steps) == 0 {
		return Step{}, false
	}
	return s.steps[s.cursor], true
}

func (s *Sequencer) Cursor() int { return s.cursor }
func (s *Sequencer) Len() int    { return len(s.steps) }

func (s *Sequencer) IsFirst() bool { return s.cursor == 0 }
func (s *Sequencer) IsLast() bool  { return s.cursor >= len(s.steps)-1 }

func (s *Sequencer) Steps() []Step { return slices.Clone(s.steps) }

// SetSteps swaps the sequence and keeps the cursor in range.
func (s *Sequencer) SetSteps(steps []Step) {
	s.steps = slices.Clone(steps)
	s.cursor = s.clamp(s.cursor)
}

func (s *Sequencer) clamp(i int) int {
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
