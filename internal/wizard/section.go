package wizard

// Section is an ordered group of steps with its own cursor.
type Section struct {
	name   string
	steps  []*Step
	byName map[string]*Step

	cursor       int
	cursorBefore int // cursor saved by the last Advance, restored by Unadvance
}

// NewSection creates an empty section.
func NewSection(name string) *Section {
	return &Section{
		name:   name,
		byName: make(map[string]*Step),
	}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// AddStep appends a step. Step names are unique within a section.
func (s *Section) AddStep(name string, content Content, disabled bool) (*Step, error) {
	if _, exists := s.byName[name]; exists {
		return nil, &DuplicateStepError{Section: s.name, Step: name}
	}
	step := newStep(s.name, name, content, disabled)
	s.steps = append(s.steps, step)
	s.byName[name] = step
	return step, nil
}

// Steps returns the steps in traversal order.
func (s *Section) Steps() []*Step { return s.steps }

// Step looks a step up by name.
func (s *Section) Step(name string) (*Step, bool) {
	step, ok := s.byName[name]
	return step, ok
}

// Len returns the number of steps, disabled ones included.
func (s *Section) Len() int { return len(s.steps) }

// Cursor returns the index of the step the section is positioned on.
func (s *Section) Cursor() int { return s.cursor }

// Navigable reports whether at least one step is enabled.
func (s *Section) Navigable() bool {
	for _, step := range s.steps {
		if !step.disabled {
			return true
		}
	}
	return false
}

// Start rewinds to the first step and returns it, disabled or not.
// Returns nil for a section without steps.
func (s *Section) Start() *Step {
	s.cursor = 0
	if len(s.steps) == 0 {
		return nil
	}
	return s.steps[0]
}

// Advance moves to the next enabled step. It returns nil, leaving the cursor
// one past the end, when no enabled step remains.
func (s *Section) Advance() *Step {
	s.cursorBefore = s.cursor
	for s.cursor < len(s.steps)-1 {
		s.cursor++
		if step := s.steps[s.cursor]; !step.disabled {
			return step
		}
	}
	s.cursor = len(s.steps)
	return nil
}

// Unadvance restores the cursor saved by the last Advance.
func (s *Section) Unadvance() {
	s.cursor = s.cursorBefore
}

// Backwards moves to the previous enabled step, or returns nil when none is
// left before the cursor.
func (s *Section) Backwards() *Step {
	if s.cursor > len(s.steps) {
		s.cursor = len(s.steps)
	}
	for s.cursor > 0 {
		s.cursor--
		if step := s.steps[s.cursor]; !step.disabled {
			return step
		}
	}
	s.cursor = -1
	return nil
}

// GotoEnd positions on the last enabled step, used when entering the section
// backwards from its successor.
func (s *Section) GotoEnd() *Step {
	s.cursor = len(s.steps)
	return s.Backwards()
}

// IsComplete is true for an empty section and otherwise follows the last step
// in insertion order. A trailing disabled step reports complete.
func (s *Section) IsComplete() bool {
	if len(s.steps) == 0 {
		return true
	}
	return s.steps[len(s.steps)-1].IsComplete()
}

// forget clears the entered memory of every step and rewinds the cursor.
func (s *Section) forget() {
	for _, step := range s.steps {
		step.forget()
	}
	s.cursor = 0
	s.cursorBefore = 0
}
