// Package wizard implements the navigation engine of a multi-step,
// multi-section configuration wizard.
//
// The engine owns the cursor state and nothing else. Rendering, answer
// persistence and the final commit are delegated to a Surface, to each
// step's Content and to a CommitFunc respectively. It is single-threaded:
// each intent is handled to completion before the next one is accepted.
package wizard

// CommitFunc runs once every section has been traversed. A nil return
// finishes the wizard; an error rolls it back one step and is shown to the
// user verbatim.
type CommitFunc func() error

// Wizard is the top-level navigation state machine.
type Wizard struct {
	sections []*Section
	byName   map[string]int
	commit   CommitFunc
	surface  Surface

	index   int
	current *Step
	first   *Step

	helpVisible  bool
	suspendReset bool
}

// New assembles a wizard from its sections. Sections and their steps must
// be fully populated: names are checked for uniqueness and every section
// needs at least one enabled step.
func New(sections []*Section, commit CommitFunc) (*Wizard, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	byName := make(map[string]int, len(sections))
	for i, s := range sections {
		if _, exists := byName[s.name]; exists {
			return nil, &DuplicateSectionError{Section: s.name}
		}
		if !s.Navigable() {
			return nil, &NoEligibleStepError{Section: s.name}
		}
		byName[s.name] = i
	}

	first := sections[0].Start()
	return &Wizard{
		sections: sections,
		byName:   byName,
		commit:   commit,
		surface:  nopSurface{},
		current:  first,
		first:    first,
	}, nil
}

// SetSurface attaches the presentation surface. A nil surface detaches it.
func (w *Wizard) SetSurface(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	w.surface = s
}

// Sections returns the sections in traversal order.
func (w *Wizard) Sections() []*Section { return w.sections }

// Section looks a section up by name.
func (w *Wizard) Section(name string) (*Section, bool) {
	i, ok := w.byName[name]
	if !ok {
		return nil, false
	}
	return w.sections[i], true
}

// Lookup finds a step by section and step name.
func (w *Wizard) Lookup(section, step string) (*Step, bool) {
	s, ok := w.Section(section)
	if !ok {
		return nil, false
	}
	return s.Step(step)
}

// SectionIndex returns the index of the current section.
func (w *Wizard) SectionIndex() int { return w.index }

// CurrentSection returns the section the current step belongs to.
func (w *Wizard) CurrentSection() *Section { return w.sections[w.index] }

// CurrentStep returns the step on screen.
func (w *Wizard) CurrentStep() *Step { return w.current }

// FirstStep returns the first step of the first section.
func (w *Wizard) FirstStep() *Step { return w.first }

// HelpVisible reports the help panel state.
func (w *Wizard) HelpVisible() bool { return w.helpVisible }

// Open displays the current step. It is called whenever the wizard is shown
// afresh and re-arms the soft reset.
func (w *Wizard) Open() {
	w.suspendReset = false
	w.display(w.current)
}

// Dispatch routes an intent to its handler.
func (w *Wizard) Dispatch(in Intent) error {
	switch in.Kind {
	case IntentNext:
		return w.Next()
	case IntentPrev:
		w.Prev()
	case IntentHelp:
		w.ToggleHelp()
	case IntentSection:
		_, err := w.SelectSection(in.Section)
		return err
	}
	return nil
}

// Next validates the current step and moves forward. Sections with no
// enabled step left are skipped, and leaving the last section runs the
// commit callback. The returned error is a
// *ValidationError or *CommitError that has already been shown on the
// surface; the caller need not surface it again.
func (w *Wizard) Next() error {
	if err := w.current.Validate(); err != nil {
		w.surface.ShowBlockingMessage(err.Error(), w.current)
		return &ValidationError{Step: w.current.name, Err: err}
	}

	if step := w.sections[w.index].Advance(); step != nil {
		w.display(step)
		return nil
	}

	for i := w.index + 1; i < len(w.sections); i++ {
		if w.sections[i].Navigable() {
			w.index = i
			w.display(w.sections[i].Start())
			return nil
		}
	}
	return w.runCommit()
}

func (w *Wizard) runCommit() error {
	var err error
	if w.commit != nil {
		err = w.commit()
	}
	if err == nil {
		// Success lands on the first step even while the soft reset is
		// suspended.
		w.rewind()
		w.Reset(false)
		w.refresh()
		w.surface.WizardFinished()
		return nil
	}

	// Stay on the current step with its section cursor restored.
	w.sections[w.index].Unadvance()
	w.refresh()
	msg := err.Error()
	if msg == "" {
		msg = "commit failed"
	}
	w.surface.ShowBlockingMessage(msg, w.current)
	return &CommitError{Err: err}
}

// Prev moves backward. On the very first step it closes the wizard instead.
// Sections with no enabled step left are skipped.
func (w *Wizard) Prev() {
	if w.current == w.first {
		w.surface.CloseWizard()
		w.Reset(false)
		return
	}

	if step := w.sections[w.index].Backwards(); step != nil {
		w.display(step)
		return
	}

	for i := w.index - 1; i >= 0; i-- {
		if step := w.sections[i].GotoEnd(); step != nil {
			w.index = i
			w.display(step)
			return
		}
	}
	w.index = 0
	w.display(w.sections[0].Start())
}

// JumpSectionStart displays the first step of the named section, disabled or
// not.
func (w *Wizard) JumpSectionStart(name string) error {
	i, ok := w.byName[name]
	if !ok {
		return &UnknownSectionError{Section: name}
	}
	w.index = i
	w.display(w.sections[i].Start())
	return nil
}

// JumpSectionEnd displays the last enabled step of the named section. A
// section with every step disabled is refused and the state is untouched.
func (w *Wizard) JumpSectionEnd(name string) error {
	i, ok := w.byName[name]
	if !ok {
		return &UnknownSectionError{Section: name}
	}
	s := w.sections[i]
	saved := s.cursor
	step := s.GotoEnd()
	if step == nil {
		s.cursor = saved
		return &NoEligibleStepError{Section: name}
	}
	w.index = i
	w.display(step)
	return nil
}

// SelectSection is the sidebar jump. Sections past the current one are
// refused without error; the bool reports whether the jump happened.
func (w *Wizard) SelectSection(name string) (bool, error) {
	i, ok := w.byName[name]
	if !ok {
		return false, &UnknownSectionError{Section: name}
	}
	if i > w.index {
		return false, nil
	}
	return true, w.JumpSectionStart(name)
}

// ToggleHelp flips the help panel state. Traversal is unaffected.
func (w *Wizard) ToggleHelp() {
	w.helpVisible = !w.helpVisible
}

// Reset returns to the first step of the first section. A soft reset
// (force=false) keeps step memory and fires once until the next Open; a
// full reset also clears every step's entered flag and content state.
func (w *Wizard) Reset(force bool) {
	if w.suspendReset && !force {
		return
	}
	if force {
		for _, s := range w.sections {
			s.forget()
		}
	}
	w.rewind()
	w.helpVisible = false
	w.suspendReset = true
	w.refresh()
}

func (w *Wizard) rewind() {
	w.index = 0
	w.sections[0].Start()
	w.current = w.first
}

// Abort closes the wizard and performs a full reset.
func (w *Wizard) Abort() {
	w.surface.CloseWizard()
	w.Reset(true)
}

// Refresh recomputes the forward and sidebar affordances. Surfaces call it
// whenever the current step's inputs change.
func (w *Wizard) Refresh() {
	w.refresh()
}

func (w *Wizard) refresh() {
	w.surface.SetForwardEnabled(w.current.IsComplete())
	for i := range w.sections {
		w.surface.SetSectionEnabled(i, i <= w.index)
	}
}

func (w *Wizard) display(step *Step) {
	w.current = step
	step.Enter()
	step.content.OnEnter()
	w.refresh()
	w.surface.DisplayStep(step)
}
