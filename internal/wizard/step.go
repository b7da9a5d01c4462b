package wizard

// Step is a single addressable screen of the wizard.
// A disabled step is skipped by Advance and Backwards but can still be the
// target of a direct jump.
type Step struct {
	name       string
	section    string
	content    Content
	disabled   bool
	hasEntered bool
}

func newStep(section, name string, content Content, disabled bool) *Step {
	if content == nil {
		content = BaseContent{}
	}
	return &Step{
		name:     name,
		section:  section,
		content:  content,
		disabled: disabled,
	}
}

// Name returns the step name, unique within its section.
func (s *Step) Name() string { return s.name }

// SectionName returns the name of the section that owns the step.
func (s *Step) SectionName() string { return s.section }

// Content returns the externally supplied content handle.
func (s *Step) Content() Content { return s.content }

// Disabled reports whether traversal skips the step.
func (s *Step) Disabled() bool { return s.disabled }

// SetDisabled changes skip eligibility. It leaves the entered flag alone.
func (s *Step) SetDisabled(disabled bool) { s.disabled = disabled }

// Toggle flips the disabled flag.
func (s *Step) Toggle() { s.disabled = !s.disabled }

// Entered reports whether the step has been displayed at least once.
func (s *Step) Entered() bool { return s.hasEntered }

// Enter marks the step as displayed.
func (s *Step) Enter() { s.hasEntered = true }

// IsComplete is false for a step never shown, true for a disabled step, and
// otherwise whatever the content says.
func (s *Step) IsComplete() bool {
	if !s.hasEntered {
		return false
	}
	if s.disabled {
		return true
	}
	return s.content.IsComplete()
}

// Validate delegates to the content.
func (s *Step) Validate() error {
	return s.content.Validate()
}

// HelpText returns the content's help, or DefaultHelpText when it has none.
func (s *Step) HelpText() string {
	if text := s.content.HelpText(); text != "" {
		return text
	}
	return DefaultHelpText
}

// forget clears the entered flag and any content memory.
func (s *Step) forget() {
	s.hasEntered = false
	if r, ok := s.content.(Resetter); ok {
		r.Reset()
	}
}
