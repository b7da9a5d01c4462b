package wizard

import (
	"errors"
	"fmt"
)

// ErrNoSections is returned when a wizard is built without any sections.
var ErrNoSections = errors.New("wizard has no sections")

// ValidationError is surfaced when the current step refuses forward navigation.
// The wizard position is unchanged.
type ValidationError struct {
	Step string
	Err  error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CommitError is returned by Next when the commit callback rejects the answers.
// The wizard is rolled back to the last step of the final section.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return e.Err.Error()
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// DuplicateStepError reports a step name used twice within one section.
type DuplicateStepError struct {
	Section string
	Step    string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("section %q already has a step named %q", e.Section, e.Step)
}

// DuplicateSectionError reports a section name used twice within one wizard.
type DuplicateSectionError struct {
	Section string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate section %q", e.Section)
}

// UnknownSectionError is returned by direct jumps to a section that does not exist.
type UnknownSectionError struct {
	Section string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Section)
}

// NoEligibleStepError reports a section whose steps are all disabled.
type NoEligibleStepError struct {
	Section string
}

func (e *NoEligibleStepError) Error() string {
	return fmt.Sprintf("section %q has no enabled steps", e.Section)
}
