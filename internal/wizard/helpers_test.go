package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeContent is a controllable Content for tests.
type fakeContent struct {
	complete bool
	err      error
	entered  int
	resets   int
}

func (f *fakeContent) IsComplete() bool { return f.complete }
func (f *fakeContent) Validate() error  { return f.err }
func (f *fakeContent) OnEnter()         { f.entered++ }
func (f *fakeContent) HelpText() string { return "" }
func (f *fakeContent) Reset()           { f.resets++ }

// recorder is a Surface that remembers every command it received.
type recorder struct {
	displayed []string
	messages  []string
	closed    int
	finished  int
	forward   bool
	sections  map[int]bool
}

func newRecorder() *recorder {
	return &recorder{sections: make(map[int]bool)}
}

func (r *recorder) DisplayStep(s *Step) {
	r.displayed = append(r.displayed, s.SectionName()+"/"+s.Name())
}

func (r *recorder) ShowBlockingMessage(text string, _ *Step) {
	r.messages = append(r.messages, text)
}

func (r *recorder) CloseWizard()                          { r.closed++ }
func (r *recorder) WizardFinished()                       { r.finished++ }
func (r *recorder) SetForwardEnabled(enabled bool)        { r.forward = enabled }
func (r *recorder) SetSectionEnabled(i int, enabled bool) { r.sections[i] = enabled }

func (r *recorder) last() string {
	if len(r.displayed) == 0 {
		return ""
	}
	return r.displayed[len(r.displayed)-1]
}

// sectionDef describes a section for buildWizard: step name -> disabled.
type sectionDef struct {
	name  string
	steps []stepDef
}

type stepDef struct {
	name     string
	disabled bool
}

func buildSection(t *testing.T, def sectionDef) *Section {
	t.Helper()
	s := NewSection(def.name)
	for _, st := range def.steps {
		_, err := s.AddStep(st.name, &fakeContent{complete: true}, st.disabled)
		require.NoError(t, err)
	}
	return s
}

func buildWizard(t *testing.T, commit CommitFunc, defs ...sectionDef) (*Wizard, *recorder) {
	t.Helper()
	var sections []*Section
	for _, def := range defs {
		sections = append(sections, buildSection(t, def))
	}
	w, err := New(sections, commit)
	require.NoError(t, err)
	rec := newRecorder()
	w.SetSurface(rec)
	w.Open()
	return w, rec
}

func steps(names ...string) []stepDef {
	out := make([]stepDef, 0, len(names))
	for _, n := range names {
		out = append(out, stepDef{name: n})
	}
	return out
}

var errRejected = errors.New("upload failed: server returned 503")
