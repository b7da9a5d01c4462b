package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_IsComplete(t *testing.T) {
	content := &fakeContent{complete: false}
	s := newStep("A", "p", content, false)

	require.False(t, s.IsComplete(), "un-entered step must not be complete")

	s.Enter()
	require.False(t, s.IsComplete(), "entered step follows content")

	content.complete = true
	require.True(t, s.IsComplete())

	content.complete = false
	s.SetDisabled(true)
	require.True(t, s.IsComplete(), "disabled step never blocks")
	require.True(t, s.Entered(), "SetDisabled must not touch the entered flag")
}

func TestStep_DisabledStillNeedsEntering(t *testing.T) {
	s := newStep("A", "p", &fakeContent{complete: true}, true)
	require.False(t, s.IsComplete())
}

func TestStep_ToggleAndDefaults(t *testing.T) {
	s := newStep("A", "p", nil, false)
	require.NoError(t, s.Validate())
	require.Equal(t, DefaultHelpText, s.HelpText())

	s.Toggle()
	require.True(t, s.Disabled())
	s.Toggle()
	require.False(t, s.Disabled())
}

func TestStep_ForgetResetsContent(t *testing.T) {
	content := &fakeContent{}
	s := newStep("A", "p", content, false)
	s.Enter()
	s.forget()
	require.False(t, s.Entered())
	require.Equal(t, 1, content.resets)
}

func TestSection_AddStepDuplicate(t *testing.T) {
	s := NewSection("A")
	_, err := s.AddStep("p", nil, false)
	require.NoError(t, err)

	_, err = s.AddStep("p", nil, true)
	var dup *DuplicateStepError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "A", dup.Section)
	require.Equal(t, "p", dup.Step)
	require.Equal(t, 1, s.Len())
}

func TestSection_StartIgnoresDisabled(t *testing.T) {
	s := buildSection(t, sectionDef{name: "A", steps: []stepDef{
		{name: "p", disabled: true},
		{name: "q"},
	}})
	require.Equal(t, "p", s.Start().Name())
	require.Equal(t, 0, s.Cursor())
}

func TestSection_AdvanceSkipsDisabled(t *testing.T) {
	s := buildSection(t, sectionDef{name: "A", steps: []stepDef{
		{name: "p"},
		{name: "q", disabled: true},
		{name: "r"},
	}})

	require.Equal(t, "p", s.Start().Name())
	require.Equal(t, "r", s.Advance().Name())
	require.Nil(t, s.Advance(), "section should be exhausted")
	require.Equal(t, 3, s.Cursor(), "cursor rests one past the end")

	s.Unadvance()
	require.Equal(t, 2, s.Cursor())
}

func TestSection_BackwardsSkipsDisabled(t *testing.T) {
	s := buildSection(t, sectionDef{name: "A", steps: []stepDef{
		{name: "p"},
		{name: "q", disabled: true},
		{name: "r"},
	}})

	require.Equal(t, "r", s.GotoEnd().Name())
	require.Equal(t, "p", s.Backwards().Name())
	require.Nil(t, s.Backwards())
	require.Nil(t, s.Backwards(), "repeated calls stay exhausted")
	require.Equal(t, "p", s.Advance().Name(), "advance from before-start lands on the first enabled step")
}

func TestSection_GotoEndSkipsTrailingDisabled(t *testing.T) {
	s := buildSection(t, sectionDef{name: "A", steps: []stepDef{
		{name: "p"},
		{name: "q"},
		{name: "r", disabled: true},
	}})
	require.Equal(t, "q", s.GotoEnd().Name())
}

func TestSection_AllDisabled(t *testing.T) {
	s := buildSection(t, sectionDef{name: "A", steps: []stepDef{
		{name: "p", disabled: true},
		{name: "q", disabled: true},
	}})
	require.False(t, s.Navigable())

	s.Start()
	assert.Nil(t, s.Advance())
	s.Start()
	assert.Nil(t, s.Backwards())
	assert.Nil(t, s.GotoEnd())
}

func TestSection_IsComplete(t *testing.T) {
	require.True(t, NewSection("empty").IsComplete())

	s := buildSection(t, sectionDef{name: "A", steps: steps("p", "q")})
	require.False(t, s.IsComplete())

	for _, st := range s.Steps() {
		st.Enter()
	}
	require.True(t, s.IsComplete())

	last, _ := s.Step("q")
	last.Content().(*fakeContent).complete = false
	require.False(t, s.IsComplete())

	last.SetDisabled(true)
	require.True(t, s.IsComplete(), "trailing disabled step degrades to complete")
}
