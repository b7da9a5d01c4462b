package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatppuccinMocha_Palette(t *testing.T) {
	th := NewCatppuccinMocha()
	assert.Equal(t, "catppuccin-mocha", th.Name)
	assert.True(t, th.IsDark)
	assert.Equal(t, "#cba6f7", th.Primary)
	assert.Equal(t, "#1e1e2e", th.BgBase)
	assert.Equal(t, "#f38ba8", th.Error)
}

func TestCurrentAndSetCurrent(t *testing.T) {
	orig := Current()
	t.Cleanup(func() { SetCurrent(orig) })

	custom := NewCatppuccinMocha()
	custom.Name = "custom"
	SetCurrent(custom)
	require.Equal(t, "custom", Current().Name)

	SetCurrent(nil)
	require.Equal(t, "custom", Current().Name, "nil theme is ignored")
}

func TestStylesAreCached(t *testing.T) {
	th := NewCatppuccinMocha()
	require.Same(t, th.S(), th.S())
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
	assert.Equal(t, "#000000", InterpolateColor("bad", "#000000", 0.5))
}
