package answers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Store {
	s := New()
	s.Set("profile", "prod")
	s.Set("reporting.enabled", true)
	s.Set("reporting.endpoint.url", "https://collector.example.com")
	s.Set("output.stdout", false)
	s.Set("reporting.endpoint.token", "s3cret")
	return s
}

func TestStore_OrderAndAccessors(t *testing.T) {
	s := sample()
	s.Set("profile", "staging")

	assert.Equal(t, []string{
		"profile",
		"reporting.enabled",
		"reporting.endpoint.url",
		"output.stdout",
		"reporting.endpoint.token",
	}, s.Keys(), "overwriting keeps the original position")
	assert.Equal(t, "staging", s.String("profile"))
	assert.True(t, s.Bool("reporting.enabled"))
	assert.False(t, s.Bool("output.stdout"))
	assert.Empty(t, s.String("missing"))

	s.Set("count", 3)
	assert.Equal(t, "3", s.String("count"))
	s.Set("flag", "yes")
	assert.True(t, s.Bool("flag"))

	s.Delete("reporting.enabled")
	s.Delete("never-set")
	_, ok := s.Get("reporting.enabled")
	assert.False(t, ok)
	assert.Equal(t, 6, s.Len())
}

func TestStore_Prune(t *testing.T) {
	s := sample()
	pruned := s.Prune([]string{"reporting.endpoint", "output.stdout"})

	assert.Equal(t, []string{"profile", "reporting.enabled"}, pruned.Keys())
	assert.Equal(t, 5, s.Len(), "prune must not touch the original")
}

func TestStore_Merge(t *testing.T) {
	s := New()
	s.Set("a", 1)
	other := New()
	other.Set("b", 2)
	other.Set("a", 3)

	s.Merge(other)
	assert.Equal(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, "3", s.String("a"))
}

func TestStore_Tree(t *testing.T) {
	tree, err := sample().Tree()
	require.NoError(t, err)

	reporting := tree["reporting"].(map[string]any)
	endpoint := reporting["endpoint"].(map[string]any)
	assert.Equal(t, "https://collector.example.com", endpoint["url"])
	assert.Equal(t, true, reporting["enabled"])
}

func TestStore_TreeConflict(t *testing.T) {
	for _, order := range [][]string{{"a", "a.b"}, {"a.b", "a"}} {
		s := New()
		for _, k := range order {
			s.Set(k, "x")
		}
		_, err := s.Tree()
		var conflict *KeyConflictError
		require.True(t, errors.As(err, &conflict), "order %v", order)
		assert.Equal(t, "a", conflict.Key)

		_, err = s.Marshal(FormatYAML)
		require.Error(t, err)
	}
}

func TestMarshal_YAMLKeepsOrder(t *testing.T) {
	out, err := sample().Marshal(FormatYAML)
	require.NoError(t, err)

	want := `profile: prod
reporting:
  enabled: true
  endpoint:
    url: https://collector.example.com
    token: s3cret
output:
  stdout: false
`
	assert.Equal(t, want, string(out))
}

func TestMarshal_TOML(t *testing.T) {
	out, err := sample().Marshal(FormatTOML)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "profile = 'prod'")
	assert.Contains(t, text, "[reporting.endpoint]")
	assert.Contains(t, text, "url = 'https://collector.example.com'")
	assert.Contains(t, text, "stdout = false")
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := New().Marshal("ini")
	require.Error(t, err)
}

func TestParseRoundTrip(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			out, err := sample().Marshal(format)
			require.NoError(t, err)

			parsed, err := Parse(out, format)
			require.NoError(t, err)
			assert.ElementsMatch(t, sample().Keys(), parsed.Keys())
			assert.Equal(t, "https://collector.example.com", parsed.String("reporting.endpoint.url"))
			assert.True(t, parsed.Bool("reporting.enabled"))
		})
	}
}

func TestParse_YAMLEdgeCases(t *testing.T) {
	s, err := Parse([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	_, err = Parse([]byte("- a\n- b\n"), FormatYAML)
	require.Error(t, err)

	s, err = Parse([]byte("tags: [a, b]\n"), FormatYAML)
	require.NoError(t, err)
	v, _ := s.Get("tags")
	assert.Equal(t, []any{"a", "b"}, v)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 8080\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", s.String("server.port"))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatForPath("x/Agent.TOML"))
	assert.Equal(t, FormatYAML, FormatForPath("agent.yml"))
	assert.Equal(t, ".toml", Extension(FormatTOML))
	assert.Equal(t, ".yaml", Extension(FormatYAML))
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("a: 1\n", "a: 1\n", "agent.yaml"))

	d := Diff("a: 1\nb: 2\n", "a: 1\nb: 3\n", "agent.yaml")
	assert.True(t, strings.HasPrefix(d, "--- a/agent.yaml\n+++ b/agent.yaml\n"), d)
	assert.Contains(t, d, "-b: 2\n")
	assert.Contains(t, d, "+b: 3\n")
}
