// Package definition describes a wizard in YAML and builds the navigation
// engine from it.
package definition

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mark3labs/confwiz/internal/answers"
	"gopkg.in/yaml.v3"
)

// Step kinds.
const (
	KindInfo   = "info"
	KindText   = "text"
	KindToggle = "toggle"
	KindChoice = "choice"
	KindEditor = "editor"
	KindReview = "review"
)

// DefaultProfileKey is the answer key naming the profile when the definition
// does not set one.
const DefaultProfileKey = "profile"

//go:embed default.yaml
var defaultYAML []byte

// Definition is a whole wizard.
type Definition struct {
	Name       string    `yaml:"name"`
	ProfileKey string    `yaml:"profile_key"`
	Sections   []Section `yaml:"sections"`
}

// Section is an ordered group of steps.
type Section struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step describes one screen. Which fields apply depends on Kind.
type Step struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"`
	Key         string   `yaml:"key,omitempty"`
	Title       string   `yaml:"title,omitempty"`
	Label       string   `yaml:"label,omitempty"`
	Body        string   `yaml:"body,omitempty"`
	Help        string   `yaml:"help,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Error       string   `yaml:"error,omitempty"`
	Disabled    bool     `yaml:"disabled,omitempty"`
	Required    bool     `yaml:"required,omitempty"`
	Secret      bool     `yaml:"secret,omitempty"`
	Options     []string `yaml:"options,omitempty"`
	Default     any      `yaml:"default,omitempty"`

	// Enables lists the steps a toggle controls, either "step" within the
	// toggle's own section or "Section/step".
	Enables   []string `yaml:"enables,omitempty"`
	Extension string   `yaml:"extension,omitempty"`
}

// DefaultString returns the default as text.
func (s Step) DefaultString() string {
	if s.Default == nil {
		return ""
	}
	return fmt.Sprint(s.Default)
}

// DefaultBool returns the default of a toggle.
func (s Step) DefaultBool() (bool, error) {
	switch v := s.Default.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("default %v is not a boolean", v)
	}
}

func (s Step) holdsAnswer() bool {
	switch s.Kind {
	case KindText, KindToggle, KindChoice, KindEditor:
		return true
	}
	return false
}

// Default returns the embedded wizard definition.
func Default() *Definition {
	def, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded definition: %v", err))
	}
	return def
}

// DefaultSource returns the YAML of the embedded definition.
func DefaultSource() []byte {
	return bytes.Clone(defaultYAML)
}

// Load reads a definition from path. An empty path yields Default.
func Load(path string) (*Definition, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	if def.ProfileKey == "" {
		def.ProfileKey = DefaultProfileKey
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// target resolves an enables entry relative to section.
func target(section, ref string) (string, string) {
	if sec, step, ok := strings.Cut(ref, "/"); ok {
		return sec, step
	}
	return section, ref
}

// Validate reports every problem found, joined.
func (d *Definition) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(d.Sections) == 0 {
		fail("definition has no sections")
	}

	names := make(map[string]map[string]Step, len(d.Sections))
	keys := make(map[string]string)
	shape := answers.New()
	for _, sec := range d.Sections {
		if sec.Name == "" {
			fail("section without a name")
			continue
		}
		if _, dup := names[sec.Name]; dup {
			fail("duplicate section %q", sec.Name)
			continue
		}
		if len(sec.Steps) == 0 {
			fail("section %q has no steps", sec.Name)
		}
		stepNames := make(map[string]Step, len(sec.Steps))
		names[sec.Name] = stepNames

		for _, st := range sec.Steps {
			where := sec.Name + "/" + st.Name
			if st.Name == "" {
				fail("section %q: step without a name", sec.Name)
				continue
			}
			if _, dup := stepNames[st.Name]; dup {
				fail("duplicate step %q", where)
				continue
			}
			stepNames[st.Name] = st

			switch st.Kind {
			case KindInfo, KindReview:
			case KindText, KindToggle, KindEditor:
			case KindChoice:
				if len(st.Options) == 0 {
					fail("%s: choice needs options", where)
				} else if dflt := st.DefaultString(); dflt != "" && !contains(st.Options, dflt) {
					fail("%s: default %q is not an option", where, dflt)
				}
			default:
				fail("%s: unknown kind %q", where, st.Kind)
				continue
			}

			if st.holdsAnswer() {
				if st.Key == "" {
					fail("%s: %s step needs a key", where, st.Kind)
				} else if other, dup := keys[st.Key]; dup {
					fail("%s: key %q already used by %s", where, st.Key, other)
				} else {
					keys[st.Key] = where
					shape.Set(st.Key, "")
				}
			}
			if st.Pattern != "" {
				if _, err := regexp.Compile(st.Pattern); err != nil {
					fail("%s: invalid pattern: %v", where, err)
				}
			}
			if st.Kind == KindToggle {
				if _, err := st.DefaultBool(); err != nil {
					fail("%s: %v", where, err)
				}
			} else if len(st.Enables) > 0 {
				fail("%s: only toggles can enable steps", where)
			}
		}
	}

	for _, sec := range d.Sections {
		for _, st := range sec.Steps {
			for _, ref := range st.Enables {
				secName, stepName := target(sec.Name, ref)
				steps, ok := names[secName]
				if !ok {
					fail("%s/%s: enables unknown section %q", sec.Name, st.Name, secName)
					continue
				}
				if _, ok := steps[stepName]; !ok {
					fail("%s/%s: enables unknown step %q", sec.Name, st.Name, secName+"/"+stepName)
					continue
				}
				if secName == sec.Name && stepName == st.Name {
					fail("%s/%s: a toggle cannot enable itself", sec.Name, st.Name)
				}
			}
		}
	}

	if _, err := shape.Tree(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
