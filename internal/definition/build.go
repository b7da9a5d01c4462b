package definition

import (
	"fmt"

	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/tui/steps"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// Options wires a built wizard to its collaborators.
type Options struct {
	// Store receives the answers. A fresh store is used when nil.
	Store *answers.Store
	// Commit runs after the last section.
	Commit wizard.CommitFunc
	// Preview feeds review steps. Without it they show the answers as YAML.
	Preview steps.PreviewFunc
}

type pendingToggle struct {
	toggle  *steps.Toggle
	section string
	refs    []string
}

// Build creates the step contents and assembles the wizard. Toggle targets
// are bound before the engine checks that every section can be navigated.
func Build(def *Definition, opts Options) (*wizard.Wizard, error) {
	store := opts.Store
	if store == nil {
		store = answers.New()
	}
	preview := opts.Preview
	if preview == nil {
		preview = answersPreview(store)
	}

	sections := make([]*wizard.Section, 0, len(def.Sections))
	byName := make(map[string]*wizard.Section, len(def.Sections))
	var toggles []pendingToggle

	for _, sec := range def.Sections {
		ws := wizard.NewSection(sec.Name)
		for _, st := range sec.Steps {
			content, err := newContent(st, store, preview)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", sec.Name, st.Name, err)
			}
			if _, err := ws.AddStep(st.Name, content, st.Disabled); err != nil {
				return nil, err
			}
			if t, ok := content.(*steps.Toggle); ok && len(st.Enables) > 0 {
				toggles = append(toggles, pendingToggle{toggle: t, section: sec.Name, refs: st.Enables})
			}
		}
		sections = append(sections, ws)
		byName[sec.Name] = ws
	}

	for _, p := range toggles {
		targets := make([]*wizard.Step, 0, len(p.refs))
		for _, ref := range p.refs {
			secName, stepName := target(p.section, ref)
			sec, ok := byName[secName]
			if !ok {
				return nil, fmt.Errorf("toggle %s enables unknown section %q", p.toggle.Key(), secName)
			}
			step, ok := sec.Step(stepName)
			if !ok {
				return nil, fmt.Errorf("toggle %s enables unknown step %q", p.toggle.Key(), ref)
			}
			targets = append(targets, step)
		}
		p.toggle.SetTargets(targets)
	}

	return wizard.New(sections, opts.Commit)
}

func newContent(st Step, store *answers.Store, preview steps.PreviewFunc) (steps.Step, error) {
	switch st.Kind {
	case KindInfo:
		return steps.NewInfo(st.Title, st.Body, st.Help), nil
	case KindText:
		return steps.NewText(store, steps.TextOptions{
			Key:         st.Key,
			Label:       labelOf(st),
			Placeholder: st.Placeholder,
			Default:     st.DefaultString(),
			Help:        st.Help,
			Pattern:     st.Pattern,
			Error:       st.Error,
			Required:    st.Required,
			Secret:      st.Secret,
		})
	case KindToggle:
		dflt, err := st.DefaultBool()
		if err != nil {
			return nil, err
		}
		return steps.NewToggle(store, steps.ToggleOptions{
			Key:     st.Key,
			Label:   labelOf(st),
			Default: dflt,
			Help:    st.Help,
		}), nil
	case KindChoice:
		return steps.NewChoice(store, steps.ChoiceOptions{
			Key:     st.Key,
			Label:   labelOf(st),
			Options: st.Options,
			Default: st.DefaultString(),
			Help:    st.Help,
		}), nil
	case KindEditor:
		return steps.NewEditor(store, steps.EditorOptions{
			Key:       st.Key,
			Label:     labelOf(st),
			Default:   st.DefaultString(),
			Help:      st.Help,
			Required:  st.Required,
			Extension: st.Extension,
		}), nil
	case KindReview:
		return steps.NewReview(st.Title, st.Help, preview), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", st.Kind)
	}
}

func labelOf(st Step) string {
	switch {
	case st.Label != "":
		return st.Label
	case st.Title != "":
		return st.Title
	default:
		return st.Name
	}
}

func answersPreview(store *answers.Store) steps.PreviewFunc {
	return func() (steps.Preview, error) {
		data, err := store.Marshal(answers.FormatYAML)
		if err != nil {
			return steps.Preview{}, err
		}
		return steps.Preview{Format: answers.FormatYAML, Content: string(data)}, nil
	}
}

// keyed is implemented by contents that store an answer.
type keyed interface {
	Key() string
}

// DisabledKeys returns the answer keys of every disabled step. Their values
// are left out of the output.
func DisabledKeys(w *wizard.Wizard) []string {
	var keys []string
	for _, sec := range w.Sections() {
		for _, st := range sec.Steps() {
			if !st.Disabled() {
				continue
			}
			if k, ok := st.Content().(keyed); ok && k.Key() != "" {
				keys = append(keys, k.Key())
			}
		}
	}
	return keys
}
