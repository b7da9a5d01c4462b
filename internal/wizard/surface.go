package wizard

// Surface is the presentation side of the wizard. The engine issues exactly
// one render command per handled intent, after its cursors are settled.
type Surface interface {
	// DisplayStep renders step as the current screen.
	DisplayStep(step *Step)
	// ShowBlockingMessage shows text until acknowledged, then returns to step.
	ShowBlockingMessage(text string, returnTo *Step)
	// CloseWizard dismisses the wizard without committing.
	CloseWizard()
	// WizardFinished reports a successful commit.
	WizardFinished()
	// SetSectionEnabled updates the sidebar affordance of a section.
	SetSectionEnabled(index int, enabled bool)
	// SetForwardEnabled updates the forward affordance.
	SetForwardEnabled(enabled bool)
}

type nopSurface struct{}

func (nopSurface) DisplayStep(*Step)                 {}
func (nopSurface) ShowBlockingMessage(string, *Step) {}
func (nopSurface) CloseWizard()                      {}
func (nopSurface) WizardFinished()                   {}
func (nopSurface) SetSectionEnabled(int, bool)       {}
func (nopSurface) SetForwardEnabled(bool)            {}

// IntentKind enumerates the navigation intents a surface can raise.
type IntentKind int

const (
	IntentNext IntentKind = iota
	IntentPrev
	IntentHelp
	IntentSection // sidebar jump, Section names the target
)

func (k IntentKind) String() string {
	switch k {
	case IntentNext:
		return "next"
	case IntentPrev:
		return "prev"
	case IntentHelp:
		return "help"
	case IntentSection:
		return "section"
	default:
		return "unknown"
	}
}

// Intent is a single user action routed through Dispatch.
type Intent struct {
	Kind    IntentKind
	Section string
}
