package wizard

// DefaultHelpText is shown for steps whose content provides no help of its own.
const DefaultHelpText = "There is no help available for this step."

// Content is the capability set every step kind provides to the engine.
// Persistence of answers is the content's own business.
type Content interface {
	// IsComplete reports whether the step's inputs are filled in enough to move on.
	IsComplete() bool
	// Validate returns a user-facing error that blocks forward navigation, or nil.
	Validate() error
	// OnEnter is called each time the step is displayed.
	OnEnter()
	// HelpText returns markdown shown in the help panel.
	HelpText() string
}

// Resetter is implemented by contents that hold state cleared by a full reset.
type Resetter interface {
	Reset()
}

// BaseContent implements Content with the defaults: always complete, never
// invalid, no-op enter hook, stock help text. Embed it to override selectively.
type BaseContent struct {
	Help string
}

func (BaseContent) IsComplete() bool { return true }

func (BaseContent) Validate() error { return nil }

func (BaseContent) OnEnter() {}

func (b BaseContent) HelpText() string {
	if b.Help == "" {
		return DefaultHelpText
	}
	return b.Help
}
