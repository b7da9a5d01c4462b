// Package tui is the terminal surface of the wizard: it draws the current
// step, the section sidebar and the nav buttons, and turns keys and clicks
// into navigation intents.
package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/state"
	"github.com/mark3labs/confwiz/internal/tui/steps"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// Outcome is how a wizard run ended.
type Outcome int

const (
	OutcomePending  Outcome = iota // still running
	OutcomeFinished                // commit succeeded
	OutcomeClosed                  // backed out of the first step
	OutcomeAborted                 // ctrl+c
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeClosed:
		return "closed"
	case OutcomeAborted:
		return "aborted"
	default:
		return "pending"
	}
}

// Options configures the App.
type Options struct {
	// Title is shown in the header.
	Title string
	// DataDir holds the persisted UI state. Empty disables persistence.
	DataDir string
}

// App is the bubbletea model and the wizard's Surface.
type App struct {
	wizard  *wizard.Wizard
	keys    KeyMap
	title   string
	dataDir string
	ui      *state.UIState

	width  int
	height int
	layout Layout

	sidebar *Sidebar
	buttons *ButtonBar
	help    *HelpPanel
	dialog  *Dialog

	widget         steps.Widget
	forwardEnabled bool
	status         string
	pending        []tea.Cmd
	outcome        Outcome
	quitting       bool
}

var _ wizard.Surface = (*App)(nil)

// NewApp creates the surface and attaches it to w.
func NewApp(w *wizard.Wizard, opts Options) *App {
	names := make([]string, 0, len(w.Sections()))
	for _, s := range w.Sections() {
		names = append(names, s.Name())
	}

	ui := state.DefaultUIState()
	if opts.DataDir != "" {
		ui = state.Load(opts.DataDir)
	}

	a := &App{
		wizard:  w,
		keys:    DefaultKeyMap(),
		title:   opts.Title,
		dataDir: opts.DataDir,
		ui:      ui,
		sidebar: NewSidebar(names),
		buttons: NewButtonBar(nil),
		help:    NewHelpPanel(),
		dialog:  NewDialog(),
	}
	if a.title == "" {
		a.title = "confwiz"
	}
	w.SetSurface(a)
	return a
}

// Outcome reports how the run ended.
func (a *App) Outcome() Outcome { return a.outcome }

// Dialog exposes the blocking message dialog.
func (a *App) Dialog() *Dialog { return a.dialog }

// Sidebar exposes the section list.
func (a *App) Sidebar() *Sidebar { return a.sidebar }

// ForwardEnabled reports the Next affordance.
func (a *App) ForwardEnabled() bool { return a.forwardEnabled }

// SidebarVisible reports whether the sidebar is requested.
func (a *App) SidebarVisible() bool { return a.ui.Sidebar.Visible }

// Status returns the footer notice, if any.
func (a *App) Status() string { return a.status }

// DisplayStep implements wizard.Surface.
func (a *App) DisplayStep(step *wizard.Step) {
	logger.Debug("Displaying %s/%s", step.SectionName(), step.Name())
	if a.widget != nil {
		a.widget.Blur()
	}
	a.widget, _ = step.Content().(steps.Widget)
	a.status = ""
	a.sidebar.SetCurrent(a.wizard.SectionIndex())
	a.help.SetContent(step.HelpText())
	a.sizeWidget()
	if a.widget != nil {
		a.pending = append(a.pending, a.widget.Focus())
	}
}

// ShowBlockingMessage implements wizard.Surface.
func (a *App) ShowBlockingMessage(text string, returnTo *wizard.Step) {
	logger.Warn("Blocking message on %s: %s", returnTo.Name(), text)
	if a.widget != nil {
		a.widget.Blur()
	}
	a.dialog.Show(ErrorTitle, text, func() tea.Cmd {
		if a.widget == nil {
			return nil
		}
		return a.widget.Focus()
	})
}

// CloseWizard implements wizard.Surface.
func (a *App) CloseWizard() {
	if a.outcome == OutcomePending {
		a.outcome = OutcomeClosed
	}
	logger.Info("Wizard closed (%s)", a.outcome)
	a.quitting = true
}

// WizardFinished implements wizard.Surface.
func (a *App) WizardFinished() {
	logger.Info("Wizard finished")
	a.outcome = OutcomeFinished
	a.quitting = true
}

// SetSectionEnabled implements wizard.Surface.
func (a *App) SetSectionEnabled(index int, enabled bool) {
	a.sidebar.SetEnabled(index, enabled)
}

// SetForwardEnabled implements wizard.Surface.
func (a *App) SetForwardEnabled(enabled bool) {
	a.forwardEnabled = enabled
}

// Init displays the first step.
func (a *App) Init() tea.Cmd {
	a.wizard.Open()
	return a.flush(nil)
}

// flush batches cmd with the focus commands queued by the surface calls and
// appends tea.Quit once the wizard is done.
func (a *App) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(a.pending, cmd)
	a.pending = nil
	if a.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case tea.KeyPressMsg:
		return a, a.flush(a.handleKey(msg))

	case tea.MouseClickMsg:
		return a, a.flush(a.handleClick(msg))

	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		if a.wizard.HelpVisible() && inRect(a.layout.Help, mouse.X, mouse.Y) {
			return a, a.help.Update(msg)
		}
	}

	return a, a.flush(a.forward(msg))
}

// forward hands msg to the step widget and re-derives the affordances.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.widget == nil || a.dialog.IsVisible() {
		return nil
	}
	if _, ok := msg.(tea.KeyPressMsg); ok {
		a.status = ""
	}
	cmd := a.widget.Update(msg)
	a.wizard.Refresh()
	return cmd
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Abort) {
		a.outcome = OutcomeAborted
		a.wizard.Abort()
		return nil
	}

	// The dialog is modal.
	if a.dialog.IsVisible() {
		return a.dialog.Update(msg)
	}

	consumes := false
	if kc, ok := a.widget.(steps.KeyConsumer); ok {
		consumes = kc.ConsumesKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Next):
		a.next()
		return nil
	case key.Matches(msg, a.keys.Enter) && !consumes:
		a.next()
		return nil
	case key.Matches(msg, a.keys.Back) && !consumes:
		a.dispatch(wizard.Intent{Kind: wizard.IntentPrev})
		return nil
	case key.Matches(msg, a.keys.Help):
		a.toggleHelp()
		return nil
	case key.Matches(msg, a.keys.Sidebar):
		a.toggleSidebar()
		return nil
	}
	for i, b := range a.keys.Jump {
		if key.Matches(msg, b) {
			a.selectSection(i)
			return nil
		}
	}

	return a.forward(msg)
}

func (a *App) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil
	}

	// Dialog takes priority - any click dismisses it
	if a.dialog.IsVisible() {
		return a.dialog.HandleClick(mouse.X, mouse.Y)
	}

	if i, ok := a.sidebar.SectionAt(mouse.X, mouse.Y); ok {
		a.selectSection(i)
		return nil
	}

	if inRect(a.layout.Buttons, mouse.X, mouse.Y) {
		switch a.buttons.ButtonAt(mouse.X - a.layout.Buttons.Min.X) {
		case ButtonBack:
			a.dispatch(wizard.Intent{Kind: wizard.IntentPrev})
		case ButtonNext:
			a.next()
		case ButtonHelp:
			a.toggleHelp()
		}
		return nil
	}

	return a.forward(msg)
}

func (a *App) dispatch(in wizard.Intent) {
	if err := a.wizard.Dispatch(in); err != nil {
		logger.Debug("%s: %v", in.Kind, err)
	}
}

// next is ignored while the step is incomplete, like the disabled button.
func (a *App) next() {
	if !a.forwardEnabled {
		a.status = "Complete this step to continue."
		return
	}
	a.dispatch(wizard.Intent{Kind: wizard.IntentNext})
}

func (a *App) selectSection(i int) {
	name := a.sidebar.Name(i)
	if name == "" || !a.sidebar.Enabled(i) {
		return
	}
	a.dispatch(wizard.Intent{Kind: wizard.IntentSection, Section: name})
}

func (a *App) toggleHelp() {
	a.dispatch(wizard.Intent{Kind: wizard.IntentHelp})
	a.relayout()
}

func (a *App) toggleSidebar() {
	a.ui.Sidebar.Visible = !a.ui.Sidebar.Visible
	if a.dataDir != "" {
		if err := state.Save(a.dataDir, a.ui); err != nil {
			logger.Warn("Failed to save UI state: %v", err)
		}
	}
	a.relayout()
}

func (a *App) relayout() {
	a.layout = CalculateLayout(a.width, a.height, a.ui.Sidebar.Visible, a.wizard.HelpVisible())
	a.dialog.SetSize(a.width, a.height)
	a.buttons.SetWidth(a.layout.Buttons.Dx())
	a.help.SetSize(a.layout.Help.Dx(), a.layout.Help.Dy())
	a.sizeWidget()
}

// sizeWidget gives the widget the main area minus the step title.
func (a *App) sizeWidget() {
	if a.widget == nil || a.layout.Main.Dx() == 0 {
		return
	}
	a.widget.SetSize(max(a.layout.Main.Dx()-2, 10), max(a.layout.Main.Dy()-2, 3))
}

// isLastStep reports whether Next would run the commit.
func (a *App) isLastStep() bool {
	sections := a.wizard.Sections()
	for i := a.wizard.SectionIndex() + 1; i < len(sections); i++ {
		if sections[i].Navigable() {
			return false
		}
	}
	sec := a.wizard.CurrentSection()
	for i := sec.Cursor() + 1; i < sec.Len(); i++ {
		if !sec.Steps()[i].Disabled() {
			return false
		}
	}
	return true
}

// View renders the current view.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true                    // Full-screen mode
	view.MouseMode = tea.MouseModeCellMotion // Enable mouse events

	if a.quitting {
		// Return minimal view when quitting - exit alt screen for proper terminal restoration
		view.AltScreen = false
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// Draw paints every component onto scr.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	l := a.layout
	s := theme.Current().S()

	step := a.wizard.CurrentStep()
	meta := fmt.Sprintf("%s · %d/%d", step.SectionName(), a.wizard.SectionIndex()+1, len(a.wizard.Sections()))
	DrawHeader(scr, l.Header, a.title, meta)

	if l.Sidebar.Dx() > 0 {
		a.sidebar.Draw(scr, l.Sidebar)
	}

	if l.Main.Dy() > 0 {
		title := step.Name()
		if t, ok := step.Content().(steps.Title); ok && t.Title() != "" {
			title = t.Title()
		}
		body := ""
		if a.widget != nil {
			body = a.widget.View()
		}
		content := s.PanelTitle.Render(title) + "\n" + body
		uv.NewStyledString(content).Draw(scr, uv.Rectangle{
			Min: uv.Position{X: l.Main.Min.X + 1, Y: l.Main.Min.Y},
			Max: l.Main.Max,
		})
	}

	if a.wizard.HelpVisible() {
		a.help.Draw(scr, l.Help)
	}

	a.buttons.SetButtons(NavButtons(a.forwardEnabled, a.isLastStep(), a.wizard.HelpVisible()))
	DrawText(scr, l.Buttons, a.buttons.Render())

	footer := steps.RenderHintBar(a.keys.HintPairs()...)
	if a.status != "" {
		footer = s.ErrorText.Render(a.status)
	}
	DrawText(scr, l.Footer, footer)

	a.dialog.Draw(scr, area)
}
