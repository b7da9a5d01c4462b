package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/confwiz/internal/tui/theme"
)

// ErrorTitle heads every blocking message.
const ErrorTitle = "⚠ Cannot continue"

// maxDialogWidth caps the message column so long errors wrap.
const maxDialogWidth = 64

// Dialog is the modal that blocks the wizard until acknowledged.
type Dialog struct {
	title      string
	message    string
	button     string
	visible    bool
	width      int
	height     int
	onClose    func() tea.Cmd
	dialogArea uv.Rectangle // Screen area where dialog is drawn (for mouse hit detection)
}

// NewDialog creates a new dialog
func NewDialog() *Dialog {
	return &Dialog{
		visible: false,
		button:  "OK",
	}
}

// Show displays the dialog with the given title and message
func (d *Dialog) Show(title, message string, onClose func() tea.Cmd) {
	d.title = title
	d.message = message
	d.visible = true
	d.onClose = onClose
}

// Hide closes the dialog
func (d *Dialog) Hide() {
	d.visible = false
}

// IsVisible returns whether the dialog is visible
func (d *Dialog) IsVisible() bool {
	return d.visible
}

// Message returns the text on display.
func (d *Dialog) Message() string {
	return d.message
}

// SetSize updates the dialog's knowledge of screen size
func (d *Dialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Dialog) dismiss() tea.Cmd {
	d.Hide()
	if d.onClose != nil {
		return d.onClose()
	}
	return nil
}

// Update handles dialog input. Only the acknowledge keys do anything.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	if !d.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter", "space", "esc":
			return d.dismiss()
		}
	}
	return nil
}

// Render builds the bordered dialog box.
func (d *Dialog) Render() string {
	contentWidth := max(lipgloss.Width(d.title), min(lipgloss.Width(d.message), maxDialogWidth))
	if d.width > 0 {
		contentWidth = min(contentWidth, max(d.width-10, 10))
	}

	t := theme.Current()
	s := t.S()

	title := s.ModalTitle.Width(contentWidth).Render(d.title)
	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(d.message)
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Primary)).
		Padding(0, 2).
		Render(d.button)
	buttonLine := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(button)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		"",
		buttonLine,
	)
	return s.ModalContainer.Render(content)
}

// Draw renders the dialog centered on screen
func (d *Dialog) Draw(scr uv.Screen, area uv.Rectangle) {
	if !d.visible {
		return
	}

	dialog := d.Render()
	dialogWidth := lipgloss.Width(dialog)
	dialogHeight := lipgloss.Height(dialog)
	x := max((area.Dx()-dialogWidth)/2, 0)
	y := max((area.Dy()-dialogHeight)/2, 0)

	d.dialogArea = uv.Rectangle{
		Min: uv.Position{X: area.Min.X + x, Y: area.Min.Y + y},
		Max: uv.Position{X: area.Min.X + x + dialogWidth, Y: area.Min.Y + y + dialogHeight},
	}
	uv.NewStyledString(dialog).Draw(scr, d.dialogArea)
}

// HandleClick processes a mouse click. Clicking anywhere dismisses the dialog.
func (d *Dialog) HandleClick(x, y int) tea.Cmd {
	if !d.visible {
		return nil
	}
	return d.dismiss()
}
