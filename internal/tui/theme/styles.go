package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	SidebarItem     lipgloss.Style
	SidebarActive   lipgloss.Style
	SidebarDisabled lipgloss.Style
	SidebarBorder   lipgloss.Style

	PanelTitle lipgloss.Style
	HelpPanel  lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style

	Label       lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	DiffInsert lipgloss.Style
	DiffDelete lipgloss.Style
	DiffHunk   lipgloss.Style
}
