package tui

import uv "github.com/charmbracelet/ultraviolet"

// Layout breakpoints and dimensions
const (
	// CompactWidthBreakpoint is the minimum width that shows the sidebar
	CompactWidthBreakpoint = 70
	// SidebarWidth is the width of the section sidebar
	SidebarWidth = 26
	// HeaderHeight is the title plus its rule
	HeaderHeight = 2
	// ButtonBarHeight is the height of the nav button row
	ButtonBarHeight = 1
	// FooterHeight is the height of the key hint row
	FooterHeight = 1
	// MinHelpHeight is the smallest help panel, borders included
	MinHelpHeight = 6
)

// Layout defines the rectangular regions for all UI components
type Layout struct {
	Compact bool
	Area    uv.Rectangle
	Header  uv.Rectangle
	Sidebar uv.Rectangle
	Main    uv.Rectangle
	Help    uv.Rectangle
	Buttons uv.Rectangle
	Footer  uv.Rectangle
}

// CalculateLayout computes the layout rectangles based on terminal dimensions.
// The sidebar is dropped below the width breakpoint even when requested.
func CalculateLayout(width, height int, sidebar, help bool) Layout {
	compact := width < CompactWidthBreakpoint

	area := uv.Rectangle{
		Max: uv.Position{X: width, Y: height},
	}

	header, rest := uv.SplitVertical(area, uv.Fixed(min(HeaderHeight, area.Dy())))
	bodyHeight := max(rest.Dy()-ButtonBarHeight-FooterHeight, 0)
	body, bottom := uv.SplitVertical(rest, uv.Fixed(bodyHeight))
	buttons, footer := uv.SplitVertical(bottom, uv.Fixed(min(ButtonBarHeight, bottom.Dy())))

	main := body
	var sidebarRect uv.Rectangle
	if sidebar && !compact {
		sidebarRect, main = uv.SplitHorizontal(body, uv.Fixed(SidebarWidth))
		main.Min.X++ // 1-char gap after the sidebar border
	}

	var helpRect uv.Rectangle
	if help {
		helpHeight := max(MinHelpHeight, main.Dy()/3)
		if helpHeight < main.Dy() {
			main, helpRect = uv.SplitVertical(main, uv.Fixed(main.Dy()-helpHeight))
		}
	}

	return Layout{
		Compact: compact,
		Area:    area,
		Header:  header,
		Sidebar: sidebarRect,
		Main:    main,
		Help:    helpRect,
		Buttons: buttons,
		Footer:  footer,
	}
}
