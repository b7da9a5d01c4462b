package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/confwiz/internal/tui/theme"
)

// DrawText renders plain text at a position
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// DrawStyled renders lipgloss-styled content at a position
func DrawStyled(scr uv.Screen, area uv.Rectangle, style lipgloss.Style, text string) {
	content := style.Width(area.Dx()).Height(area.Dy()).Render(text)
	uv.NewStyledString(content).Draw(scr, area)
}

// DrawHeader renders "Title ─── meta" across the first row of area and a
// blank row below it.
func DrawHeader(scr uv.Screen, area uv.Rectangle, title, meta string) {
	if area.Dy() == 0 {
		return
	}
	s := theme.Current().S()
	styledTitle := s.HeaderTitle.Render(title)
	styledMeta := ""
	if meta != "" {
		styledMeta = " " + s.HeaderMeta.Render(meta)
	}
	ruleWidth := area.Dx() - lipgloss.Width(styledTitle) - lipgloss.Width(styledMeta) - 1
	if ruleWidth < 0 {
		ruleWidth = 0
	}
	line := styledTitle + " " + s.Muted.Render(strings.Repeat("─", ruleWidth)) + styledMeta

	DrawText(scr, uv.Rectangle{
		Min: area.Min,
		Max: uv.Position{X: area.Max.X, Y: area.Min.Y + 1},
	}, line)
}

// DrawVerticalDivider renders a vertical dividing line
func DrawVerticalDivider(scr uv.Screen, area uv.Rectangle, style lipgloss.Style) {
	for i := 0; i < area.Dy(); i++ {
		lineArea := uv.Rectangle{
			Min: uv.Position{X: area.Min.X, Y: area.Min.Y + i},
			Max: uv.Position{X: area.Min.X + 1, Y: area.Min.Y + i + 1},
		}
		uv.NewStyledString(style.Render("│")).Draw(scr, lineArea)
	}
}

// inRect reports whether the cell x,y lies inside area.
func inRect(area uv.Rectangle, x, y int) bool {
	return x >= area.Min.X && x < area.Max.X && y >= area.Min.Y && y < area.Max.Y
}
