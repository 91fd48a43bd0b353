package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme tightens padding so more result rows fit the window
type CompactTheme struct {
	base fyne.Theme
}

// NewCompactTheme creates a compact theme on top of the default one
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{base: theme.DefaultTheme()}
}

var (
	accentRed     = color.NRGBA{R: 204, G: 32, B: 32, A: 255}
	successGreen  = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	headerLight   = color.NRGBA{R: 236, G: 236, B: 236, A: 255}
	headerDark    = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	selectedLight = color.NRGBA{R: 204, G: 32, B: 32, A: 48}
	selectedDark  = color.NRGBA{R: 204, G: 32, B: 32, A: 96}
)

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accentRed
	case theme.ColorNameSuccess:
		return successGreen
	case theme.ColorNameHeaderBackground:
		if dark {
			return headerDark
		}
		return headerLight
	case theme.ColorNameSelection:
		if dark {
			return selectedDark
		}
		return selectedLight
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	}
	return t.base.Size(name)
}
