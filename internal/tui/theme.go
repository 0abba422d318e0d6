package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers.
//
// The board must stay readable on light and dark terminals, so colors are
// AdaptiveColor pairs and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

type palette struct {
	Muted        lipgloss.AdaptiveColor
	SurfaceFg    lipgloss.AdaptiveColor
	ControlBg    lipgloss.AdaptiveColor
	SelectedBg   lipgloss.AdaptiveColor
	SelectedFg   lipgloss.AdaptiveColor
	CardBorder   lipgloss.AdaptiveColor
	CardSelected lipgloss.AdaptiveColor
	Accent       lipgloss.AdaptiveColor
	AccentFg     lipgloss.AdaptiveColor
	DropTarget   lipgloss.AdaptiveColor
	Error        lipgloss.AdaptiveColor
}

var profiles = map[string]palette{
	"default": {
		Muted:        ac("240", "243"),
		SurfaceFg:    ac("235", "252"),
		ControlBg:    ac("252", "235"),
		SelectedBg:   ac("#e9e9e9", "#262626"),
		SelectedFg:   ac("235", "255"),
		CardBorder:   ac("250", "243"),
		CardSelected: ac("232", "255"),
		Accent:       ac("27", "62"),
		AccentFg:     ac("255", "235"),
		DropTarget:   ac("28", "42"),
		Error:        ac("160", "196"),
	},
	"neon": {
		Muted:        ac("244", "245"),
		SurfaceFg:    ac("234", "255"),
		ControlBg:    ac("255", "234"),
		SelectedBg:   ac("225", "53"),
		SelectedFg:   ac("53", "225"),
		CardBorder:   ac("177", "99"),
		CardSelected: ac("201", "213"),
		Accent:       ac("201", "213"),
		AccentFg:     ac("255", "16"),
		DropTarget:   ac("45", "51"),
		Error:        ac("160", "203"),
	},
	"mono": {
		Muted:        ac("244", "244"),
		SurfaceFg:    ac("16", "255"),
		ControlBg:    ac("253", "236"),
		SelectedBg:   ac("250", "240"),
		SelectedFg:   ac("16", "255"),
		CardBorder:   ac("248", "240"),
		CardSelected: ac("16", "255"),
		Accent:       ac("16", "255"),
		AccentFg:     ac("255", "16"),
		DropTarget:   ac("16", "255"),
		Error:        ac("16", "255"),
	},
}

var colors = profiles["default"]

// applyAppearance picks the palette: KANBAN_TUI_PROFILE, then the config profile.
// Unknown ids keep the default palette.
func applyAppearance(configured string) {
	id := strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_TUI_PROFILE")))
	if id == "" {
		id = strings.ToLower(strings.TrimSpace(configured))
	}
	if p, ok := profiles[id]; ok {
		colors = p
		return
	}
	colors = profiles["default"]
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colors.Muted))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI, so only
// NO_COLOR is respected and the rest follows the terminal.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection for AdaptiveColor.
//
// Priority:
// 1) KANBAN_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
