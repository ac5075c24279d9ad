package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette colours, dark background variants.
const (
	ColorPrimary   = "#DA7756"
	ColorSecondary = "#7C3AED"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// Colors are the hex colours a Theme draws with.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme styles console output. A NoColor theme renders text unchanged.
type Theme struct {
	NoColor bool
	Colors  Colors

	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	errorS  lipgloss.Style
	muted   lipgloss.Style
}

// NewTheme creates the mesdgen theme.
func NewTheme(noColor bool) *Theme {
	t := &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   ColorPrimary,
			Secondary: ColorSecondary,
			Success:   ColorSuccess,
			Warning:   ColorWarning,
			Error:     ColorError,
			Muted:     ColorMuted,
		},
	}
	if noColor {
		plain := lipgloss.NewStyle()
		t.title, t.success, t.warning, t.errorS, t.muted = plain, plain, plain, plain, plain
		return t
	}
	t.title = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary)).Bold(true)
	t.success = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	t.warning = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	t.errorS = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
	t.muted = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	return t
}

// Title styles a section heading.
func (t *Theme) Title(s string) string { return t.title.Render(s) }

// Success styles a completed action.
func (t *Theme) Success(s string) string { return t.success.Render(s) }

// Warning styles a skipped or best-effort step.
func (t *Theme) Warning(s string) string { return t.warning.Render(s) }

// Error styles an error message.
func (t *Theme) Error(s string) string { return t.errorS.Render(s) }

// Muted styles secondary detail such as paths.
func (t *Theme) Muted(s string) string { return t.muted.Render(s) }

// Huh returns the prompt theme matching t.
func (t *Theme) Huh() *huh.Theme {
	if t.NoColor {
		return huh.ThemeBase()
	}
	h := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: ColorPrimary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}

	h.Focused.Base = h.Focused.Base.BorderForeground(border)
	h.Focused.Title = h.Focused.Title.Foreground(primary).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(muted)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(red)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(red)
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(green)
	h.Focused.FocusedButton = h.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	h.Focused.BlurredButton = h.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	h.Blurred = h.Focused
	h.Blurred.Base = h.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	return h
}
