package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown for the terminal. Headless and colourless runs
// get the notty style, which keeps the text plain.
func Markdown(theme *Theme, hm *HeadlessManager, text string) (string, error) {
	style := glamour.WithAutoStyle()
	if theme.NoColor || hm.IsHeadless() {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
