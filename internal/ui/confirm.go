package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// Confirmer asks yes/no questions.
type Confirmer interface {
	// Confirm asks title and returns the answer. key identifies the
	// question for headless answers; def is the preselected answer.
	Confirm(key, title string, def bool) (bool, error)
}

type confirmer struct {
	theme    *Theme
	headless *HeadlessManager
}

// NewConfirmer creates a Confirmer backed by huh.
func NewConfirmer(theme *Theme, hm *HeadlessManager) Confirmer {
	return &confirmer{theme: theme, headless: hm}
}

func (c *confirmer) Confirm(key, title string, def bool) (bool, error) {
	if c.headless.IsHeadless() {
		if yes, ok := c.headless.Answer(key); ok {
			return yes, nil
		}
		return def, nil
	}

	answer := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&answer),
	)).WithTheme(c.theme.Huh())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return answer, nil
}
