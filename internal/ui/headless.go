package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether prompts and animations can run. Without
// a terminal on stdin, or with --no-interaction, every prompt takes its
// default answer.
type HeadlessManager struct {
	forced  *bool
	answers map[string]bool
}

// NewHeadlessManager creates a HeadlessManager that detects headless mode
// from the TTY state of os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{}
}

// IsHeadless reports whether the UI runs without prompts.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// ForceHeadless overrides TTY detection.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce reverts to TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}

// SetAnswer records the headless answer of the confirmation named key,
// overriding the prompt's own default.
func (h *HeadlessManager) SetAnswer(key string, yes bool) {
	if h.answers == nil {
		h.answers = make(map[string]bool)
	}
	h.answers[key] = yes
}

// Answer returns the recorded headless answer for key.
func (h *HeadlessManager) Answer(key string) (bool, bool) {
	yes, ok := h.answers[key]
	return yes, ok
}
