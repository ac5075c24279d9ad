package ui

import (
	"fmt"
	"io"
)

// Console prints themed lines to a writer.
type Console struct {
	Out   io.Writer
	Theme *Theme
}

// NewConsole creates a Console.
func NewConsole(out io.Writer, theme *Theme) *Console {
	return &Console{Out: out, Theme: theme}
}

// Section prints a heading followed by a blank line.
func (c *Console) Section(title string) {
	_, _ = fmt.Fprintf(c.Out, "\n%s\n\n", c.Theme.Title(title))
}

// Line prints a plain line.
func (c *Console) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format+"\n", args...)
}

// Item prints a labelled entry such as "created  path".
func (c *Console) Item(label, detail string, ok bool) {
	style := c.Theme.Success
	if !ok {
		style = c.Theme.Warning
	}
	_, _ = fmt.Fprintf(c.Out, "  %s %s\n", style(fmt.Sprintf("%-26s", label)), c.Theme.Muted(detail))
}

// Error prints an error in the error style.
func (c *Console) Error(err error) {
	_, _ = fmt.Fprintf(c.Out, "%s\n", c.Theme.Error(err.Error()))
}
