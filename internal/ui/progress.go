package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Progress starts progress bars for runs over several entities.
type Progress interface {
	Start(title string, total int) ProgressBar
}

// ProgressBar tracks one run.
type ProgressBar interface {
	// Step marks one more item done and shows its label.
	Step(label string)

	// Done completes the bar.
	Done()
}

type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	out      io.Writer
}

// NewProgress creates a Progress writing to out. Headless or colourless
// runs print one line per step.
func NewProgress(theme *Theme, hm *HeadlessManager, out io.Writer) Progress {
	return &progressImpl{theme: theme, headless: hm, out: out}
}

func (p *progressImpl) Start(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return &lineProgressBar{theme: p.theme, title: title, total: total, out: p.out}
	}
	return newAnimatedProgressBar(p.theme, title, total, p.out)
}

type (
	stepMsg string
	doneMsg struct{}
)

// progressModel is the bubbletea model of the animated bar.
type progressModel struct {
	bar     progress.Model
	title   string
	label   string
	current int
	total   int
	done    bool
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.current = min(m.current+1, m.total)
		m.label = string(msg)
	case doneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("%s %s [%d/%d] %s\n", m.title, m.bar.ViewAs(pct), m.current, m.total, m.label)
}

// animatedProgressBar runs its bubbletea program in a goroutine that only
// receives messages.
type animatedProgressBar struct {
	program *tea.Program
	once    sync.Once
}

func newAnimatedProgressBar(theme *Theme, title string, total int, out io.Writer) *animatedProgressBar {
	m := progressModel{
		bar:   progress.New(progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary), progress.WithWidth(40)),
		title: theme.Title(title),
		total: total,
	}
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithInput(nil))
	go func() {
		_, _ = p.Run()
	}()
	return &animatedProgressBar{program: p}
}

func (b *animatedProgressBar) Step(label string) {
	b.program.Send(stepMsg(label))
}

func (b *animatedProgressBar) Done() {
	b.once.Do(func() {
		b.program.Send(doneMsg{})
		b.program.Wait()
	})
}

// lineProgressBar prints a line per step.
type lineProgressBar struct {
	theme   *Theme
	title   string
	total   int
	current int
	out     io.Writer
}

func (b *lineProgressBar) Step(label string) {
	b.current = min(b.current+1, b.total)
	_, _ = fmt.Fprintf(b.out, "%s [%d/%d] %s\n", b.title, b.current, b.total, b.theme.Muted(label))
}

func (b *lineProgressBar) Done() {}
