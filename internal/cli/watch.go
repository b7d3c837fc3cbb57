package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/binoviz/bino/pkg/errors"
	"github.com/binoviz/bino/pkg/pipeline"
)

// runWatch re-renders the figure on a fixed interval until the user
// quits or the context is cancelled.
func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options, ff *figureFlags) error {
	m := watchModel{
		runner:   c.newRunner(ff.noCache),
		opts:     opts,
		interval: watchInterval(ff.watch),
	}
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err == tea.ErrProgramKilled || err == context.Canceled {
		return nil
	}
	return err
}

type tickMsg time.Time

type figureMsg struct {
	res *pipeline.Result
	err error
}

// watchModel holds the last rendered figure and a status line.
type watchModel struct {
	runner   *pipeline.Runner
	opts     pipeline.Options
	interval time.Duration

	lines   []string
	warning string
	renders int
}

func (m watchModel) Init() tea.Cmd {
	return m.render()
}

func (m watchModel) render() tea.Cmd {
	return func() tea.Msg {
		res, err := m.runner.Render(context.Background(), m.opts)
		return figureMsg{res: res, err: err}
	}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		return m, m.render()

	case figureMsg:
		m.renders++
		switch {
		case msg.err == nil:
			m.lines = msg.res.Lines
			m.warning = ""
		case errors.Is(msg.err, errors.ErrCodeFileNotFound):
			// The input vanished mid-loop; keep the last figure and
			// keep polling.
			m.warning = "missing input: " + m.opts.Source
		default:
			m.warning = errors.UserMessage(msg.err)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	status := fmt.Sprintf("watching every %s · %d renders · q to quit", m.interval, m.renders)
	if m.warning != "" {
		b.WriteString(StyleWarning.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")
	return b.String()
}
