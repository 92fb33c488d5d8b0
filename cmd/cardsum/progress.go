package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cardsum/internal/pricing"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

type workerDoneMsg pricing.WorkerDone

// progressModel shows a spinner until every worker of both groups reports
type progressModel struct {
	spinner   spinner.Model
	total     int
	baseline  int
	perturbed int
	finished  bool
}

func newProgressModel(total int) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return progressModel{spinner: s, total: total}
}

func (m progressModel) completed() int {
	return m.baseline + m.perturbed
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workerDoneMsg:
		switch msg.Group {
		case pricing.GroupBaseline:
			m.baseline++
		case pricing.GroupPerturbed:
			m.perturbed++
		}
		if m.completed() >= m.total {
			m.finished = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	return fmt.Sprintf("%s pricing: %d/%d workers done (baseline %d, perturbed %d)\n",
		m.spinner.View(), m.completed(), m.total, m.baseline, m.perturbed)
}

// progress runs the spinner program in the background and feeds it worker
// completions from the engine. The program reads no input; it ends when
// every worker has reported or Stop is called.
type progress struct {
	program *tea.Program
	done    chan struct{}
}

func startProgress(w io.Writer, workers int) *progress {
	p := &progress{
		program: tea.NewProgram(newProgressModel(2*workers), tea.WithOutput(w), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
	return p
}

// OnWorkerDone is safe for concurrent use
func (p *progress) OnWorkerDone(d pricing.WorkerDone) {
	p.program.Send(workerDoneMsg(d))
}

// Stop ends the program and waits for the terminal to be restored
func (p *progress) Stop() {
	p.program.Quit()
	<-p.done
}
