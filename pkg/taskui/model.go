// Package taskui runs a long backup or restore task behind a Bubble Tea
// progress view: spinner, progress bar, and a tail of recent events.
package taskui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tranconcoder/arch-linux-hyde-config/pkg/backup"
)

// Task is a long-running operation reporting progress through a callback.
type Task func(ctx context.Context, progress backup.ProgressCallback) error

// progressMsg carries one progress event into the model.
type progressMsg backup.ProgressEvent

// doneMsg signals task completion.
type doneMsg struct{ err error }

// maxVisibleEvents limits the event tail shown under the progress bar.
const maxVisibleEvents = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("39")).
			Padding(0, 1)

	stageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	itemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
)

// Model is the Bubble Tea model driving a task run.
type Model struct {
	title string
	task  Task

	spinner      spinner.Model
	progressBar  progress.Model
	events       []backup.ProgressEvent
	progressChan chan backup.ProgressEvent
	err          error
	done         bool
	quitting     bool

	// ctx is passed to the task; cancel fires when the user quits mid-run
	// so the task stops instead of working on after the UI is gone.
	ctx    context.Context
	cancel context.CancelFunc

	width int
}

// New creates a task runner model.
func New(title string, task Task) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		title:        title,
		task:         task,
		spinner:      s,
		progressBar:  p,
		events:       make([]backup.ProgressEvent, 0),
		progressChan: make(chan backup.ProgressEvent, 100),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startTask(),
		m.waitForProgress(),
	)
}

func (m Model) startTask() tea.Cmd {
	return func() tea.Msg {
		callback := func(e backup.ProgressEvent) {
			select {
			case m.progressChan <- e:
			case <-m.ctx.Done():
			}
		}
		err := m.task(m.ctx, callback)
		close(m.progressChan)
		return doneMsg{err: err}
	}
}

func (m Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return progressMsg(event)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(msg.Width-10, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		m.events = append(m.events, backup.ProgressEvent(msg))
		cmds := []tea.Cmd{m.waitForProgress()}
		if msg.Percent >= 0 {
			cmds = append(cmds, m.progressBar.SetPercent(float64(msg.Percent)/100.0))
		}
		return m, tea.Batch(cmds...)

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting && !m.done {
		return "\n  Cancelling...\n"
	}

	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(titleStyle.Render(" " + m.title + " "))
	s.WriteString("\n\n")

	if m.done {
		if m.err != nil {
			s.WriteString(errStyle.Render("  Failed: " + m.err.Error()))
		} else {
			s.WriteString(okStyle.Render("  Done"))
		}
		s.WriteString("\n")
		return s.String()
	}

	s.WriteString("  " + m.spinner.View())
	if last := m.lastEvent(); last != nil {
		s.WriteString(stageStyle.Render(last.Stage.DisplayName()))
		if last.Item != "" {
			s.WriteString(itemStyle.Render(" · " + last.Item))
		}
	}
	s.WriteString("\n\n  ")
	s.WriteString(m.progressBar.View())
	s.WriteString("\n\n")

	start := 0
	if len(m.events) > maxVisibleEvents {
		start = len(m.events) - maxVisibleEvents
	}
	for _, e := range m.events[start:] {
		line := fmt.Sprintf("  %s %s", stageStyle.Render(e.Stage.DisplayName()+":"), e.Message)
		if e.IsError {
			line = "  " + errStyle.Render(e.Stage.DisplayName()+": "+e.Message)
		}
		s.WriteString(line + "\n")
	}

	return s.String()
}

func (m Model) lastEvent() *backup.ProgressEvent {
	if len(m.events) == 0 {
		return nil
	}
	return &m.events[len(m.events)-1]
}

// Err returns the task error after the program finished.
func (m Model) Err() error {
	return m.err
}

// Cancelled reports whether the user quit before the task finished.
func (m Model) Cancelled() bool {
	return m.quitting && !m.done
}

// Events returns all recorded progress events.
func (m Model) Events() []backup.ProgressEvent {
	return m.events
}

// Run executes the task inside a Bubble Tea program and returns the task
// error, or context.Canceled when the user quit mid-run. Falls back to a
// plain run when the terminal is unavailable.
func Run(title string, task Task) error {
	model := New(title, task)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		// No usable terminal; run headless with plain progress output
		tracker := backup.NewProgressTracker()
		return task(context.Background(), tracker.Callback())
	}

	if m, ok := final.(Model); ok {
		if m.Cancelled() {
			return context.Canceled
		}
		return m.Err()
	}
	return nil
}
