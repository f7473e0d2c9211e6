// Package tui renders the interactive running timer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tracker-client/internal/domain"
	"tracker-client/internal/errors"
	"tracker-client/internal/store"
)

type keyMap struct {
	Pause key.Binding
	Stop  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Pause, k.Stop} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Pause: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause/resume")),
	Stop:  key.NewBinding(key.WithKeys("s", "q", "ctrl+c", "esc"), key.WithHelp("s/q", "stop")),
}

type (
	startedMsg struct{ entry domain.TimeEntry }
	stoppedMsg struct{ entry domain.TimeEntry }
	errMsg     struct{ err error }
	tickMsg    time.Time
)

// TimerModel starts a time entry, counts its running time in the timer
// store and stops the entry on exit.
type TimerModel struct {
	ctx      context.Context
	entries  *store.TimeEntryStore
	timer    *store.TimerStore
	taskID   *int64
	taskName string
	now      func() time.Time

	entryID  int64
	lastTick time.Time
	active   time.Duration
	stopping bool
	help     help.Model
	err      error
}

// NewTimerModel creates the model. taskID may be nil for a timer that is
// not attached to a task.
func NewTimerModel(ctx context.Context, entries *store.TimeEntryStore, timer *store.TimerStore, taskID *int64, taskName string) TimerModel {
	return TimerModel{
		ctx:      ctx,
		entries:  entries,
		timer:    timer,
		taskID:   taskID,
		taskName: taskName,
		now:      time.Now,
		help:     help.New(),
	}
}

// Err returns the failure that ended the session, if any.
func (m TimerModel) Err() error {
	return m.err
}

// Init creates the running time entry.
func (m TimerModel) Init() tea.Cmd {
	input := domain.TimeEntryInput{StartTime: domain.Set(m.now().UTC())}
	if m.taskID != nil {
		input.Task = domain.Set(*m.taskID)
	}
	return func() tea.Msg {
		entry, err := m.entries.Create(m.ctx, input).Wait()
		if err != nil {
			return errMsg{err}
		}
		return startedMsg{entry}
	}
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		m.entryID = msg.entry.ID
		m.lastTick = msg.entry.StartTime
		if m.stopping {
			// stop was requested while the create was in flight
			return m, m.closeEntry()
		}
		m.timer.SetActiveTimer(domain.NewActiveTimer(m.taskID, msg.entry.StartTime))
		return m, tick()

	case tickMsg:
		t := time.Time(msg)
		if m.timer.Snapshot().IsRunning {
			m.active += t.Sub(m.lastTick)
			m.timer.UpdateElapsed(int64(m.active / time.Second))
		}
		m.lastTick = t
		if m.stopping {
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Pause):
			if m.entryID != 0 && !m.stopping {
				m.timer.SetIsRunning(!m.timer.Snapshot().IsRunning)
			}
			return m, nil
		case key.Matches(msg, keys.Stop):
			return m.stop()
		}

	case stoppedMsg:
		m.timer.Reset()
		return m, tea.Quit

	case errMsg:
		m.err = msg.err
		m.timer.Reset()
		return m, tea.Quit
	}
	return m, nil
}

// stop closes the running entry at the current time. Before the entry
// exists it only marks the model, and the entry is closed once the create
// returns.
func (m TimerModel) stop() (tea.Model, tea.Cmd) {
	if m.stopping {
		return m, nil
	}
	m.stopping = true
	if m.entryID == 0 {
		return m, nil
	}
	return m, m.closeEntry()
}

func (m TimerModel) closeEntry() tea.Cmd {
	id := m.entryID
	end := m.now().UTC()
	return func() tea.Msg {
		entry, err := m.entries.Update(m.ctx, id, domain.TimeEntryInput{EndTime: domain.Set(end)}).Wait()
		if err != nil {
			return errMsg{err}
		}
		return stoppedMsg{entry}
	}
}

func (m TimerModel) View() string {
	var b strings.Builder

	title := "Timer"
	if m.taskName != "" {
		title += ": " + m.taskName
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	snap := m.timer.Snapshot()
	clock := FormatElapsed(snap.ElapsedSeconds)
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(errors.GetUserMessage(m.err)) + "\n")
		return b.String()
	case m.entryID == 0:
		b.WriteString(mutedStyle.Render("starting...") + "\n")
	case snap.IsRunning:
		b.WriteString(clockStyle.Render(clock) + "\n")
		b.WriteString(runningStyle.Render("running") + "\n")
	default:
		b.WriteString(pausedStyle.Render(clock) + "\n")
		b.WriteString(mutedStyle.Render("paused") + "\n")
	}
	if m.stopping {
		b.WriteString(mutedStyle.Render("stopping...") + "\n")
	}

	b.WriteString("\n" + m.help.View(keys) + "\n")
	return b.String()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// FormatElapsed renders seconds as HH:MM:SS. Negative values render as
// zero.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// Run shows the timer until it is stopped.
func Run(m TimerModel, opts ...tea.ProgramOption) error {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(TimerModel); ok {
		return fm.Err()
	}
	return nil
}
