package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/api"
	"tracker-client/internal/mockapi"
	"tracker-client/internal/store"
	"tracker-client/internal/testutil"
)

var start = time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, taskID *int64) (TimerModel, *store.TimerStore, *mockapi.Server) {
	t.Helper()
	server, baseURL := testutil.NewMockAPI(t, mockapi.Options{Seed: true})
	client := api.New(testutil.NewCredentialStore(t), api.Options{BaseURL: baseURL})
	entries := store.NewTimeEntryStore(client, 0)
	timer := store.NewTimerStore()

	m := NewTimerModel(context.Background(), entries, timer, taskID, "Task 1")
	clock := start
	m.now = func() time.Time { return clock }
	return m, timer, server
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m TimerModel, msg tea.Msg) (TimerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(TimerModel)
	require.True(t, ok)
	return model, cmd
}

func TestTimerModel_Lifecycle(t *testing.T) {
	taskID := int64(1)
	m, timer, server := newTestModel(t, &taskID)

	msg := m.Init()()
	started, ok := msg.(startedMsg)
	require.True(t, ok, "got %#v", msg)
	assert.True(t, started.entry.IsRunning())

	m, cmd := update(t, m, started)
	assert.NotNil(t, cmd)
	snap := timer.Snapshot()
	assert.True(t, snap.IsRunning)
	require.NotNil(t, snap.ActiveTimer)
	assert.Equal(t, taskID, *snap.ActiveTimer.TaskID)

	m, _ = update(t, m, tickMsg(start.Add(3*time.Second)))
	assert.Equal(t, int64(3), timer.Snapshot().ElapsedSeconds)
	assert.Contains(t, m.View(), "00:00:03")

	// paused time does not count
	m, _ = update(t, m, keyPress('p'))
	assert.False(t, timer.Snapshot().IsRunning)
	assert.NotNil(t, timer.Snapshot().ActiveTimer)
	m, _ = update(t, m, tickMsg(start.Add(10*time.Second)))
	assert.Equal(t, int64(3), timer.Snapshot().ElapsedSeconds)
	assert.Contains(t, m.View(), "paused")

	m, _ = update(t, m, keyPress('p'))
	m, _ = update(t, m, tickMsg(start.Add(12*time.Second)))
	assert.Equal(t, int64(5), timer.Snapshot().ElapsedSeconds)

	m.now = func() time.Time { return start.Add(time.Minute) }
	m, cmd = update(t, m, keyPress('s'))
	require.NotNil(t, cmd)
	stopped, ok := cmd().(stoppedMsg)
	require.True(t, ok)
	require.NotNil(t, stopped.entry.DurationSeconds)
	assert.Equal(t, int64(60), *stopped.entry.DurationSeconds)

	_, cmd = update(t, m, stopped)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, store.TimerSnapshot{}, timer.Snapshot())

	entries := server.Entries()
	last := entries[len(entries)-1]
	assert.False(t, last.IsRunning())
}

func TestTimerModel_StopBeforeStarted(t *testing.T) {
	taskID := int64(1)
	m, timer, server := newTestModel(t, &taskID)

	create := m.Init()

	// stop arrives while the create is still in flight
	m, cmd := update(t, m, keyPress('q'))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "stopping...")

	started, ok := create().(startedMsg)
	require.True(t, ok)

	m, cmd = update(t, m, started)
	require.NotNil(t, cmd)
	assert.Nil(t, timer.Snapshot().ActiveTimer)

	stopped, ok := cmd().(stoppedMsg)
	require.True(t, ok)
	assert.Equal(t, started.entry.ID, stopped.entry.ID)
	assert.NotNil(t, stopped.entry.EndTime)

	_, cmd = update(t, m, stopped)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, store.Idle, timer.State())

	for _, entry := range server.Entries() {
		if entry.ID == started.entry.ID {
			assert.NotNil(t, entry.EndTime)
			assert.False(t, entry.IsRunning())
		}
	}
}

func TestTimerModel_StartFailure(t *testing.T) {
	missing := int64(99)
	m, timer, _ := newTestModel(t, &missing)

	msg := m.Init()()
	failed, ok := msg.(errMsg)
	require.True(t, ok)

	m, cmd := update(t, m, failed)
	require.NotNil(t, cmd)
	assert.Error(t, m.Err())
	assert.Equal(t, store.Idle, timer.State())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "00:01:05", FormatElapsed(65))
	assert.Equal(t, "27:46:40", FormatElapsed(100000))
	assert.Equal(t, "00:00:00", FormatElapsed(-4))
}
