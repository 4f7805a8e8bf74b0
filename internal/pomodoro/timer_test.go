package pomodoro

import (
	"errors"
	"testing"
	"time"

	"study_assistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	grant    bool
	requests int
	sent     [][2]string
	err      error
}

func (n *fakeNotifier) RequestPermission() bool {
	n.requests++
	return n.grant
}

func (n *fakeNotifier) Notify(title, body string) error {
	n.sent = append(n.sent, [2]string{title, body})
	return n.err
}

type countChime struct{ plays int }

func (c *countChime) Play() { c.plays++ }

func shortSettings() Settings {
	return Settings{FocusMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 2, SessionsBeforeLongBreak: 4}
}

func runToCompletion(t *testing.T, tm *Timer) Transition {
	t.Helper()
	tm.Start()
	limit := int(tm.Snapshot().Remaining()/time.Second) + 1
	for i := 0; i < limit; i++ {
		if tr := tm.Tick(); tr != nil {
			return *tr
		}
	}
	t.Fatalf("no completion after %d ticks", limit)
	return Transition{}
}

func TestNewTimer_Defaults(t *testing.T) {
	tm := NewTimer(DefaultSettings(), nil, nil)
	s := tm.Snapshot()
	assert.Equal(t, 25, s.Minutes)
	assert.Equal(t, 0, s.Seconds)
	assert.False(t, s.Running)
	assert.Equal(t, ModeFocus, s.Mode)
	assert.Equal(t, 0, s.CompletedSessions)
	assert.False(t, s.NotificationsEnabled)
}

func TestNewTimer_InvalidSettingsFallBack(t *testing.T) {
	tm := NewTimer(Settings{}, nil, nil)
	assert.Equal(t, DefaultSettings(), tm.Snapshot().Settings)
}

func TestTimer_StartPauseIdempotent(t *testing.T) {
	tm := NewTimer(DefaultSettings(), nil, nil)
	tm.Start()
	tm.Start()
	assert.True(t, tm.Snapshot().Running)
	tm.Pause()
	tm.Pause()
	assert.False(t, tm.Snapshot().Running)
}

func TestTimer_TickWhilePausedIsNoop(t *testing.T) {
	tm := NewTimer(DefaultSettings(), nil, nil)
	before := tm.Snapshot()
	assert.Nil(t, tm.Tick())
	assert.Equal(t, before, tm.Snapshot())
}

func TestTimer_TickUnderflow(t *testing.T) {
	tm := NewTimer(DefaultSettings(), nil, nil)
	tm.Start()
	require.Nil(t, tm.Tick())
	s := tm.Snapshot()
	assert.Equal(t, 24, s.Minutes)
	assert.Equal(t, 59, s.Seconds)
}

func TestTimer_TickMonotonicWithSingleCompletion(t *testing.T) {
	chime := &countChime{}
	tm := NewTimer(DefaultSettings(), nil, chime)
	tm.Start()

	prev := tm.Snapshot().Remaining()
	completions := 0
	ticks := 0
	for tm.Snapshot().Running {
		tr := tm.Tick()
		ticks++
		if tr != nil {
			completions++
			break
		}
		cur := tm.Snapshot().Remaining()
		require.Equal(t, prev-time.Second, cur)
		prev = cur
	}
	assert.Equal(t, 1, completions)
	assert.Equal(t, 25*60, ticks)
	assert.Equal(t, 1, chime.plays)

	// 完成后停止，继续 tick 不会再次完成
	for i := 0; i < 10; i++ {
		assert.Nil(t, tm.Tick())
	}
	s := tm.Snapshot()
	assert.Equal(t, ModeBreak, s.Mode)
	assert.Equal(t, 5, s.Minutes)
	assert.Equal(t, 0, s.Seconds)
	assert.False(t, s.Running)
}

func TestTimer_FourthFocusGoesToLongBreak(t *testing.T) {
	tm := NewTimer(shortSettings(), nil, nil)

	for i := 1; i <= 4; i++ {
		tr := runToCompletion(t, tm)
		assert.Equal(t, ModeFocus, tr.From)
		assert.Equal(t, i, tr.CompletedSessions)
		if i == 4 {
			assert.Equal(t, ModeLongBreak, tr.To)
			assert.Equal(t, 2, tm.Snapshot().Minutes)
		} else {
			assert.Equal(t, ModeBreak, tr.To)
		}
		back := runToCompletion(t, tm)
		assert.Equal(t, ModeFocus, back.To)
		assert.Equal(t, i, back.CompletedSessions)
	}
	assert.Equal(t, 4, tm.Snapshot().CompletedSessions)
}

func TestTimer_SkipEquivalentToNaturalCompletion(t *testing.T) {
	natural := NewTimer(shortSettings(), nil, nil)
	skipped := NewTimer(shortSettings(), nil, nil)

	for i := 0; i < 6; i++ {
		trN := runToCompletion(t, natural)
		skipped.Start()
		skipped.Tick()
		trS := skipped.Skip()

		assert.True(t, trS.Skipped)
		trS.Skipped = false
		assert.Equal(t, trN, trS)
		assert.Equal(t, natural.Snapshot(), skipped.Snapshot())
	}
}

func TestTimer_ResetPreservesModeAndCount(t *testing.T) {
	tm := NewTimer(shortSettings(), nil, nil)
	runToCompletion(t, tm)
	tm.Start()
	tm.Tick()
	tm.Tick()

	tm.Reset()
	s := tm.Snapshot()
	assert.Equal(t, ModeBreak, s.Mode)
	assert.Equal(t, 1, s.CompletedSessions)
	assert.Equal(t, 1, s.Minutes)
	assert.Equal(t, 0, s.Seconds)
	assert.False(t, s.Running)
}

func TestTimer_Notifications(t *testing.T) {
	n := &fakeNotifier{grant: true}
	chime := &countChime{}
	tm := NewTimer(shortSettings(), n, chime)

	// 未开启时只响铃
	tm.Skip()
	assert.Empty(t, n.sent)
	assert.Equal(t, 1, chime.plays)

	require.True(t, tm.SetNotifications(true))
	assert.Equal(t, 1, n.requests)

	tm.Skip() // break -> focus
	tm.Skip() // focus -> break
	require.Len(t, n.sent, 2)
	assert.Equal(t, [2]string{"Focus Time!", "Break is over. Time to focus!"}, n.sent[0])
	assert.Equal(t, [2]string{"Break Time!", "Great job! Take a break."}, n.sent[1])
	assert.Equal(t, 3, chime.plays)
}

func TestTimer_NotificationPermissionDenied(t *testing.T) {
	n := &fakeNotifier{grant: false}
	tm := NewTimer(shortSettings(), n, nil)

	assert.False(t, tm.SetNotifications(true))
	assert.False(t, tm.Snapshot().NotificationsEnabled)
	tm.Skip()
	assert.Empty(t, n.sent)

	// 再次开启会重新请求权限
	n.grant = true
	assert.True(t, tm.SetNotifications(true))
	assert.Equal(t, 2, n.requests)

	assert.False(t, tm.SetNotifications(false))
	assert.Equal(t, 2, n.requests)
}

func TestTimer_NotificationFailureDoesNotBlock(t *testing.T) {
	n := &fakeNotifier{grant: true, err: errors.New("no display")}
	tm := NewTimer(shortSettings(), n, nil)
	tm.SetNotifications(true)

	tr := tm.Skip()
	assert.Equal(t, ModeBreak, tr.To)
	assert.Len(t, n.sent, 1)
}

func TestTimer_NilNotifierNeverEnables(t *testing.T) {
	tm := NewTimer(shortSettings(), nil, nil)
	assert.False(t, tm.SetNotifications(true))
}

func TestTimer_ConfigureAppliesOnReset(t *testing.T) {
	tm := NewTimer(DefaultSettings(), nil, nil)
	next := Settings{FocusMinutes: 50, BreakMinutes: 10, LongBreakMinutes: 30, SessionsBeforeLongBreak: 2}
	require.NoError(t, tm.Configure(next))
	assert.Equal(t, 25, tm.Snapshot().Minutes)

	tm.Reset()
	assert.Equal(t, 50, tm.Snapshot().Minutes)

	tm.Skip()
	assert.Equal(t, 10, tm.Snapshot().Minutes)
	tm.Skip()
	tr := tm.Skip()
	assert.Equal(t, ModeLongBreak, tr.To)
	assert.Equal(t, 30, tm.Snapshot().Minutes)

	assert.Error(t, tm.Configure(Settings{FocusMinutes: 0, BreakMinutes: 5, LongBreakMinutes: 15, SessionsBeforeLongBreak: 4}))
	assert.Equal(t, next, tm.Snapshot().Settings)
}

func TestFromConfig(t *testing.T) {
	s := FromConfig(config.PomodoroConfig{FocusMinutes: 30, BreakMinutes: 6, LongBreakMinutes: 20, SessionsBeforeLongRest: 3})
	assert.Equal(t, Settings{FocusMinutes: 30, BreakMinutes: 6, LongBreakMinutes: 20, SessionsBeforeLongBreak: 3}, s)

	assert.Equal(t, DefaultSettings(), FromConfig(config.PomodoroConfig{}))
	assert.Equal(t, 15*time.Minute, DefaultSettings().Duration(ModeLongBreak))
}
