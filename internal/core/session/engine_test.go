package session

import (
	"sync"
	"testing"
	"time"

	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registration struct {
	fn        func()
	cancelled bool
}

type manualScheduler struct {
	mu            sync.Mutex
	registrations []*registration
	intervals     []time.Duration
}

func (scheduler *manualScheduler) Every(interval time.Duration, fn func()) func() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	reg := &registration{fn: fn}
	scheduler.registrations = append(scheduler.registrations, reg)
	scheduler.intervals = append(scheduler.intervals, interval)
	return func() {
		scheduler.mu.Lock()
		defer scheduler.mu.Unlock()
		reg.cancelled = true
	}
}

func (scheduler *manualScheduler) active() []*registration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	var active []*registration
	for _, reg := range scheduler.registrations {
		if !reg.cancelled {
			active = append(active, reg)
		}
	}
	return active
}

// fire delivers n ticks to every live registration, one second at a time.
func (scheduler *manualScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		for _, reg := range scheduler.active() {
			reg.fn()
		}
	}
}

type notification struct {
	mode  model.Mode
	sound model.Sound
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (notifier *recordingNotifier) Notify(mode model.Mode, sound model.Sound) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.calls = append(notifier.calls, notification{mode: mode, sound: sound})
}

func (notifier *recordingNotifier) count() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.calls)
}

func newTestEngine(t *testing.T, prefs model.Preferences) (*Engine, *manualScheduler, *recordingNotifier) {
	t.Helper()
	scheduler := &manualScheduler{}
	notifier := &recordingNotifier{}
	engine := New(prefs, notifier, Config{Scheduler: scheduler})
	t.Cleanup(engine.Close)
	return engine, scheduler, notifier
}

func TestNewEngineStartsIdleInWorkMode(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())

	snapshot := engine.Snapshot()
	assert.Equal(t, model.ModeWork, snapshot.Mode)
	assert.Equal(t, 1500, snapshot.Remaining)
	assert.Equal(t, 1500, snapshot.Total)
	assert.False(t, snapshot.Running)
	assert.Empty(t, scheduler.active())
}

func TestResetLoadsConfiguredDuration(t *testing.T) {
	for _, mode := range model.Modes() {
		_, high := model.DurationRange(mode)
		for minutes := 1; minutes <= high; minutes++ {
			prefs := model.DefaultPreferences().WithMinutes(mode, minutes)
			engine, _, _ := newTestEngine(t, prefs)
			require.True(t, engine.SwitchMode(mode))

			engine.Reset()

			snapshot := engine.Snapshot()
			assert.Equal(t, minutes*60, snapshot.Remaining, "mode %s minutes %d", mode, minutes)
			assert.Equal(t, minutes*60, snapshot.Total, "mode %s minutes %d", mode, minutes)
		}
	}
}

func TestTicksDecrementWhileRunning(t *testing.T) {
	engine, scheduler, notifier := newTestEngine(t, model.DefaultPreferences())

	engine.Start()
	scheduler.fire(90)

	snapshot := engine.Snapshot()
	assert.Equal(t, 1410, snapshot.Remaining)
	assert.True(t, snapshot.Running)
	assert.Equal(t, 0, notifier.count())
	assert.Equal(t, []time.Duration{time.Second}, scheduler.intervals)
}

func TestStartTwiceDoesNotDoubleTickRate(t *testing.T) {
	once, onceScheduler, _ := newTestEngine(t, model.DefaultPreferences())
	twice, twiceScheduler, _ := newTestEngine(t, model.DefaultPreferences())

	once.Start()
	twice.Start()
	twice.Start()

	onceScheduler.fire(42)
	twiceScheduler.fire(42)

	assert.Len(t, twiceScheduler.active(), 1)
	assert.Equal(t, once.Snapshot(), twice.Snapshot())
	assert.Equal(t, 1500-42, twice.Snapshot().Remaining)
}

func TestTickAtZeroCompletesOnce(t *testing.T) {
	prefs := model.DefaultPreferences().WithMinutes(model.ModeShortBreak, 1)
	prefs.Sound = model.SoundGlass
	engine, scheduler, notifier := newTestEngine(t, prefs)
	require.True(t, engine.SwitchMode(model.ModeShortBreak))

	engine.Start()
	scheduler.fire(60)
	require.Equal(t, 1, notifier.count())
	require.Equal(t, 0, engine.Snapshot().Remaining)

	// Restarting an expired session completes on the first tick.
	engine.Start()
	scheduler.fire(1)

	assert.Equal(t, 2, notifier.count())
	assert.Equal(t, notification{mode: model.ModeShortBreak, sound: model.SoundGlass}, notifier.calls[1])
	assert.False(t, engine.Snapshot().Running)
	assert.Empty(t, scheduler.active())

	scheduler.fire(5)
	assert.Equal(t, 2, notifier.count())
}

func TestSwitchModeRejectedWhileRunning(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())
	engine.Start()
	scheduler.fire(10)
	before := engine.Snapshot()

	assert.False(t, engine.SwitchMode(model.ModeLongBreak))
	assert.Equal(t, before, engine.Snapshot())
}

func TestSwitchModeRejectsUnknownMode(t *testing.T) {
	engine, _, _ := newTestEngine(t, model.DefaultPreferences())
	before := engine.Snapshot()

	assert.False(t, engine.SwitchMode(model.Mode("nap")))
	assert.Equal(t, before, engine.Snapshot())
}

func TestPauseIsIdempotent(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())
	engine.Start()
	scheduler.fire(3)

	engine.Pause()
	once := engine.Snapshot()
	engine.Pause()

	assert.Equal(t, once, engine.Snapshot())
	assert.False(t, once.Running)
	assert.Empty(t, scheduler.active())

	fresh, _, _ := newTestEngine(t, model.DefaultPreferences())
	fresh.Pause()
	assert.False(t, fresh.Snapshot().Running)
}

func TestFullWorkSession(t *testing.T) {
	engine, scheduler, notifier := newTestEngine(t, model.DefaultPreferences())
	engine.Reset()
	require.Equal(t, 1500, engine.Snapshot().Remaining)

	engine.Start()
	scheduler.fire(1500)

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, model.ModeWork, notifier.calls[0].mode)
	snapshot := engine.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, 0, snapshot.Remaining)
}

func TestSwitchToShortBreakFromIdle(t *testing.T) {
	engine, _, _ := newTestEngine(t, model.DefaultPreferences())

	require.True(t, engine.SwitchMode(model.ModeShortBreak))

	snapshot := engine.Snapshot()
	assert.Equal(t, model.ModeShortBreak, snapshot.Mode)
	assert.Equal(t, 300, snapshot.Remaining)
	assert.Equal(t, 300, snapshot.Total)
}

func TestResetWhileRunningStopsTicking(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())
	engine.Start()
	scheduler.fire(100)

	engine.Reset()

	snapshot := engine.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, 1500, snapshot.Remaining)
	assert.Equal(t, model.ModeWork, snapshot.Mode)
	assert.Empty(t, scheduler.active())
}

func TestPreferenceChangesApplyOnNextRearm(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())
	engine.Start()
	scheduler.fire(10)

	engine.UpdatePreferences(model.DefaultPreferences().WithMinutes(model.ModeWork, 50))
	snapshot := engine.Snapshot()
	assert.Equal(t, 1490, snapshot.Remaining)
	assert.Equal(t, 1500, snapshot.Total)

	engine.Pause()
	engine.UpdatePreferences(model.DefaultPreferences().WithMinutes(model.ModeWork, 40))
	assert.Equal(t, 1490, engine.Snapshot().Remaining)

	engine.Reset()
	snapshot = engine.Snapshot()
	assert.Equal(t, 2400, snapshot.Remaining)
	assert.Equal(t, 2400, snapshot.Total)
}

func TestStaleTickIsIgnored(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())
	engine.Start()
	stale := scheduler.active()[0].fn

	engine.Pause()
	stale()
	assert.Equal(t, 1500, engine.Snapshot().Remaining)

	engine.Start()
	stale()
	assert.Equal(t, 1500, engine.Snapshot().Remaining)

	scheduler.fire(1)
	assert.Equal(t, 1499, engine.Snapshot().Remaining)
}

func TestPanickingNotifierLeavesEngineIdle(t *testing.T) {
	scheduler := &manualScheduler{}
	notifier := NotifierFunc(func(model.Mode, model.Sound) {
		panic("audio device gone")
	})
	engine := New(model.DefaultPreferences().WithMinutes(model.ModeWork, 1), notifier, Config{Scheduler: scheduler})
	defer engine.Close()

	engine.Start()
	require.NotPanics(t, func() { scheduler.fire(60) })

	snapshot := engine.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, 0, snapshot.Remaining)
	assert.Empty(t, scheduler.active())
}

func TestNilNotifier(t *testing.T) {
	scheduler := &manualScheduler{}
	engine := New(model.DefaultPreferences().WithMinutes(model.ModeWork, 1), nil, Config{Scheduler: scheduler})
	defer engine.Close()

	engine.Start()
	scheduler.fire(60)

	assert.False(t, engine.Snapshot().Running)
}

func TestSubscribersReceiveEvents(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences().WithMinutes(model.ModeWork, 1))
	events := engine.Subscribe(128)

	engine.Start()
	scheduler.fire(60)

	var types []EventType
	for len(events) > 0 {
		event := <-events
		types = append(types, event.Type)
	}
	require.Len(t, types, 61)
	assert.Equal(t, EventStarted, types[0])
	assert.Equal(t, EventTick, types[1])
	assert.Equal(t, EventCompleted, types[60])
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, model.DefaultPreferences())
	events := engine.Subscribe(1)

	engine.Start()
	scheduler.fire(10)

	assert.Len(t, events, 1)
	assert.Equal(t, 1490, engine.Snapshot().Remaining)
}

func TestCloseClosesSubscribers(t *testing.T) {
	scheduler := &manualScheduler{}
	engine := New(model.DefaultPreferences(), nil, Config{Scheduler: scheduler})
	events := engine.Subscribe(4)
	engine.Start()

	engine.Close()
	engine.Close()

	for range events {
	}
	assert.False(t, engine.Snapshot().Running)
	assert.Empty(t, scheduler.active())

	engine.Start()
	assert.False(t, engine.Snapshot().Running)

	_, ok := <-engine.Subscribe(1)
	assert.False(t, ok)
}

func TestSnapshotHelpers(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		progress float64
		clock    string
	}{
		{"fresh", Snapshot{Remaining: 1500, Total: 1500}, 0, "25:00"},
		{"half", Snapshot{Remaining: 150, Total: 300}, 0.5, "02:30"},
		{"done", Snapshot{Remaining: 0, Total: 300}, 1, "00:00"},
		{"no total", Snapshot{Remaining: 5, Total: 0}, 0, "00:05"},
		{"over total", Snapshot{Remaining: 400, Total: 300}, 0, "06:40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.progress, tt.snapshot.Progress(), 1e-9)
			assert.Equal(t, tt.clock, tt.snapshot.Clock())
		})
	}
	assert.Equal(t, "00:00", FormatClock(-3))
	assert.Equal(t, "60:00", FormatClock(3600))
}

func TestTickerSchedulerFiresUntilCancelled(t *testing.T) {
	fired := make(chan struct{}, 16)
	cancel := TickerScheduler{}.Every(time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker scheduler never fired")
	}
	cancel()
	cancel()
}
