package session

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// Notifier receives the session-complete hand-off. Implementations must not
// block the caller.
type Notifier interface {
	Notify(mode model.Mode, sound model.Sound)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(mode model.Mode, sound model.Sound)

// Notify implements Notifier.
func (fn NotifierFunc) Notify(mode model.Mode, sound model.Sound) {
	fn(mode, sound)
}

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	Logger       *slog.Logger
	Now          func() time.Time
}

// Engine is the countdown state machine. All mutation is serialized on one
// mutex; at most one tick registration is live at a time.
type Engine struct {
	mu         sync.Mutex
	prefs      model.Preferences
	options    Config
	notifier   Notifier
	logger     *slog.Logger
	mode       model.Mode
	remaining  int
	total      int
	running    bool
	cancelTick func()
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an idle engine in work mode armed with the work duration.
func New(prefs model.Preferences, notifier Notifier, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine := &Engine{
		prefs:    prefs,
		options:  options,
		notifier: notifier,
		logger:   logger.With("component", "session"),
		mode:     model.ModeWork,
	}
	engine.rearmLocked()
	return engine
}

// Subscribe registers a new observer channel. Sends never block; an observer
// that falls behind misses events and should re-read Snapshot.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Preferences returns the preferences the next re-arm will use.
func (engine *Engine) Preferences() model.Preferences {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.prefs
}

// Start begins counting down. It is a no-op while already running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running || engine.closed {
		return
	}
	engine.running = true
	engine.generation++
	generation := engine.generation
	engine.cancelTick = engine.options.Scheduler.Every(engine.options.TickInterval, func() {
		engine.tick(generation)
	})
	engine.logger.Debug("session started", "mode", engine.mode, "remaining", engine.remaining)
	engine.emitLocked(EventStarted)
}

// Pause stops counting down. Safe to call when not running.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running {
		return
	}
	engine.pauseLocked()
	engine.emitLocked(EventPaused)
}

// Reset pauses and reloads the configured duration of the current mode.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.pauseLocked()
	engine.rearmLocked()
	engine.emitLocked(EventReset)
}

// SwitchMode selects mode and reloads its duration. The call is rejected
// while running or for an unknown mode.
func (engine *Engine) SwitchMode(mode model.Mode) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		engine.logger.Debug("mode switch rejected while running", "current", engine.mode, "requested", mode)
		return false
	}
	if !mode.Valid() {
		engine.logger.Warn("mode switch rejected", "requested", mode)
		return false
	}
	engine.mode = mode
	engine.rearmLocked()
	engine.emitLocked(EventModeSwitched)
	return true
}

// UpdatePreferences stores new durations and sound. The countdown in
// progress is untouched; new durations apply at the next Reset or SwitchMode.
func (engine *Engine) UpdatePreferences(prefs model.Preferences) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.prefs = prefs
}

// Close pauses the engine and closes every observer channel.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.pauseLocked()
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	if !engine.running || generation != engine.generation {
		engine.mu.Unlock()
		return
	}

	if engine.remaining > 0 {
		engine.remaining--
	}
	if engine.remaining > 0 {
		engine.emitLocked(EventTick)
		engine.mu.Unlock()
		return
	}

	engine.pauseLocked()
	mode := engine.mode
	sound := engine.prefs.Sound
	engine.emitLocked(EventCompleted)
	engine.mu.Unlock()

	engine.logger.Info("session complete", "mode", mode, "sound", sound)
	engine.dispatch(mode, sound)
}

func (engine *Engine) dispatch(mode model.Mode, sound model.Sound) {
	if engine.notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			engine.logger.Error("notifier panicked", "mode", mode, "panic", recovered)
		}
	}()
	engine.notifier.Notify(mode, sound)
}

func (engine *Engine) pauseLocked() {
	engine.running = false
	if engine.cancelTick != nil {
		engine.cancelTick()
		engine.cancelTick = nil
	}
}

func (engine *Engine) rearmLocked() {
	engine.total = engine.prefs.Seconds(engine.mode)
	engine.remaining = engine.total
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:      engine.mode,
		Remaining: engine.remaining,
		Total:     engine.total,
		Running:   engine.running,
	}
}

func (engine *Engine) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: engine.snapshotLocked(),
		At:       engine.options.Now(),
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
