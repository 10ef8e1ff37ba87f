// Package timer contains the countdown state machine: the Engine that owns
// the remaining and target time, the running flag and the input history.
//
// Maintenance notes:
//   - The Engine performs no scheduling of its own. A host calls Tick with the
//     time elapsed since the previous tick (see control.Loop).
//   - The Engine is not safe for concurrent use. All calls, including Tick,
//     must happen on one goroutine; renderers read Snapshot copies.
//   - Completion side effects (sound, notification) are fire-and-forget calls
//     to the SoundPlayer and Notifier collaborators.
package timer

import (
	"CountDown/duration"
	"errors"
	"fmt"
	"time"
)

// SoundPlayer plays a named sound. Unknown names are ignored.
type SoundPlayer interface {
	Play(name string)
}

// Notifier shows a user-visible notification. Failures are not reported.
type Notifier interface {
	Notify(title, body string)
}

type nopSound struct{}

func (nopSound) Play(string) {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

// Option configures an Engine.
type Option func(*Engine)

// WithSoundPlayer sets the player used for the completion alert.
func WithSoundPlayer(p SoundPlayer) Option {
	return func(e *Engine) {
		if p != nil {
			e.sound = p
		}
	}
}

// WithNotifier sets the notifier used on completion.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithCompletionSound sets the sound name played on completion.
func WithCompletionSound(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.completionSound = name
		}
	}
}

// WithMessages replaces the user-visible strings.
func WithMessages(m Messages) Option {
	return func(e *Engine) { e.messages = m }
}

// WithCompletionHandler registers a callback invoked once per completion,
// after the sound and notification.
func WithCompletionHandler(fn func(Snapshot)) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// Engine is the countdown state machine.
type Engine struct {
	remaining time.Duration
	target    time.Duration
	running   bool
	completed bool

	input      string
	status     string
	completion string
	history    *History

	sound           SoundPlayer
	notifier        Notifier
	completionSound string
	messages        Messages
	onComplete      func(Snapshot)
}

// NewEngine returns an idle engine with remaining = target = 0.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		history:         NewHistory(HistoryLimit),
		sound:           nopSound{},
		notifier:        nopNotifier{},
		completionSound: DefaultCompletionSound,
		messages:        DefaultMessages(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetFromInput parses raw against the remaining time. On success the result
// becomes both target and remaining, the input is recorded in the history and
// the countdown starts. On failure only the status message changes and the
// *duration.ParseError is returned.
func (e *Engine) SetFromInput(raw string) error {
	d, err := duration.Parse(raw, e.remaining)
	if err != nil {
		if errors.Is(err, duration.ErrEmptyInput) {
			e.status = e.messages.EmptyInput
		} else {
			e.status = e.messages.Unrecognized
		}
		return err
	}

	e.target = d
	e.remaining = d
	e.status = fmt.Sprintf(e.messages.TimerSet, duration.Format(d))
	e.completion = ""
	e.completed = false
	e.history.Record(trimmed(raw))
	e.input = ""

	e.Start()
	return nil
}

// Submit calls SetFromInput with the current input buffer.
func (e *Engine) Submit() error {
	return e.SetFromInput(e.input)
}

// Start runs the countdown. On an empty timer it resets to the target instead.
func (e *Engine) Start() {
	if e.remaining <= 0 {
		e.Reset()
		return
	}
	e.running = true
	e.completed = false
}

// Pause stops the countdown, keeping the remaining time.
func (e *Engine) Pause() {
	e.running = false
}

// Reset pauses and restores the remaining time to the target.
func (e *Engine) Reset() {
	e.Pause()
	e.remaining = e.target
	e.completion = ""
	e.completed = false
}

// Toggle pauses a running countdown and starts a stopped one.
func (e *Engine) Toggle() {
	if e.running {
		e.Pause()
	} else {
		e.Start()
	}
}

// Tick advances a running countdown by delta. It reports true for the tick
// that completed the countdown; remaining never drops below zero.
func (e *Engine) Tick(delta time.Duration) bool {
	if !e.running {
		return false
	}
	if delta < 0 {
		delta = 0
	}
	if e.remaining > delta {
		e.remaining -= delta
		return false
	}
	e.complete()
	return true
}

func (e *Engine) complete() {
	e.remaining = 0
	e.running = false
	e.completed = true
	e.completion = e.messages.Completed

	e.sound.Play(e.completionSound)
	e.notifier.Notify(e.messages.NotificationTitle, e.messages.NotificationBody)
	if e.onComplete != nil {
		e.onComplete(e.Snapshot())
	}
}

// HistoryPrevious loads the previous history entry into the input buffer.
func (e *Engine) HistoryPrevious() {
	if text, ok := e.history.Previous(); ok {
		e.input = text
	}
}

// HistoryNext loads the next history entry into the input buffer, clearing it
// when stepping past the newest entry.
func (e *Engine) HistoryNext() {
	if text, ok := e.history.Next(); ok {
		e.input = text
	}
}

// SetCompletionSound changes the sound played on completion.
func (e *Engine) SetCompletionSound(name string) {
	if name != "" {
		e.completionSound = name
	}
}

// CompletionSound returns the sound played on completion.
func (e *Engine) CompletionSound() string { return e.completionSound }

// SetInput replaces the input buffer.
func (e *Engine) SetInput(text string) { e.input = text }

// Input returns the input buffer.
func (e *Engine) Input() string { return e.input }

// Remaining returns the live countdown value.
func (e *Engine) Remaining() time.Duration { return e.remaining }

// Target returns the value the countdown was last set to.
func (e *Engine) Target() time.Duration { return e.target }

// Running reports whether the countdown is running.
func (e *Engine) Running() bool { return e.running }

// State returns the coarse state.
func (e *Engine) State() State {
	switch {
	case e.running:
		return StateRunning
	case e.completed:
		return StateCompleted
	default:
		return StateIdle
	}
}

// Status returns the last status message.
func (e *Engine) Status() string { return e.status }

// CompletionMessage returns the completion message, empty unless completed.
func (e *Engine) CompletionMessage() string { return e.completion }

// History returns a copy of the accepted inputs, oldest first.
func (e *Engine) History() []string { return e.history.Entries() }

// HistoryCursor returns the recall cursor position.
func (e *Engine) HistoryCursor() int { return e.history.Cursor() }

// Progress returns remaining/target in [0, 1], or 0 without a target.
func (e *Engine) Progress() float64 {
	if e.target <= 0 {
		return 0
	}
	p := float64(e.remaining) / float64(e.target)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Snapshot is a copy of the engine state that renderers can hold on to.
type Snapshot struct {
	State             State
	Remaining         time.Duration
	Target            time.Duration
	Running           bool
	Progress          float64
	Input             string
	Status            string
	CompletionMessage string
	History           []string
	HistoryCursor     int
}

// Snapshot returns a consistent copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:             e.State(),
		Remaining:         e.remaining,
		Target:            e.target,
		Running:           e.running,
		Progress:          e.Progress(),
		Input:             e.input,
		Status:            e.status,
		CompletionMessage: e.completion,
		History:           e.history.Entries(),
		HistoryCursor:     e.history.Cursor(),
	}
}
