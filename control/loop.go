package control

import (
	"CountDown/timer"
	"context"
	"errors"
	"log"
	"time"
)

// ErrDropped is returned by Do when the command could not be queued in time.
var ErrDropped = errors.New("command dropped: loop busy")

const enqueueTimeout = 150 * time.Millisecond

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the tick cadence.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithUpdateHandler registers a callback receiving a Snapshot after every
// command and tick. It runs on the loop goroutine and must not block.
func WithUpdateHandler(fn func(timer.Snapshot)) LoopOption {
	return func(l *Loop) { l.onUpdate = fn }
}

// Loop owns a timer.Engine and drives it from a single goroutine.
type Loop struct {
	engine   *timer.Engine
	cmdCh    chan Command
	interval time.Duration
	clock    Clock
	onUpdate func(timer.Snapshot)
}

// NewLoop creates a loop around e. Call Run to start it.
func NewLoop(e *timer.Engine, opts ...LoopOption) *Loop {
	l := &Loop{
		engine:   e,
		cmdCh:    make(chan Command, 256),
		interval: timer.DefaultTickInterval,
		clock:    SystemClock,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the tick cadence.
func (l *Loop) Interval() time.Duration { return l.interval }

// Enqueue posts a command without blocking the caller for long. If the queue
// stays full for a short while the command is dropped and logged.
func (l *Loop) Enqueue(cmd Command) bool {
	select {
	case l.cmdCh <- cmd:
		return true
	case <-time.After(enqueueTimeout):
		log.Printf("Enqueue timeout: dropping %s command", cmd.Type)
		return false
	}
}

// Do posts a command and waits for its reply.
func (l *Loop) Do(ctx context.Context, cmd Command) error {
	cmd.Reply = make(chan error, 1)
	if !l.Enqueue(cmd) {
		return ErrDropped
	}
	select {
	case err := <-cmd.Reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands and ticks until ctx is cancelled. Each tick passes
// the time elapsed since the previous one to the engine.
func (l *Loop) Run(ctx context.Context) {
	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.clock.Now()
	l.publish()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-l.cmdCh:
			err := l.apply(cmd)
			l.publish()
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		case <-ticker.C():
			now := l.clock.Now()
			delta := now.Sub(last)
			last = now
			if l.engine.Running() {
				l.engine.Tick(delta)
				l.publish()
			}
		}
	}
}

func (l *Loop) apply(cmd Command) error {
	e := l.engine
	switch cmd.Type {
	case CmdSubmit:
		if cmd.Input != "" {
			return e.SetFromInput(cmd.Input)
		}
		return e.Submit()
	case CmdSetInput:
		e.SetInput(cmd.Input)
	case CmdStart:
		e.Start()
	case CmdPause:
		e.Pause()
	case CmdReset:
		e.Reset()
	case CmdToggle:
		e.Toggle()
	case CmdHistoryPrevious:
		e.HistoryPrevious()
	case CmdHistoryNext:
		e.HistoryNext()
	case CmdSetCompletionSound:
		e.SetCompletionSound(cmd.Input)
	default:
		log.Printf("Unknown command type %d", cmd.Type)
	}
	return nil
}

func (l *Loop) publish() {
	if l.onUpdate != nil {
		l.onUpdate(l.engine.Snapshot())
	}
}
