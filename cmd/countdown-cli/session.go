package main

import (
	"CountDown/control"
	"CountDown/i18n"
	"CountDown/timer"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// action is what a line of terminal input asks for.
type action int

const (
	actionCommand action = iota
	actionHistory
	actionQuit
)

// parseLine maps a line of input to a loop command. Words that are not
// commands are submitted as duration input; "go" submits the recalled entry.
func parseLine(line string) (control.Command, action) {
	text := strings.TrimSpace(line)
	switch strings.ToLower(text) {
	case "", "toggle":
		return control.Command{Type: control.CmdToggle}, actionCommand
	case "start":
		return control.Command{Type: control.CmdStart}, actionCommand
	case "pause":
		return control.Command{Type: control.CmdPause}, actionCommand
	case "reset":
		return control.Command{Type: control.CmdReset}, actionCommand
	case "prev":
		return control.Command{Type: control.CmdHistoryPrevious}, actionCommand
	case "next":
		return control.Command{Type: control.CmdHistoryNext}, actionCommand
	case "go", "submit":
		return control.Command{Type: control.CmdSubmit}, actionCommand
	case "history":
		return control.Command{}, actionHistory
	case "quit", "exit", "q":
		return control.Command{}, actionQuit
	}
	return control.Command{Type: control.CmdSubmit, Input: text}, actionCommand
}

type sessionConfig struct {
	Sound           timer.SoundPlayer
	CompletionSound string
	Interval        time.Duration
	Quiet           bool
	KeepRunning     bool
	// Linger delays the exit after completion so the alert can finish.
	Linger time.Duration
}

// session runs an engine for a terminal: it prints the clock and reacts to
// commands read line by line.
type session struct {
	out  io.Writer
	cfg  sessionConfig
	loop *control.Loop

	mu        sync.Mutex
	snapshot  timer.Snapshot
	lastClock string

	done     chan struct{}
	doneOnce sync.Once
	// inputClosed is set once stdin is exhausted; the session then ends as
	// soon as nothing is running, even with KeepRunning.
	inputClosed atomic.Bool
}

func newSession(out io.Writer, cfg sessionConfig) *session {
	s := &session{out: out, cfg: cfg, done: make(chan struct{})}
	if cfg.Sound != nil && cfg.Linger == 0 {
		s.cfg.Linger = 1500 * time.Millisecond
	}

	engine := timer.NewEngine(
		timer.WithSoundPlayer(cfg.Sound),
		timer.WithNotifier(s),
		timer.WithCompletionSound(cfg.CompletionSound),
		timer.WithMessages(i18n.EngineMessages()),
		timer.WithCompletionHandler(func(timer.Snapshot) {
			if !cfg.KeepRunning {
				s.finish()
			}
		}),
	)
	s.snapshot = engine.Snapshot()

	var opts []control.LoopOption
	if cfg.Interval > 0 {
		opts = append(opts, control.WithInterval(cfg.Interval))
	}
	opts = append(opts, control.WithUpdateHandler(s.onUpdate))
	s.loop = control.NewLoop(engine, opts...)
	return s
}

// Notify rings the terminal bell and prints the notification.
func (s *session) Notify(title, body string) {
	s.printf("\a%s: %s\n", title, body)
}

func (s *session) onUpdate(snap timer.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	clock := timer.FormatTime(snap.Remaining)
	changed := clock != s.lastClock
	s.lastClock = clock
	s.mu.Unlock()

	if changed && !s.cfg.Quiet && (snap.Running || snap.State == timer.StateCompleted) {
		s.printf("%s\n", clock)
	}
	if !snap.Running && s.inputClosed.Load() {
		s.finish()
	}
}

func (s *session) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *session) current() timer.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// run submits initial (when not empty) and processes lines from in until
// quit, end of input with nothing running, completion (unless KeepRunning)
// or cancellation.
func (s *session) run(ctx context.Context, initial string, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)

	loopDone := make(chan struct{})
	go func() {
		s.loop.Run(ctx)
		close(loopDone)
	}()
	defer func() { <-loopDone }()
	defer cancel()

	if strings.TrimSpace(initial) != "" {
		if err := s.handle(ctx, control.Command{Type: control.CmdSubmit, Input: initial}); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			if s.cfg.Linger > 0 {
				select {
				case <-time.After(s.cfg.Linger):
				case <-ctx.Done():
				}
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				s.inputClosed.Store(true)
				if !s.current().Running {
					return nil
				}
				lines = nil
				continue
			}
			cmd, act := parseLine(line)
			switch act {
			case actionQuit:
				return nil
			case actionHistory:
				s.printHistory()
				continue
			}
			// Parse errors are already reported through the status line.
			if err := s.handle(ctx, cmd); err != nil && ctx.Err() != nil {
				return nil
			}
		}
	}
}

// handle applies cmd, reports its visible result and returns the command's
// error.
func (s *session) handle(ctx context.Context, cmd control.Command) error {
	err := s.loop.Do(ctx, cmd)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, control.ErrDropped) {
		return err
	}

	snap := s.current()
	switch cmd.Type {
	case control.CmdSubmit:
		s.printf("%s\n", snap.Status)
	case control.CmdHistoryPrevious, control.CmdHistoryNext:
		s.printf("> %s\n", snap.Input)
	case control.CmdReset:
		s.printf("%s\n", timer.FormatTime(snap.Remaining))
	}
	return err
}

func (s *session) printHistory() {
	snap := s.current()
	for i, entry := range snap.History {
		s.printf("%2d  %s\n", i+1, entry)
	}
}
