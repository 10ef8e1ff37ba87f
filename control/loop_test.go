package control

import (
	"CountDown/duration"
	"CountDown/timer"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct{ ch chan time.Time }

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               {}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	ticker *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ticker: &fakeTicker{ch: make(chan time.Time)},
	}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker { return c.ticker }

// advance moves the clock forward and delivers one tick; it returns once the
// loop has received it.
func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	c.ticker.ch <- now
}

type countingSound struct {
	mu    sync.Mutex
	count int
}

func (s *countingSound) Play(string) {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
}

func (s *countingSound) played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func startLoop(t *testing.T, e *timer.Engine, clock Clock) (*Loop, chan timer.Snapshot) {
	t.Helper()
	updates := make(chan timer.Snapshot, 256)
	l := NewLoop(e, WithClock(clock), WithUpdateHandler(func(s timer.Snapshot) {
		select {
		case updates <- s:
		default:
		}
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return l, updates
}

func waitFor(t *testing.T, updates <-chan timer.Snapshot, match func(timer.Snapshot) bool) timer.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-updates:
			if match(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot")
			return timer.Snapshot{}
		}
	}
}

func TestLoopSubmitAndTick(t *testing.T) {
	clock := newFakeClock()
	sound := &countingSound{}
	e := timer.NewEngine(timer.WithSoundPlayer(sound))
	l, updates := startLoop(t, e, clock)
	ctx := context.Background()

	require.NoError(t, l.Do(ctx, Command{Type: CmdSubmit, Input: "1s"}))
	waitFor(t, updates, func(s timer.Snapshot) bool { return s.Running })

	clock.advance(400 * time.Millisecond)
	s := waitFor(t, updates, func(s timer.Snapshot) bool { return s.Remaining < time.Second })
	assert.Equal(t, 600*time.Millisecond, s.Remaining)

	clock.advance(700 * time.Millisecond)
	s = waitFor(t, updates, func(s timer.Snapshot) bool { return s.State == timer.StateCompleted })
	assert.Zero(t, s.Remaining)
	assert.Equal(t, 1, sound.played())
}

func TestLoopSubmitErrorReply(t *testing.T) {
	e := timer.NewEngine()
	l, _ := startLoop(t, e, newFakeClock())

	err := l.Do(context.Background(), Command{Type: CmdSubmit, Input: "xyz"})
	assert.True(t, errors.Is(err, duration.ErrUnrecognizedFormat))

	err = l.Do(context.Background(), Command{Type: CmdSubmit})
	assert.True(t, errors.Is(err, duration.ErrEmptyInput))
}

func TestLoopCommands(t *testing.T) {
	clock := newFakeClock()
	e := timer.NewEngine()
	l, updates := startLoop(t, e, clock)
	ctx := context.Background()

	require.NoError(t, l.Do(ctx, Command{Type: CmdSetInput, Input: "2m"}))
	require.NoError(t, l.Do(ctx, Command{Type: CmdSubmit}))
	require.NoError(t, l.Do(ctx, Command{Type: CmdPause}))
	s := waitFor(t, updates, func(s timer.Snapshot) bool { return !s.Running && s.Target == 2*time.Minute })
	assert.Equal(t, []string{"2m"}, s.History)

	// Ticks while paused do not move the countdown.
	clock.advance(time.Second)
	require.NoError(t, l.Do(ctx, Command{Type: CmdToggle}))
	s = waitFor(t, updates, func(s timer.Snapshot) bool { return s.Running })
	assert.Equal(t, 2*time.Minute, s.Remaining)

	clock.advance(30 * time.Second)
	waitFor(t, updates, func(s timer.Snapshot) bool { return s.Remaining == 90*time.Second })

	require.NoError(t, l.Do(ctx, Command{Type: CmdReset}))
	s = waitFor(t, updates, func(s timer.Snapshot) bool { return !s.Running })
	assert.Equal(t, 2*time.Minute, s.Remaining)

	require.NoError(t, l.Do(ctx, Command{Type: CmdHistoryPrevious}))
	waitFor(t, updates, func(s timer.Snapshot) bool { return s.Input == "2m" })
	require.NoError(t, l.Do(ctx, Command{Type: CmdHistoryNext}))
	waitFor(t, updates, func(s timer.Snapshot) bool { return s.Input == "" })

	require.NoError(t, l.Do(ctx, Command{Type: CmdStart}))
	waitFor(t, updates, func(s timer.Snapshot) bool { return s.Running })
}

func TestLoopDoHonoursContext(t *testing.T) {
	// No Run: the command sits in the queue until the context expires.
	l := NewLoop(timer.NewEngine())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Do(ctx, Command{Type: CmdStart})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoopOptions(t *testing.T) {
	l := NewLoop(timer.NewEngine(), WithInterval(time.Second))
	assert.Equal(t, time.Second, l.Interval())

	l = NewLoop(timer.NewEngine(), WithInterval(0))
	assert.Equal(t, timer.DefaultTickInterval, l.Interval())
}

func TestCommandTypeString(t *testing.T) {
	assert.Equal(t, "submit", CmdSubmit.String())
	assert.Equal(t, "history-next", CmdHistoryNext.String())
	assert.Equal(t, "unknown", CommandType(99).String())
}

func TestLoopSetCompletionSound(t *testing.T) {
	e := timer.NewEngine()
	l, _ := startLoop(t, e, newFakeClock())

	require.NoError(t, l.Do(context.Background(), Command{Type: CmdSetCompletionSound, Input: "Gentle"}))
	require.NoError(t, l.Do(context.Background(), Command{Type: CmdSetCompletionSound}))
	assert.Equal(t, "Gentle", e.CompletionSound(), "an empty name keeps the current sound")
}
