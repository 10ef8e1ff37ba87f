package main

import (
	"CountDown/control"
	"CountDown/duration"
	"CountDown/i18n"
	"CountDown/timer"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	i18n.SetLang("en")
	os.Exit(m.Run())
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want control.Command
		act  action
	}{
		{name: "empty line toggles", in: "", want: control.Command{Type: control.CmdToggle}},
		{name: "toggle", in: "toggle", want: control.Command{Type: control.CmdToggle}},
		{name: "start with spaces", in: "  start ", want: control.Command{Type: control.CmdStart}},
		{name: "pause upper case", in: "PAUSE", want: control.Command{Type: control.CmdPause}},
		{name: "reset", in: "reset", want: control.Command{Type: control.CmdReset}},
		{name: "prev", in: "prev", want: control.Command{Type: control.CmdHistoryPrevious}},
		{name: "next", in: "next", want: control.Command{Type: control.CmdHistoryNext}},
		{name: "go submits buffer", in: "go", want: control.Command{Type: control.CmdSubmit}},
		{name: "history", in: "history", act: actionHistory},
		{name: "quit", in: "quit", act: actionQuit},
		{name: "q", in: "q", act: actionQuit},
		{name: "duration", in: " 1h 30m ", want: control.Command{Type: control.CmdSubmit, Input: "1h 30m"}},
		{name: "relative keeps case", in: "Add 5m", want: control.Command{Type: control.CmdSubmit, Input: "Add 5m"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, act := parseLine(tt.in)
			assert.Equal(t, tt.act, act)
			assert.Equal(t, tt.want, got)
		})
	}
}

func runSession(t *testing.T, cfg sessionConfig, initial, input string) (string, error) {
	t.Helper()
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Millisecond
	}
	var out bytes.Buffer
	s := newSession(&out, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.run(ctx, initial, strings.NewReader(input))
	require.NoError(t, ctx.Err(), "session did not finish in time")
	return out.String(), err
}

func TestSessionRunsToCompletion(t *testing.T) {
	out, err := runSession(t, sessionConfig{}, "0.05s", "")
	require.NoError(t, err)

	assert.Contains(t, out, "Timer set for 0s")
	assert.Contains(t, out, "\aCountdown Timer: Your countdown has finished!")
	assert.True(t, strings.HasSuffix(out, "00:00\n"), "last line is the zero clock: %q", out)
}

func TestSessionKeepRunningExitsWhenInputEnds(t *testing.T) {
	out, err := runSession(t, sessionConfig{KeepRunning: true}, "0.05s", "")
	require.NoError(t, err)

	assert.Contains(t, out, "Your countdown has finished!")
	assert.True(t, strings.HasSuffix(out, "00:00\n"), "last line is the zero clock: %q", out)
}

func TestSessionKeepRunningExitsAfterCompletionAtEOF(t *testing.T) {
	// Input ends only after the countdown has already completed.
	r, w := io.Pipe()
	var out bytes.Buffer
	s := newSession(&out, sessionConfig{KeepRunning: true, Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.run(ctx, "0.05s", r) }()

	require.Eventually(t, func() bool {
		return s.current().State == timer.StateCompleted
	}, 4*time.Second, 5*time.Millisecond)
	require.NoError(t, w.Close())

	require.NoError(t, <-errc)
	require.NoError(t, ctx.Err(), "session did not finish in time")
}

func TestSessionQuietPrintsNoClock(t *testing.T) {
	out, err := runSession(t, sessionConfig{Quiet: true}, "0.05s", "")
	require.NoError(t, err)

	assert.NotContains(t, out, "00:0")
	assert.Contains(t, out, "Your countdown has finished!")
}

func TestSessionRejectsInvalidInitialDuration(t *testing.T) {
	out, err := runSession(t, sessionConfig{}, "soon", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, duration.ErrUnrecognizedFormat)
	assert.Contains(t, out, "Could not understand input")
}

func TestSessionCommands(t *testing.T) {
	input := strings.Join([]string{
		"10m",
		"pause",
		"nonsense",
		"add 5m",
		"pause",
		"prev",
		"prev",
		"history",
		"reset",
		"quit",
	}, "\n")

	// No ticks, so the remaining time only changes through commands.
	out, err := runSession(t, sessionConfig{Quiet: true, Interval: time.Hour}, "", input)
	require.NoError(t, err)

	assert.Contains(t, out, "Timer set for 10m\n")
	assert.Contains(t, out, "Could not understand input")
	assert.Contains(t, out, "Timer set for 15m\n")
	assert.Contains(t, out, "> add 5m\n")
	assert.Contains(t, out, "> 10m\n")
	assert.Contains(t, out, " 1  10m\n 2  add 5m\n")
	assert.True(t, strings.HasSuffix(out, "15:00\n"), "reset prints the restored target: %q", out)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "lang", "quiet", "keep-running"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRootCmdRunsWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sound:\n  enabled: false\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("quit\n"))
	cmd.SetArgs([]string{"--config", path, "--quiet", "1h"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Timer set for 1h")
	assert.FileExists(t, path)
}
