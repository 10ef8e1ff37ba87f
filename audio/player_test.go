package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct{ streams []beep.Streamer }

func (c *capture) play(s beep.Streamer) { c.streams = append(c.streams, s) }

func drain(s beep.Streamer) int {
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestBuiltinSounds(t *testing.T) {
	p := newPlayer(0, nil)
	assert.Equal(t, []string{"Bell", "Default", "Gentle", "Loud", "Subtle"}, p.Names())
	assert.True(t, p.Has("Bell"))
	assert.False(t, p.Has("Nope"))
}

func TestPlayKnownSound(t *testing.T) {
	c := &capture{}
	p := newPlayer(0, c.play)

	p.Play("Default")
	require.Len(t, c.streams, 1)
	assert.Equal(t, SampleRate.N(400*time.Millisecond), drain(c.streams[0]))
}

func TestPlayUnknownSoundIgnored(t *testing.T) {
	c := &capture{}
	p := newPlayer(0, c.play)
	assert.NotPanics(t, func() { p.Play("does-not-exist") })
	assert.Empty(t, c.streams)
}

func TestPlayDisabledOrWithoutSpeaker(t *testing.T) {
	c := &capture{}
	p := newPlayer(0, c.play)
	p.SetEnabled(false)
	p.Play("Bell")
	assert.Empty(t, c.streams)

	silent := newPlayer(0, nil)
	assert.NotPanics(t, func() { silent.Play("Bell") })
}

func TestFadeOutReachesSilence(t *testing.T) {
	sine, err := generators.SineTone(SampleRate, 440)
	require.NoError(t, err)
	n := 1000
	s := fadeOut(beep.Take(n, sine), n)

	samples := make([][2]float64, n)
	read, _ := s.Stream(samples)
	require.Equal(t, n, read)
	assert.InDelta(t, 0, samples[n-1][0], 1e-5)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	sine, err := generators.SineTone(format.SampleRate, 440)
	require.NoError(t, err)

	f, err := os.Create(filepath.Join(dir, "Chime.wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, beep.Take(format.SampleRate.N(100*time.Millisecond), sine), format))
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ogg"), []byte("not audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	c := &capture{}
	p := newPlayer(0, c.play)
	require.NoError(t, p.LoadDir(dir))

	assert.True(t, p.Has("Chime"))
	assert.False(t, p.Has("broken"))
	assert.False(t, p.Has("notes"))

	p.Play("Chime")
	require.Len(t, c.streams, 1)
	// Resampled from 22.05kHz to the speaker rate.
	assert.InDelta(t, SampleRate.N(100*time.Millisecond), drain(c.streams[0]), 100)
}

func TestLoadDirMissing(t *testing.T) {
	p := newPlayer(0, nil)
	assert.Error(t, p.LoadDir(filepath.Join(t.TempDir(), "missing")))
}
