// Package audio plays the countdown alert sounds through beep.
//
// The built-in sounds are synthesized at start-up so the app ships without
// audio assets. Extra sounds can be loaded from a folder of .wav or .ogg
// files; they are named after the file.
package audio

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the speaker rate; loaded files are resampled to it.
const SampleRate beep.SampleRate = 44100

const noteGap = 80 * time.Millisecond

// tone describes a synthesized sound: a sequence of notes of equal length.
type tone struct {
	notes  []float64
	length time.Duration
	gain   float64
	decay  bool
}

var builtins = map[string]tone{
	"Default": {notes: []float64{880}, length: 400 * time.Millisecond, gain: -1},
	"Subtle":  {notes: []float64{660}, length: 250 * time.Millisecond, gain: -3},
	"Loud":    {notes: []float64{988, 988, 988}, length: 250 * time.Millisecond},
	"Gentle":  {notes: []float64{523.25, 659.25}, length: 500 * time.Millisecond, gain: -2, decay: true},
	"Bell":    {notes: []float64{1318.51, 1046.5}, length: 700 * time.Millisecond, gain: -1, decay: true},
}

// Player is a timer.SoundPlayer backed by beep buffers.
type Player struct {
	mu      sync.Mutex
	format  beep.Format
	buffers map[string]*beep.Buffer
	gains   map[string]float64
	volume  float64
	enabled bool
	output  func(beep.Streamer)
}

// NewPlayer initializes the speaker and synthesizes the built-in sounds. If
// the speaker cannot be initialized the player stays silent.
func NewPlayer(volume float64) *Player {
	p := newPlayer(volume, nil)
	if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v", err)
		return p
	}
	p.output = func(s beep.Streamer) { speaker.Play(s) }
	return p
}

func newPlayer(volume float64, output func(beep.Streamer)) *Player {
	p := &Player{
		format:  beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2},
		buffers: make(map[string]*beep.Buffer),
		gains:   make(map[string]float64),
		volume:  volume,
		enabled: true,
		output:  output,
	}
	for name, t := range builtins {
		buffer, err := synthesize(p.format, t)
		if err != nil {
			log.Printf("Failed to synthesize sound %s: %v", name, err)
			continue
		}
		p.buffers[name] = buffer
		p.gains[name] = t.gain
	}
	return p
}

func synthesize(format beep.Format, t tone) (*beep.Buffer, error) {
	buffer := beep.NewBuffer(format)
	n := format.SampleRate.N(t.length)
	for i, freq := range t.notes {
		sine, err := generators.SineTone(format.SampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", freq, err)
		}
		note := beep.Take(n, sine)
		if t.decay {
			note = fadeOut(note, n)
		}
		buffer.Append(note)
		if i < len(t.notes)-1 {
			buffer.Append(beep.Silence(format.SampleRate.N(noteGap)))
		}
	}
	return buffer, nil
}

// fadeOut scales s down to silence over n samples.
func fadeOut(s beep.Streamer, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		read, ok := s.Stream(samples)
		for i := 0; i < read; i++ {
			k := 1 - float64(pos)/float64(n)
			if k < 0 {
				k = 0
			}
			k *= k
			samples[i][0] *= k
			samples[i][1] *= k
			pos++
		}
		return read, ok
	})
}

// LoadDir adds every .wav and .ogg file in dir. Files that fail to decode are
// logged and skipped.
func (p *Player) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read sound dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".wav" && ext != ".ogg" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Printf("Failed to open audio %s: %v", path, err)
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if err := p.Load(name, ext, f); err != nil {
			log.Printf("Failed to load audio %s: %v", path, err)
			continue
		}
		log.Printf("Loaded sound %q from %s", name, path)
	}
	return nil
}

// Load decodes a .wav or .ogg stream and registers it under name, replacing
// any sound with the same name. Load closes rc.
func (p *Player) Load(name, ext string, rc io.ReadCloser) error {
	defer rc.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch strings.ToLower(ext) {
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".ogg":
		streamer, format, err = vorbis.Decode(rc)
	default:
		return fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != p.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, p.format.SampleRate, streamer)
	}
	buffer := beep.NewBuffer(p.format)
	buffer.Append(s)

	p.mu.Lock()
	p.buffers[name] = buffer
	p.gains[name] = 0
	p.mu.Unlock()
	return nil
}

// Play starts the named sound and returns immediately. Unknown names are
// logged and ignored.
func (p *Player) Play(name string) {
	p.mu.Lock()
	b, ok := p.buffers[name]
	gain := p.gains[name] + p.volume
	enabled := p.enabled
	output := p.output
	p.mu.Unlock()

	if !enabled || output == nil {
		return
	}
	if !ok {
		log.Printf("Sound buffer not found for %s", name)
		return
	}

	output(&effects.Volume{
		Streamer: b.Streamer(0, b.Len()),
		Base:     2,
		Volume:   gain,
		Silent:   math.IsInf(gain, -1),
	})
}

// SetVolume sets the master volume in beep's base-2 units; 0 plays sounds at
// their built-in level.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = v
	p.mu.Unlock()
}

// SetEnabled mutes or unmutes the player.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

// Has reports whether a sound named name is loaded.
func (p *Player) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.buffers[name]
	return ok
}

// Names returns the loaded sound names, sorted.
func (p *Player) Names() []string {
	p.mu.Lock()
	names := make([]string, 0, len(p.buffers))
	for name := range p.buffers {
		names = append(names, name)
	}
	p.mu.Unlock()
	sort.Strings(names)
	return names
}
