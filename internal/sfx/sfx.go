// Package sfx plays short procedural UI sounds. Initialization failure is
// non-fatal: a nil System swallows every call so demos run fine without an
// audio device.
package sfx

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// System owns the audio context. Sounds are synthesized per play and fed to
// a fresh player from a goroutine.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
}

// NewSystem opens the audio device. The returned system only plays once the
// device reports ready; until then plays are dropped silently.
func NewSystem() (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &System{ctx: ctx, ready: ready, volume: 0.55}, nil
}

// SetVolume sets the playback gain in [0,1].
func (s *System) SetVolume(v float64) {
	if s == nil {
		return
	}
	s.volume = clamp01(v)
}

// Click plays a crisp high blip, used when a control point is placed.
func (s *System) Click() { s.play(genClick()) }

// Blip plays a short descending pop, used when a control point is removed.
func (s *System) Blip() { s.play(genBlip()) }

// Chime plays a two-note confirmation, used when the curve quality changes.
func (s *System) Chime() { s.play(genChime()) }

func (s *System) play(samples []byte) {
	if s == nil || len(samples) == 0 {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	go func() {
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(s.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels
// at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// adsr returns an envelope at normalized progress [0,1].
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// softSat applies gentle saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/-x
	}
	return x - x*x*x/3.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// genClick: snappy ascending FM pop.
func genClick() []byte {
	n := int(0.07 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 900 + 500*p
		s := fm(t, freq, 2.0, 2.5*env) * env * 0.45
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBlip: short descending tone.
func genBlip() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.008, 0.5, 0.05, 0.2)
		freq := 600 - 350*p
		s := fm(t, freq, 1.5, 1.8*(1-p)) * env * 0.45
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genChime: two ascending bell notes, the second ringing over the first.
func genChime() []byte {
	notes := []float64{659.25, 987.77}
	noteStep := int(0.08 * SampleRate)
	total := len(notes)*noteStep + int(0.15*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.6, 0.04, 0.3)
			mix[start+j] += fm(t, freq, 2.756, 4.0*env) * env * 0.3
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
