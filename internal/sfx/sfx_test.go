package sfx

import (
	"io"
	"math"
	"testing"
)

func decodeFrames(buf []byte) []float32 {
	out := make([]float32, 0, len(buf)/8)
	for i := 0; i+7 < len(buf); i += 8 {
		bits := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24
		out = append(out, math.Float32frombits(bits))
	}
	return out
}

func TestGeneratedSoundsInRange(t *testing.T) {
	for name, gen := range map[string]func() []byte{
		"click": genClick,
		"blip":  genBlip,
		"chime": genChime,
	} {
		buf := gen()
		if len(buf) == 0 || len(buf)%8 != 0 {
			t.Fatalf("%s: bad buffer length %d", name, len(buf))
		}
		for i, s := range decodeFrames(buf) {
			if s < -1 || s > 1 || math.IsNaN(float64(s)) {
				t.Fatalf("%s: sample %d out of range: %v", name, i, s)
			}
		}
	}
}

func TestPutStereoF32DuplicatesChannels(t *testing.T) {
	buf := makeBuf(2)
	putStereoF32(buf, 1, 0.25)
	frames := decodeFrames(buf[8:])
	if frames[0] != 0.25 {
		t.Fatalf("left channel: got %v", frames[0])
	}
	bits := uint32(buf[12]) | uint32(buf[13])<<8 | uint32(buf[14])<<16 | uint32(buf[15])<<24
	if math.Float32frombits(bits) != 0.25 {
		t.Fatal("right channel does not match left")
	}
}

func TestSoundReaderDrains(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	p := make([]byte, 3)
	n, err := r.Read(p)
	if n != 3 || err != nil {
		t.Fatalf("first read: n=%d err=%v", n, err)
	}
	n, err = r.Read(p)
	if n != 2 || err != nil {
		t.Fatalf("second read: n=%d err=%v", n, err)
	}
	if _, err := r.Read(p); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNilSystemIsSafe(t *testing.T) {
	var s *System
	s.Click()
	s.Blip()
	s.Chime()
	s.SetVolume(0.5)
}

func TestSoftSatBounded(t *testing.T) {
	for _, x := range []float64{-10, -1.5, -1, 0, 0.5, 1, 1.5, 10} {
		y := softSat(x)
		if y < -1 || y > 1 {
			t.Fatalf("softSat(%v) = %v out of range", x, y)
		}
	}
}
