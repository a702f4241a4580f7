package audio

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/resonance/engine/math"
)

// Synthetic is a deterministic stand-in for an analyser: a few sine bands
// drifting across the spectrum, advanced one step per call. Two Synthetic
// sources with the same settings produce the same sequence.
type Synthetic struct {
	// Bands is the number of moving peaks.
	Bands int
	// Speed is the phase advance per frame, in bins.
	Speed float32
	// Every makes only every n-th call report fresh data, 1 for every call.
	Every int

	frame int
}

func NewSynthetic() *Synthetic {
	return &Synthetic{Bands: 3, Speed: 0.75, Every: 1}
}

// Frame is the number of calls so far.
func (s *Synthetic) Frame() int {
	return s.frame
}

func (s *Synthetic) ByteFrequencyData(buf []uint8) bool {
	frame := s.frame
	s.frame++

	every := s.Every
	if every < 1 {
		every = 1
	}
	if frame%every != 0 {
		return false
	}

	bins := float32(len(buf))
	if bins == 0 {
		return true
	}
	bands := s.Bands
	if bands < 1 {
		bands = 1
	}

	for i := range buf {
		var level float32
		for b := 0; b < bands; b++ {
			// each band travels at its own rate and wraps around the spectrum
			centre := math.Mod(float32(frame)*s.Speed*float32(b+1)+bins*float32(b)/float32(bands), bins)
			distance := math32.Abs(float32(i) - centre)
			distance = math32.Min(distance, bins-distance)
			level += math32.Exp(-distance * distance / (2 * 16))
		}
		// a slow breathing envelope on top
		level *= 0.75 + 0.25*math32.Sin(float32(frame)*0.05)
		buf[i] = uint8(math.Clamp(level, 0, 1) * 255)
	}
	return true
}
