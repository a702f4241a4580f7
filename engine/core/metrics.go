package core

import "github.com/spaghettifunk/resonance/engine/containers"

const AVG_COUNT int = 30

// FrameMetrics keeps a sliding average of frame times and a once-a-second FPS
// count. Owned by the engine, one per frame driver.
type FrameMetrics struct {
	frameTimes         *containers.RingQueue[float64]
	frames             int32
	accumulatedFrameMS float64
	fps                float64
	totalFrames        uint64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records one frame that took frameMS milliseconds.
func (m *FrameMetrics) Update(frameMS float64) {
	m.frameTimes.Push(frameMS)
	m.totalFrames++

	// Calculate Frames per second.
	m.accumulatedFrameMS += frameMS
	m.frames++
	if m.accumulatedFrameMS >= 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}
}

func (m *FrameMetrics) FPS() float64 {
	return m.fps
}

// FrameTime is the average frame time in milliseconds over the last AVG_COUNT frames.
func (m *FrameMetrics) FrameTime() float64 {
	samples := m.frameTimes.Values()
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

func (m *FrameMetrics) TotalFrames() uint64 {
	return m.totalFrames
}
