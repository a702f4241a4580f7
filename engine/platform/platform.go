package platform

import (
	"context"
	"errors"
	"time"

	"github.com/spaghettifunk/resonance/engine/core"
)

// ErrStop ends a driver loop without an error. Frame functions return it
// when the application asked to quit.
var ErrStop = errors.New("stop requested")

// FrameFunc renders one frame that follows deltaMs milliseconds after the
// previous one.
type FrameFunc func(deltaMs float64) error

// Driver calls a FrameFunc once per display frame until the context is done,
// the frame function fails or it returns ErrStop.
type Driver interface {
	Run(ctx context.Context, frame FrameFunc) error
}

// Headless drives a fixed number of frames with a fixed step, as fast as the
// frame function allows. Frames <= 0 runs until the context is cancelled.
type Headless struct {
	Frames int
	StepMs float64

	clock     *core.Clock
	framesRun int
}

func NewHeadless(frames int, stepMs float64) *Headless {
	return &Headless{
		Frames: frames,
		StepMs: stepMs,
		clock:  core.NewClock(),
	}
}

func (h *Headless) Run(ctx context.Context, frame FrameFunc) error {
	h.clock.Start()
	defer h.clock.Update()

	for h.Frames <= 0 || h.framesRun < h.Frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := frame(h.StepMs)
		if errors.Is(err, ErrStop) {
			return nil
		}
		if err != nil {
			return err
		}
		h.framesRun++
	}
	return nil
}

// FramesRun is the number of frames completed by Run.
func (h *Headless) FramesRun() int {
	return h.framesRun
}

// Elapsed is the wall time the last Run took.
func (h *Headless) Elapsed() time.Duration {
	return h.clock.Elapsed()
}
