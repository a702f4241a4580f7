/*
Headless runner: drives the visualizer against the trace host with
synthetic audio and writes every device call to a file or stdout.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/resonance/engine"
	"github.com/spaghettifunk/resonance/engine/assets"
	"github.com/spaghettifunk/resonance/engine/audio"
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/platform"
	"github.com/spaghettifunk/resonance/engine/renderer/trace"
)

func main() {
	configPath := flag.String("config", "", "path of a toml config file")
	frames := flag.Int("frames", 120, "number of frames to run, 0 runs until interrupted")
	step := flag.Float64("step", 1000.0/60.0, "milliseconds between frames")
	out := flag.String("out", "", "trace output file, stdout when empty")
	flag.Parse()

	if err := run(*configPath, *frames, *step, *out); err != nil {
		core.LogFatal(err.Error())
	}
}

func run(configPath string, frames int, step float64, out string) error {
	config := engine.DefaultConfig()
	if configPath != "" {
		var err error
		if config, err = engine.LoadConfig(configPath); err != nil {
			return err
		}
	}

	bus := core.NewEventBus()
	am, err := assets.NewAssetManager(bus)
	if err != nil {
		return err
	}
	am.ImageParams.MaxSize = config.MaxImageSize
	if _, err := os.Stat(config.AssetsDir); err == nil {
		if err := am.Initialize(config.AssetsDir); err != nil {
			return err
		}
	} else {
		core.LogWarn("assets directory %s not available, using the built in sprite", config.AssetsDir)
	}
	defer am.Shutdown()

	images := assets.Chain{
		am,
		assets.MemoryImages{config.Particles.Texture: assets.Circle(64)},
	}

	rec := trace.New(trace.DefaultOptions())
	e, err := engine.New(config, rec, images, audio.NewSynthetic(),
		engine.WithEventBus(bus),
		engine.WithTextSource(am),
	)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}
	defer e.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		cancel()
	}()

	driver := platform.NewHeadless(frames, step)
	if err := e.Run(ctx, driver); err != nil && ctx.Err() == nil {
		return err
	}

	metrics := e.Metrics()
	core.LogInfo("%d frames in %s, %.2f ms simulated per frame, %.0f fps simulated",
		driver.FramesRun(), driver.Elapsed(), metrics.FrameTime(), metrics.FPS())
	p := e.Renderer().Particles().Placement(0)
	core.LogInfo("particle 0 at (%.1f, %.1f) px, size %.1f, color (%.2f, %.2f, %.2f)",
		p.Position.X, p.Position.Y, p.Size, p.Color.X, p.Color.Y, p.Color.Z)

	return writeTrace(out, e, rec, driver.FramesRun())
}

func writeTrace(path string, e *engine.Engine, rec *trace.Recorder, frames int) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "# %s trace session=%s frames=%d calls=%d\n", e.Config().Name, e.SessionID(), frames, len(rec.Calls()))
	for _, stats := range e.Proxy().Stats() {
		fmt.Fprintf(buf, "# %s: %d live, %d slots\n", stats.Category, stats.Live, stats.Slots)
	}
	if _, err := rec.WriteTo(buf); err != nil {
		return err
	}
	return buf.Flush()
}
