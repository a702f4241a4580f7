//go:build js && wasm

// Browser entry: WebGL host, images from the page and audio from the
// <audio id="media"> element, driven by requestAnimationFrame.
package main

import (
	"context"

	"github.com/spaghettifunk/resonance/engine"
	"github.com/spaghettifunk/resonance/engine/assets"
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/particles"
	"github.com/spaghettifunk/resonance/engine/platform/web"
	"github.com/spaghettifunk/resonance/engine/renderer/webgl"
)

func main() {
	config := engine.DefaultConfig()

	images := assets.Chain{
		web.NewImages("images"),
		assets.MemoryImages{particles.DEFAULT_TEXTURE_NAME: assets.Circle(64)},
	}

	analyser := web.NewAnalyser()
	if err := analyser.Connect("media"); err != nil {
		// frames still render, the particles just stay at rest
		core.LogWarn(err.Error())
	}

	e, err := engine.New(config, webgl.New(), images, analyser)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}
	defer e.Shutdown()

	stop := web.ListenResize(e.Events(), config.CanvasID)
	defer stop()

	if err := e.Run(context.Background(), web.NewDriver()); err != nil {
		core.LogError(err.Error())
	}
}
