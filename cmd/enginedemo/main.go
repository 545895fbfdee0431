// Command enginedemo renders a small demo scene and writes it to a PNG.
//
// By default it uses the CPU reference rasterizer, so it runs anywhere;
// with -backend it renders through the GPU pipeline instead.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/mkualquiera/webengine"
	"github.com/mkualquiera/webengine/pipeline"
	"github.com/mkualquiera/webengine/raster"
)

func main() {
	var (
		configPath = flag.String("config", "", "engine config file (yaml)")
		output     = flag.String("output", "demo.png", "output file")
		backend    = flag.String("backend", "", "renderer: cpu, noop, vulkan, or auto (default: config, then cpu)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	webengine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := webengine.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = webengine.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	renderer := *backend
	if renderer == "" {
		renderer = cfg.Backend
	}
	if renderer == "" {
		renderer = "cpu"
	}

	var img *image.RGBA
	var err error
	if renderer == "cpu" {
		img = renderCPU(cfg)
	} else {
		img, err = renderGPU(cfg, renderer)
		if err != nil {
			log.Fatalf("render: %v", err)
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	log.Printf("demo saved to %s (%dx%d)", *output, cfg.Width, cfg.Height)
}

// scene returns the transform and tint of each square in the demo: a
// ring of rotated squares cycling through the engine palette.
func scene(cfg webengine.Config) (transforms []webengine.Transform, tints []webengine.EngineColor) {
	w := float32(cfg.Width)
	h := float32(cfg.Height)
	ortho := webengine.Orthographic(w, h)
	palette := []webengine.EngineColor{
		webengine.Red, webengine.Green, webengine.Blue,
		webengine.Purple, webengine.White,
	}

	const count = 10
	size := h / 6
	radius := h / 3
	for i := 0; i < count; i++ {
		angle := float32(i) / count * 2 * math.Pi
		x := w/2 + radius*float32(math.Cos(float64(angle)))
		y := h/2 + radius*float32(math.Sin(float64(angle)))

		t := ortho.
			Translate(webengine.V3(x, y, 0)).
			Rotate(angle, webengine.V3(0, 0, 1)).
			Translate(webengine.V3(-size/2, -size/2, 0)).
			Scale(webengine.V3(size, size, 1))
		transforms = append(transforms, t)
		tints = append(tints, palette[i%len(palette)])
	}
	return transforms, tints
}

func renderCPU(cfg webengine.Config) *image.RGBA {
	target := raster.NewTarget(cfg.Width, cfg.Height)
	target.Clear(cfg.ClearEngineColor())
	r := raster.New(target)

	transforms, tints := scene(cfg)
	square := webengine.UnitSquare()
	for i := range transforms {
		if err := r.Draw(square, transforms[i], tints[i]); err != nil {
			log.Fatalf("draw: %v", err)
		}
	}
	return target.Image()
}

func renderGPU(cfg webengine.Config, backend string) (*image.RGBA, error) {
	if backend == "auto" {
		backend = pipeline.BackendAuto
	}
	dev, err := pipeline.Open(backend)
	if err != nil {
		return nil, err
	}
	defer dev.Close()

	rs, err := pipeline.NewRenderSystem(dev, uint32(cfg.Width), uint32(cfg.Height),
		pipeline.WithLabel("enginedemo"),
		pipeline.WithClearColor(cfg.ClearEngineColor()))
	if err != nil {
		return nil, err
	}
	defer rs.Destroy()

	d := rs.BeginFrame()
	if err := d.ClearDefault(); err != nil {
		return nil, err
	}
	transforms, tints := scene(cfg)
	for i := range transforms {
		if err := d.DrawSquare(&transforms[i], &tints[i]); err != nil {
			return nil, err
		}
	}
	return d.Readback()
}
