// Command dotscreendemo runs the animated static pipeline, either headless
// (render N ticks and save a snapshot or recording) or in a window with
// live-reloaded configuration.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/dotscreen"
	"github.com/gogpu/dotscreen/config"
	"github.com/gogpu/dotscreen/integration/ebitenview"
	"github.com/gogpu/dotscreen/recording"
	"github.com/gogpu/dotscreen/static"
)

func main() {
	var (
		width      = flag.Int("width", 1280, "display width")
		height     = flag.Int("height", 720, "display height")
		configPath = flag.String("config", "dotscreen.toml", "configuration file")
		window     = flag.Bool("window", false, "open a window instead of rendering headless")
		frames     = flag.Int("frames", 120, "ticks to render in headless mode")
		output     = flag.String("output", "static.png", "snapshot file (.png or .webp), headless mode")
		record     = flag.String("record", "", "frame stream file, headless mode")
		verbose    = flag.Bool("v", false, "log pipeline activity")
	)
	flag.Parse()

	if *verbose {
		dotscreen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	levels := cfg.Levels()
	pipe, err := dotscreen.New(*width, *height, static.New(),
		dotscreen.WithParams(params),
		dotscreen.WithLevels(levels[0], levels[1], levels[2]),
		dotscreen.WithFramesBetweenProcess(cfg.Pipeline.FramesBetweenProcess),
	)
	if err != nil {
		log.Fatalf("creating pipeline: %v", err)
	}
	defer pipe.Close()

	if *window {
		runWindow(pipe, *configPath)
		return
	}
	runHeadless(pipe, *frames, *output, *record)
}

// runWindow presents the pipeline in an ebiten window and live-reloads the
// configuration file while it is open.
func runWindow(pipe *dotscreen.Pipeline, configPath string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := config.Watch(ctx, configPath, func(cfg *config.Config) {
			if err := cfg.Apply(pipe); err != nil {
				log.Printf("applying config: %v", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("config watch: %v", err)
		}
	}()

	if err := ebitenview.Run(pipe, "dotscreen"); err != nil {
		log.Fatalf("window: %v", err)
	}
}

// runHeadless steps the pipeline at a fixed 60 Hz timestep and writes the
// requested artifacts.
func runHeadless(pipe *dotscreen.Pipeline, frames int, output, record string) {
	var rec *recording.Recorder
	if record != "" {
		f, err := os.Create(record)
		if err != nil {
			log.Fatalf("creating recording: %v", err)
		}
		defer f.Close()
		rec, err = recording.NewRecorder(f)
		if err != nil {
			log.Fatalf("creating recorder: %v", err)
		}
		defer rec.Close()
	}

	const dt = 1.0 / 60.0
	tw, th := pipe.Size()
	for i := 0; i < frames; i++ {
		if err := pipe.Step(dt); err != nil {
			log.Fatalf("tick %d: %v", i, err)
		}
		if rec != nil {
			err := rec.WriteFrame(pipe.Time(), tw, th, pipe.Output().Pixmap().Data())
			if err != nil {
				log.Fatalf("recording tick %d: %v", i, err)
			}
		}
	}

	if output != "" {
		pm := pipe.Output().Pixmap()
		var err error
		if strings.HasSuffix(strings.ToLower(output), ".webp") {
			err = pm.SaveWebP(output)
		} else {
			err = pm.SavePNG(output)
		}
		if err != nil {
			log.Fatalf("saving snapshot: %v", err)
		}
		log.Printf("snapshot saved to %s (%dx%d)", output, tw, th)
	}
	if rec != nil {
		log.Printf("recorded %d frames to %s", rec.Frames(), record)
	}
}
