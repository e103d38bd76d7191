package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"PhotoSketch/internal/config"
	"PhotoSketch/internal/logging"
	"PhotoSketch/internal/state"
	"PhotoSketch/internal/surface"
	"PhotoSketch/internal/ui"
)

func main() {
	cfgPath := flag.String("config", os.Getenv(config.EnvConfigPath), "path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "photosketch:", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, cfg.Log.Level)
	slog.SetDefault(log)
	surface.SetLogger(log)
	gg.SetLogger(log.With("component", "gg"))
	state.OnStrokeSealed = func(st *state.Stroke) {
		log.Debug("[STATE] stroke sealed", "id", st.ID, "seq", st.Seq, "segments", st.Len())
	}

	if err := ui.RunApp(cfg, log); err != nil {
		log.Error("[APP] failed", "err", err)
		os.Exit(1)
	}
}
