package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"voxelstream/internal/config"
	"voxelstream/internal/game"
	"voxelstream/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("voxelview", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	shaderDir := fs.String("shaders", "", "directory holding chunk.vert and chunk.frag (built-in shaders when empty)")
	config.BindFlags(fs, cfg)
	_ = fs.Parse(os.Args[1:])

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "voxelview: %v\n", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(fs))
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "voxelview: %v\n", err)
		os.Exit(2)
	}

	log := cfg.NewLogger(os.Stderr)
	slog.SetDefault(log)

	if err := glfw.Init(); err != nil {
		log.Error("glfw init failed", "error", err)
		os.Exit(1)
	}

	window, err := viewer.SetupWindow(cfg.Window, "voxelview")
	if err != nil {
		glfw.Terminate()
		log.Error("window setup failed", "error", err)
		os.Exit(1)
	}

	app, err := viewer.NewApp(window, cfg, *shaderDir, log)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		log.Error("viewer init failed", "error", err)
		os.Exit(1)
	}

	// Signals only request a stop; GL and streaming cleanup stay on this
	// locked thread.
	stopper := game.NewStopper(context.Background())
	closer.Bind(stopper.Stop)

	runErr := app.Run(stopper.Context())
	if err := app.Close(); err != nil {
		log.Error("release chunks", "error", err)
	}
	window.Destroy()
	glfw.Terminate()
	stopper.Finish()

	if runErr != nil {
		log.Error("viewer stopped", "error", runErr)
		closer.Exit(1)
	}
	log.Info("voxelview stopped")
	closer.Close()
}
