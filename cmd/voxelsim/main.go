// Command voxelsim streams terrain around an observer walking a straight line,
// without a window. It reports per-tick load and unload counts and the
// registered face totals.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"voxelstream/internal/config"
	"voxelstream/internal/game"
	"voxelstream/internal/graphics/headless"
	"voxelstream/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("voxelsim", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	ticks := fs.Int("ticks", 300, "number of ticks to simulate")
	speed := fs.Float64("speed", 8, "observer speed in blocks per second")
	heading := fs.Float64("heading", 0, "walk direction in degrees, 0 is +X")
	realtime := fs.Bool("realtime", false, "pace ticks at tick_rate instead of running flat out")
	config.BindFlags(fs, cfg)
	_ = fs.Parse(os.Args[1:])

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "voxelsim: %v\n", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(fs))
	}

	log := cfg.NewLogger(os.Stderr)
	slog.SetDefault(log)

	if _, err := run(cfg, log, *ticks, float32(*speed), float32(*heading), *realtime); err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// simulatedRate is the tick rate assumed for movement when tick_rate is 0.
const simulatedRate = 60

// stepPerTick returns the distance walked per tick at speed blocks per second.
func stepPerTick(speed float32, tickRate int) float32 {
	if tickRate <= 0 {
		tickRate = simulatedRate
	}
	return speed / float32(tickRate)
}

// run walks the observer for the given number of ticks and returns its final position.
func run(cfg *config.Config, log *slog.Logger, ticks int, speed, heading float32, realtime bool) (mgl32.Vec3, error) {
	r := headless.New()
	session, err := game.NewSession(cfg, r, log)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Error("release chunks", "error", err)
		}
	}()

	limit := 0
	if realtime {
		limit = cfg.TickRate
	}
	limiter := game.NewFPSLimiter(limit)

	rad := float64(mgl32.DegToRad(heading))
	dir := mgl32.Vec3{float32(math.Cos(rad)), 0, float32(math.Sin(rad))}
	step := stepPerTick(speed, cfg.TickRate)
	pos := session.SpawnPosition(0, 0)

	var (
		loaded, unloaded int
		busiest          time.Duration
		start            = time.Now()
	)
	for i := 0; i < ticks; i++ {
		rep, err := session.Update(pos)
		if err != nil {
			return pos, err
		}
		loaded += len(rep.Loaded)
		unloaded += len(rep.Unloaded)
		busiest = max(busiest, rep.Total)

		if len(rep.Loaded) > 0 || len(rep.Unloaded) > 0 {
			log.Debug("tick",
				"tick", rep.Tick,
				"center", rep.Center,
				"loaded", len(rep.Loaded),
				"unloaded", len(rep.Unloaded),
				"spawned", rep.Spawned,
				"load", rep.Load,
				"top", profiling.TopN(3))
		}

		pos = pos.Add(dir.Mul(step))
		limiter.Wait()
	}

	stats := r.Stats()
	log.Info("simulation finished",
		"ticks", ticks,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"slowest_tick", busiest,
		"loaded", loaded,
		"unloaded", unloaded,
		"live", stats.Live,
		"faces", stats.Faces,
		"final_position", pos)
	return pos, nil
}
