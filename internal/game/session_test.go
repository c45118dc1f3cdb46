package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"voxelstream/internal/config"
	"voxelstream/internal/graphics/headless"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.RenderDistance = 1
	cfg.Workers = 2
	return cfg
}

func TestSessionStreamsAroundObserver(t *testing.T) {
	r := headless.New()
	s, err := NewSession(testConfig(), r, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	pos := s.SpawnPosition(0, 0)
	rep, err := s.Update(pos)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rep.Spawned != 27 || r.Stats().Live != 27 {
		t.Fatalf("spawned %d, renderer live %d, want 27", rep.Spawned, r.Stats().Live)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.Stats().Live != 0 {
		t.Fatalf("renderer live after Close: %d", r.Stats().Live)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestSpawnPositionAboveGround(t *testing.T) {
	cfg := testConfig()
	cfg.Generator = config.GeneratorFlat
	cfg.FlatHeight = 10
	s, err := NewSession(cfg, headless.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if got, want := s.SpawnPosition(3, -4), (mgl32.Vec3{3.5, 12, -3.5}); got != want {
		t.Fatalf("SpawnPosition: got %v, want %v", got, want)
	}
}

func TestSessionRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RenderDistance = -1
	if _, err := NewSession(cfg, headless.New(), nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}

func TestSessionUpdateWrapsRenderFailure(t *testing.T) {
	r := headless.New()
	r.FailRegister = func(world.ChunkCoord) error { return errors.New("no context") }
	s, err := NewSession(testConfig(), r, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Update(mgl32.Vec3{}); !errors.Is(err, streaming.ErrRenderAllocation) {
		t.Fatalf("Update: got %v, want ErrRenderAllocation", err)
	}
}

func TestUpdateStartsProfilingFrame(t *testing.T) {
	s, err := NewSession(testConfig(), headless.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	pos := s.SpawnPosition(0, 0)
	for frame := 0; frame < 3; frame++ {
		if _, err := s.Update(pos); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if got := profiling.Snapshot()["graphics.Render"]; got != 0 {
			t.Fatalf("frame %d: render time %v carried over from earlier frames", frame, got)
		}
		profiling.Add("graphics.Render", 5*time.Millisecond)
	}
	if got := profiling.Snapshot()["graphics.Render"]; got != 5*time.Millisecond {
		t.Fatalf("render time for the last frame = %v, want 5ms", got)
	}
}

func TestFPSLimiterPaces(t *testing.T) {
	f := NewFPSLimiter(200)
	start := time.Now()
	for i := 0; i < 10; i++ {
		f.Wait()
	}
	// 10 frames at 200 Hz is 50ms; allow generous slack below.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("10 waits at 200Hz took %v, want >= 40ms", elapsed)
	}

	unlimited := NewFPSLimiter(0)
	start = time.Now()
	for i := 0; i < 1000; i++ {
		unlimited.Wait()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("unlimited limiter blocked for %v", elapsed)
	}
}

func TestStopperCleansUpOnLoopGoroutine(t *testing.T) {
	r := headless.New()
	s, err := NewSession(testConfig(), r, nil)
	if err != nil {
		t.Fatal(err)
	}
	stopper := NewStopper(context.Background())

	loopErr := make(chan error, 1)
	ticking := make(chan struct{})
	go func() {
		// The loop goroutine is the only one touching the session.
		pos := s.SpawnPosition(0, 0)
		var once bool
		for stopper.Context().Err() == nil {
			if _, err := s.Update(pos); err != nil {
				loopErr <- err
				stopper.Finish()
				return
			}
			if !once {
				close(ticking)
				once = true
			}
			pos = pos.Add(mgl32.Vec3{0.5, 0, 0})
		}
		loopErr <- s.Close()
		stopper.Finish()
	}()

	<-ticking
	stopper.Stop()

	if err := <-loopErr; err != nil {
		t.Fatalf("loop: %v", err)
	}
	if live := r.Stats().Live; live != 0 {
		t.Fatalf("renderer live after Stop: %d", live)
	}
	select {
	case <-stopper.Done():
	default:
		t.Fatal("Done not closed after Stop returned")
	}

	// Stop after Finish returns immediately.
	stopper.Stop()
	stopper.Finish()
}
