// Package viewer runs the interactive window: a fly camera over streamed terrain.
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voxelstream/internal/config"
	"voxelstream/internal/game"
	"voxelstream/internal/graphics"
	"voxelstream/internal/input"
	"voxelstream/internal/observer"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// App owns the window loop.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	camera       *observer.FlyCamera
	renderer     *graphics.ChunkRenderer
	session      *game.Session
	log          *slog.Logger

	fpsLimiter     *game.FPSLimiter
	lastTime       time.Time
	cursorReleased bool
	showProfiling  bool
}

// NewApp creates the renderer and session for an open window.
func NewApp(window *glfw.Window, cfg *config.Config, shaderDir string, log *slog.Logger) (*App, error) {
	r, err := graphics.NewChunkRenderer(graphics.Options{
		ShaderDir: shaderDir,
		Wireframe: cfg.Window.Wireframe,
		FogEnd:    float32((cfg.RenderDistance + 1) * world.ChunkSize),
	}, log.With("component", "graphics"))
	if err != nil {
		return nil, err
	}

	session, err := game.NewSession(cfg, r, log)
	if err != nil {
		r.Dispose()
		return nil, err
	}

	im := input.NewInputManager()
	im.SetKeyCallback(window)

	cam := observer.NewFlyCamera(session.SpawnPosition(0, 0))
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		cam.HandleMouseMovement(xpos, ypos)
	})

	limit := 0
	if !cfg.Window.VSync {
		limit = cfg.TickRate
	}

	return &App{
		window:       window,
		inputManager: im,
		camera:       cam,
		renderer:     r,
		session:      session,
		log:          log,
		fpsLimiter:   game.NewFPSLimiter(limit),
		lastTime:     time.Now(),
	}, nil
}

// Run loops until the window closes, ctx is cancelled or a tick fails.
// It must be called on the goroutine that owns the GL context.
func (a *App) Run(ctx context.Context) error {
	for !a.window.ShouldClose() && ctx.Err() == nil {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	glfw.PollEvents()
	a.handleInputActions()
	a.camera.Move(a.inputManager.Movement(), dt)

	rep, err := a.session.Update(a.camera.Position)
	if err != nil {
		return err
	}

	width, height := a.window.GetFramebufferSize()
	a.renderer.Render(a.camera, width, height)
	a.window.SwapBuffers()

	if a.showProfiling {
		stats := a.renderer.Stats()
		a.window.SetTitle(fmt.Sprintf("voxelview  chunk %v  drawn %d/%d  faces %d  %s",
			rep.Center, stats.Drawn, stats.Chunks, stats.Faces, profiling.TopN(3)))
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
	return nil
}

func (a *App) handleInputActions() {
	im := a.inputManager

	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		a.renderer.SetWireframe(!a.renderer.Wireframe())
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		a.showProfiling = !a.showProfiling
		a.log.Info("profiling", "top", profiling.TopN(5), "streaming", profiling.SumWithPrefix("streaming."))
		if !a.showProfiling {
			a.window.SetTitle("voxelview")
		}
	}
	if im.JustPressed(input.ActionReleaseCursor) {
		a.cursorReleased = !a.cursorReleased
		if a.cursorReleased {
			a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			a.camera.FirstMouse = true
		}
	}
}

// Close releases every chunk and the GL objects. The GL context must still be current.
func (a *App) Close() error {
	err := a.session.Close()
	a.renderer.Dispose()
	return err
}
