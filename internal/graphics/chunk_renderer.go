package graphics

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"voxelstream/internal/meshing"
	"voxelstream/internal/observer"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownHandle is returned when releasing a handle this renderer did not issue.
var ErrUnknownHandle = errors.New("graphics: unknown chunk handle")

// SkyColor is the clear colour.
var SkyColor = mgl32.Vec3{0.53, 0.81, 0.92}

// ChunkHandle identifies an uploaded chunk.
type ChunkHandle struct {
	id    uint64
	Coord world.ChunkCoord
}

type gpuChunk struct {
	coord      world.ChunkCoord
	origin     mgl32.Vec3
	lo, hi     mgl32.Vec3 // world-space bounds
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// RenderStats describes the last Render call.
type RenderStats struct {
	Chunks int
	Drawn  int
	Culled int
	Faces  int
}

// Options configures a ChunkRenderer.
type Options struct {
	// ShaderDir, when set, loads chunk.vert and chunk.frag from disk instead
	// of the built-in sources.
	ShaderDir string
	Wireframe bool
	// FogEnd is the eye distance at which geometry fully fades to the sky colour.
	FogEnd float32
}

// ChunkRenderer keeps one VAO/VBO/EBO triple per registered chunk and draws
// them with a model translation at the chunk origin. It must be used from
// the goroutine that owns the GL context.
type ChunkRenderer struct {
	shader    *Shader
	chunks    map[uint64]*gpuChunk
	nextID    uint64
	wireframe bool
	fogEnd    float32
	stats     RenderStats
	log       *slog.Logger
}

// NewChunkRenderer compiles the chunk shader and configures GL state.
// A GL context must be current.
func NewChunkRenderer(opts Options, log *slog.Logger) (*ChunkRenderer, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var (
		shader *Shader
		err    error
	)
	if opts.ShaderDir != "" {
		shader, err = NewShaderFromFiles(
			filepath.Join(opts.ShaderDir, "chunk.vert"),
			filepath.Join(opts.ShaderDir, "chunk.frag"),
		)
	} else {
		shader, err = NewShader(chunkVertexShader, chunkFragmentShader)
	}
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}

	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	fogEnd := opts.FogEnd
	if fogEnd <= 0 {
		fogEnd = 256
	}

	return &ChunkRenderer{
		shader:    shader,
		chunks:    make(map[uint64]*gpuChunk),
		wireframe: opts.Wireframe,
		fogEnd:    fogEnd,
		log:       log,
	}, nil
}

// Register uploads mesh and returns a ChunkHandle. Empty meshes get a handle
// without any GL objects.
func (r *ChunkRenderer) Register(coord world.ChunkCoord, mesh *meshing.Mesh, origin mgl32.Vec3) (any, error) {
	defer profiling.Track("graphics.Register")()

	r.nextID++
	c := &gpuChunk{coord: coord, origin: origin}
	if !mesh.Empty() {
		lo, hi := mesh.Bounds()
		c.lo, c.hi = lo.Add(origin), hi.Add(origin)
		if err := upload(c, mesh); err != nil {
			return nil, err
		}
	}
	r.chunks[r.nextID] = c
	return ChunkHandle{id: r.nextID, Coord: coord}, nil
}

func upload(c *gpuChunk, mesh *meshing.Mesh) error {
	vertices := mesh.Interleaved()
	indices := mesh.Indices

	// Drain stale errors so the check below only sees this upload.
	for gl.GetError() != gl.NO_ERROR {
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.GenBuffers(1, &c.ebo)

	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	// position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// uv
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		deleteGL(c)
		return fmt.Errorf("upload chunk %v: gl error 0x%x", c.coord, code)
	}
	c.indexCount = int32(len(indices))
	return nil
}

func deleteGL(c *gpuChunk) {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
		c.vbo = 0
	}
	if c.ebo != 0 {
		gl.DeleteBuffers(1, &c.ebo)
		c.ebo = 0
	}
	c.indexCount = 0
}

// Release deletes the GL objects behind h.
func (r *ChunkRenderer) Release(h any) error {
	ch, ok := h.(ChunkHandle)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownHandle, h)
	}
	c, ok := r.chunks[ch.id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownHandle, ch.Coord)
	}
	deleteGL(c)
	delete(r.chunks, ch.id)
	return nil
}

// SetWireframe switches between filled and line rendering.
func (r *ChunkRenderer) SetWireframe(on bool) {
	r.wireframe = on
}

// Wireframe reports whether line rendering is on.
func (r *ChunkRenderer) Wireframe() bool {
	return r.wireframe
}

// Stats returns the counters of the last Render call.
func (r *ChunkRenderer) Stats() RenderStats {
	return r.stats
}

// Render clears the frame and draws every chunk inside the camera frustum.
func (r *ChunkRenderer) Render(cam *observer.FlyCamera, width, height int) {
	defer profiling.Track("graphics.Render")()

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(SkyColor.X(), SkyColor.Y(), SkyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(width, height)
	frustum := observer.ExtractFrustum(proj.Mul4(view))

	r.shader.Use()
	r.shader.SetMatrix4("view", view)
	r.shader.SetMatrix4("proj", proj)
	r.shader.SetFloats("faceShade", faceShades())
	r.shader.SetVector3("topColor", world.BlockColor(world.BlockTop))
	r.shader.SetVector3("sideColor", world.BlockColor(world.BlockSolid))
	r.shader.SetVector3("fogColor", SkyColor)
	r.shader.SetFloat("fogEnd", r.fogEnd)

	stats := RenderStats{Chunks: len(r.chunks)}
	for _, c := range r.chunks {
		if c.indexCount == 0 {
			continue
		}
		if !frustum.IntersectsAABB(c.lo, c.hi) {
			stats.Culled++
			continue
		}
		r.shader.SetMatrix4("model", mgl32.Translate3D(c.origin.X(), c.origin.Y(), c.origin.Z()))
		gl.BindVertexArray(c.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, c.indexCount, gl.UNSIGNED_INT, 0)
		stats.Drawn++
		stats.Faces += int(c.indexCount / 6)
	}
	gl.BindVertexArray(0)
	r.stats = stats
}

func faceShades() []float32 {
	out := make([]float32, len(world.Faces))
	for i, f := range world.Faces {
		out[i] = world.FaceShade(f)
	}
	return out
}

// Dispose deletes every chunk and the shader. Handles issued before become invalid.
func (r *ChunkRenderer) Dispose() {
	for id, c := range r.chunks {
		deleteGL(c)
		delete(r.chunks, id)
	}
	r.shader.Delete()
	r.log.Debug("chunk renderer disposed")
}
