package testbed

import (
	gomath "math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/jackal/engine"
	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/math"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

const (
	vertexShaderPath   = "shaders/workbench.vert"
	fragmentShaderPath = "shaders/workbench.frag"
	texturePath        = "textures/checker.png"
)

// rotation speed of the quad in radians per second
const spinRate = 0.8

type TestGame struct {
	*engine.Game
}

type vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
}

type gameState struct {
	engine *engine.Engine

	mesh     *renderer.VertexArray
	vertices *renderer.VertexBuffer[vertex]
	indices  *renderer.ElementBuffer
	material *renderer.Material

	angle    float32
	scale    float32
	aspect   float32
	paused   bool
	reloaded bool
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{aspect: 1, scale: 1},
		},
	}

	tg.FnOnStart = tg.Start
	tg.FnOnTick = tg.Tick
	tg.FnOnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnKeyboardFocusChanged = tg.OnFocusChanged
	tg.FnOnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Start(e *engine.Engine) error {
	core.LogInfo("starting workbench...")
	state := g.state()
	state.engine = e
	ctx := e.Context()

	quad := []vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, UV: mgl32.Vec2{0, 1}},
	}
	vertices, err := renderer.NewVertexBuffer(ctx, renderer.UsageStatic, quad)
	if err != nil {
		return err
	}
	indices, err := renderer.NewElementBuffer(ctx, renderer.UsageStatic, []uint8{0, 1, 2, 2, 3, 0})
	if err != nil {
		return err
	}
	mesh, err := renderer.NewVertexArray(ctx)
	if err != nil {
		return err
	}
	layout := renderer.NewVertexLayout().Float(3, false).Float(2, false)
	if err := mesh.Attach(vertices, indices, layout); err != nil {
		return err
	}
	state.vertices, state.indices, state.mesh = vertices, indices, mesh

	if err := g.loadMaterial(); err != nil {
		return err
	}

	e.Events().Register(core.EVENT_CODE_ASSET_CHANGED, g, g.onAssetChanged)
	e.Renderer().SetClearColor(0.08, 0.08, 0.1, 1)
	return nil
}

// loadMaterial builds the quad material from the asset directory. A broken
// shader falls back to magenta and a missing texture to a generated checker.
func (g *TestGame) loadMaterial() error {
	state := g.state()
	ctx := state.engine.Context()

	var shader *renderer.Shader
	var texture *renderer.Texture
	var err error

	if am := state.engine.Assets(); am != nil {
		shader, err = renderer.ShaderFromFiles(ctx, am, vertexShaderPath, fragmentShaderPath)
		shader = renderer.ShaderOrFallback(ctx, shader, err)
		texture, err = renderer.TextureFromFile(ctx, am, texturePath, renderer.DefaultTextureSettings())
		if err != nil {
			core.LogWarn("workbench texture unavailable: %s", err)
		}
	} else {
		if shader, err = ctx.FallbackShader(); err != nil {
			return err
		}
	}
	if texture == nil {
		texture, err = renderer.TextureFromImage(ctx, checker(64, 8), renderer.DefaultTextureSettings())
		if err != nil {
			return err
		}
	}

	material, err := renderer.NewMaterial(ctx, shader, texture)
	if err != nil {
		texture.Dispose()
		shader.Dispose()
		return err
	}
	if state.material != nil {
		state.material.Dispose()
	}
	state.material = material
	return nil
}

func (g *TestGame) onAssetChanged(context core.EventContext) bool {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok {
		return false
	}
	if !strings.HasPrefix(ae.Path, "shaders/") && !strings.HasPrefix(ae.Path, "textures/") {
		return false
	}
	core.LogInfo("%s changed, reloading the workbench material", ae.Path)
	// several files usually change together; reload once on the next tick
	g.state().reloaded = true
	return true
}

func (g *TestGame) Tick(e *engine.Engine, deltaTime float64) error {
	state := g.state()
	input := e.Input()

	if state.reloaded {
		state.reloaded = false
		if err := g.loadMaterial(); err != nil {
			core.LogError("material reload failed: %s", err)
		}
	}

	if input.KeyPressed(core.KEY_ESCAPE) {
		e.RequestExit()
	}
	if input.KeyPressed(core.KEY_SPACE) {
		state.paused = !state.paused
	}
	if input.KeyPressed(core.KEY_V) {
		mode := core.VSyncEnabled
		if e.Frames().VSync() != core.VSyncDisabled {
			mode = core.VSyncDisabled
		}
		if err := e.SetVSync(mode); err != nil {
			core.LogWarn("vsync: %s", err)
		}
	}
	if input.KeyPressed(core.KEY_T) {
		rate := 30
		if e.Ticks().TicksPerSecond() == 30 {
			rate = 60
		}
		if err := e.SetTicksPerSecond(rate); err != nil {
			return err
		}
	}
	if input.KeyPressed(core.KEY_L) {
		mode := core.MouseLockLocked
		if input.MouseLock() == core.MouseLockLocked {
			mode = core.MouseLockNone
		}
		if err := input.SetMouseLock(mode); err != nil {
			core.LogWarn("mouse lock: %s", err)
		}
	}
	if input.KeyPressed(core.KEY_F) {
		if err := e.SetBorderlessFullscreen(); err != nil {
			core.LogWarn("fullscreen: %s", err)
		}
	}
	if input.KeyPressed(core.KEY_W) {
		if err := e.SetWindowed(); err != nil {
			core.LogWarn("windowed: %s", err)
		}
	}

	if !state.paused {
		state.angle += float32(spinRate * deltaTime)
		state.angle = float32(gomath.Mod(float64(state.angle), 2*gomath.Pi))
	}
	// the wheel zooms by scaling the quad
	if wheel := input.WheelDelta(); wheel != 0 {
		state.scale = math.Clamp(state.scale+0.1*float32(wheel), 0.2, 3)
	}
	return nil
}

func (g *TestGame) Render(e *engine.Engine) error {
	state := g.state()

	if shader := state.material.Shader(); shader.Shared() {
		// the fallback shader takes no uniforms
		shader.Bind()
		state.mesh.Draw(renderer.Triangles)
		return nil
	}

	projection := mgl32.Ortho2D(-state.aspect, state.aspect, -1, 1)
	model := mgl32.HomogRotate3DZ(state.angle).Mul4(mgl32.Scale3D(state.scale, state.scale, 1))
	if err := state.material.SetUniform("u_transform", renderer.UniformMat4(projection.Mul4(model))); err != nil {
		return err
	}
	if err := state.material.SetUniform("u_texture", renderer.UniformInt(0)); err != nil {
		return err
	}
	if err := state.material.Bind(); err != nil {
		return err
	}
	state.mesh.Draw(renderer.Triangles)
	return nil
}

func (g *TestGame) OnResize(width, height int32) error {
	if height > 0 {
		g.state().aspect = float32(width) / float32(height)
	}
	return nil
}

func (g *TestGame) OnFocusChanged(gained bool) {
	// losing focus pauses the spin
	if !gained {
		g.state().paused = true
	}
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("shutting down workbench...")
	state := g.state()
	if state.material != nil {
		state.material.Dispose()
	}
	if state.mesh != nil {
		state.mesh.Dispose()
	}
	if state.indices != nil {
		state.indices.Dispose()
	}
	if state.vertices != nil {
		state.vertices.Dispose()
	}
	return nil
}

// checker generates a grey checkerboard of size pixels with cells of cell pixels.
func checker(size, cell int32) *renderer.Image {
	img := &renderer.Image{
		Width:    size,
		Height:   size,
		Format:   renderer.FormatRGBA,
		BitDepth: renderer.Depth8,
		Pix8:     make([]uint8, size*size*4),
	}
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			var v uint8 = 70
			if (x/cell+y/cell)%2 == 0 {
				v = 200
			}
			i := (y*size + x) * 4
			img.Pix8[i], img.Pix8[i+1], img.Pix8[i+2], img.Pix8[i+3] = v, v, v, 255
		}
	}
	return img
}
