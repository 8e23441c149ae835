package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"net/http"
	_ "net/http/pprof"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/thedaneeffect/ebiten-model-viewer/camera"
)

type (
	float = float32
	vec2  = mgl.Vec2
	vec3  = mgl.Vec3
	vec4  = mgl.Vec4
	mat4  = mgl.Mat4
)

var (
	model_path  = flag.String("model", "", "Wavefront OBJ `file` to view (default: built-in cube)")
	config_path = flag.String("config", "", "TOML config `file`")
	verbose     = flag.Bool("v", false, "log debug messages")
	pprof_addr  = flag.String("pprof", "", "serve net/http/pprof on `addr`, e.g. localhost:6060")
	cpu_profile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	mem_profile = flag.String("memprofile", "", "write memory profile to `file`")
)

//go:embed cube.obj
var cube_obj []byte

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *cpu_profile != "" {
		f, err := os.Create(*cpu_profile)
		if err != nil {
			fatal("could not create CPU profile", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fatal("could not start CPU profile", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *mem_profile != "" {
		defer func() {
			f, err := os.Create(*mem_profile)
			if err != nil {
				fatal("could not create memory profile", err)
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				fatal("could not write memory profile", err)
			}
		}()
	}

	if *pprof_addr != "" {
		go func() {
			slog.Info("pprof listening", "addr", *pprof_addr)
			slog.Error("pprof stopped", "err", http.ListenAndServe(*pprof_addr, nil))
		}()
	}

	cfg, err := load_config(*config_path)
	if err != nil {
		fatal("could not load config", err)
	}

	mesh, err := open_mesh(*model_path)
	if err != nil {
		fatal("could not load model", err)
	}

	shader, err := ebiten.NewShader([]byte(shader_src))
	if err != nil {
		fatal("could not compile shader", err)
	}

	g := new_game(cfg, mesh, shader)

	slog.Info("loaded model",
		"model", *model_path,
		"points", len(mesh.points),
		"triangles", len(mesh.triangles),
		"radius", g.radius,
		"eye", g.camera.Position(),
	)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Window.Vsync)

	if err := ebiten.RunGame(g); err != nil {
		fatal("game loop failed", err)
	}
}

func open_mesh(path string) (*mesh_t, error) {
	name := "cube.obj"
	var r io.Reader = bytes.NewReader(cube_obj)
	if path != "" {
		name = path
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	mesh, err := load_obj(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return mesh, nil
}

type game struct {
	config    config
	context   *render_context
	texture   *ebiten.Image
	mesh      *mesh_t
	radius    float
	camera    camera.Manipulator
	controls  *controls
	frametime time.Duration
}

// new_game moves the mesh to the origin and frames it with the camera.
func new_game(cfg config, mesh *mesh_t, shader *ebiten.Shader) *game {
	radius := center_mesh(mesh)
	home := home_camera(radius, cfg.Projection.FovY)

	return &game{
		config:  cfg,
		texture: checker_texture(cfg.Texture),
		mesh:    mesh,
		radius:  radius,
		camera:  home,
		controls: &controls{
			config: cfg.Controls,
			home:   home,
		},
		context: &render_context{
			shader:  shader,
			shading: true,
			ambient: 0.25,
		},
	}
}

func checker_texture(cfg texture_config) *ebiten.Image {
	tile_size := cfg.Size / cfg.Subdivisions

	texture := ebiten.NewImage(cfg.Size, cfg.Size)
	texture.Fill(color.White)

	for row := range cfg.Subdivisions {
		for col := range cfg.Subdivisions {
			if (row+col)%2 == 0 {
				continue
			}
			x := float(col * tile_size)
			y := float(row * tile_size)
			vector.DrawFilledRect(texture, x, y, float(tile_size), float(tile_size), color.RGBA{90, 90, 110, 255}, false)
		}
	}

	size := float(cfg.Size)
	vector.StrokeRect(texture, 1, 1, size-1, size-1, 1, color.RGBA{200, 60, 60, 255}, false)
	return texture
}

func (g *game) Layout(outerWidth, outerHeight int) (int, int) {
	return outerWidth, outerHeight
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.context.shading = !g.context.shading
	}

	// rejected input is logged by apply and otherwise ignored
	_ = g.controls.apply(&g.camera, g.controls.poll())

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	defer func(t time.Time) {
		ft := time.Since(t)
		if g.frametime == 0 {
			g.frametime = ft
		} else {
			g.frametime += (ft - g.frametime) / 2
		}
	}(time.Now())

	ctx := g.context
	ctx.begin(g.texture, screen)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}

	proj := g.config.Projection
	proj_matrix := mgl.Perspective(mgl.DegToRad(proj.FovY), float(w)/float(h), proj.Near, proj.Far)

	// the renderer only ever sees the look-at triple
	view := g.camera.ViewTransform()
	headlight := view.Eye.Sub(view.Target).Normalize()

	screen.Fill(color.RGBA{130, 130, 130, 255})

	ctx.push_mesh(g.mesh, proj_matrix.Mul4(view.Matrix()), headlight, g.radius)
	ctx.flush()

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f FPS: %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 0, 0)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Ft: %v", g.frametime), 0, 14)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Triangles: %d", ctx.drawn_triangles), 0, 28)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Eye: %.2f", view.Eye), 0, 42)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Target: %.2f", view.Target), 0, 56)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Up: %.2f", view.Up), 0, 70)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Distance: %.2f", g.camera.Distance()), 0, 84)
	ebitenutil.DebugPrintAt(screen, "drag: orbit  right drag: pan  wheel: zoom  QE: roll  WASD: move  R: reset  F: shading", 0, h-16)
}
