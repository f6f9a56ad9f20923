// Example renders two textured walls, a HUD and a button with luminal.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Controls: W/S move, A/D turn, Q/E strafe, 1-6 rotate the back wall,
// R resets it, F11 toggles fullscreen, Esc quits.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/luminal"
	"github.com/go-theft-auto/luminal/assets"
	"github.com/go-theft-auto/luminal/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	font       string
	texture    string
	dumpAtlas  string
	verbose    bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML config file")
	flag.StringVar(&o.font, "font", "", "font resource (file path or gofont:regular|bold|mono)")
	flag.StringVar(&o.texture, "texture", "", "wall texture image (default: generated checkerboard)")
	flag.StringVar(&o.dumpAtlas, "dump-atlas", "", "write the baked glyph atlas to this PNG file")
	flag.BoolVar(&o.verbose, "verbose", false, "enable debug logging")
	flag.Parse()
	return o
}

func run() error {
	opts := parseFlags()

	cfg := luminal.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = luminal.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	if opts.font != "" {
		cfg.Font = opts.font
	}
	cfg.Title = "Luminal Scape"
	luminal.SetVerbose(opts.verbose || cfg.Verbose)
	log := luminal.Logger()

	res := luminal.NewResources(assets.FS, cfg.AssetRoot)

	window := luminal.NewWindow(opengl.NewPlatform(log), cfg)
	if err := window.Init(); err != nil {
		return err
	}
	defer window.Cleanup()
	dev := window.Device()

	font, err := luminal.NewFontAtlas(dev, res, cfg.Font, cfg.FontSize, cfg.AtlasOptions()...)
	if err != nil {
		return err
	}
	defer font.Cleanup()
	font.SetProjection(window.Size())

	if opts.dumpAtlas != "" {
		if err := dumpAtlas(font.Atlas(), opts.dumpAtlas); err != nil {
			return err
		}
		log.Info("glyph atlas written", "path", opts.dumpAtlas)
	}

	w, h := window.Size()
	button, err := luminal.NewButton(dev, font, 0.01, 0.08, 150, 50, "Press", w, h)
	if err != nil {
		return err
	}
	defer button.Cleanup()

	window.OnResize(func(w, h int) {
		font.SetProjection(w, h)
		button.UpdatePosition(w, h)
	})

	wallShader, err := luminal.LoadProgram(dev, res, assets.WallVertexShader, assets.WallFragmentShader)
	if err != nil {
		return err
	}
	defer wallShader.Release()
	wallShader.SetVec3("lightPos", 0, 5, 5)
	wallShader.SetVec3("lightColor", 1, 1, 1)

	tex, err := wallTexture(dev, res, opts.texture)
	if err != nil {
		return err
	}
	defer dev.DeleteTexture(tex)

	back, err := luminal.NewPlane(dev, 10, 5, luminal.TextureMaterial(tex, false))
	if err != nil {
		return err
	}
	defer back.Cleanup()
	back.SetTextureScale(4, 2)
	back.Translate(0, 0, -10)

	floor, err := luminal.NewPlane(dev, 10, 5, luminal.ColorMaterial(luminal.ColorYellow, true))
	if err != nil {
		return err
	}
	defer floor.Cleanup()
	floor.SetRotation(90, mgl32.Vec3{1, 0, 0})
	floor.SetPosition(5, 0, -5)

	meshShader, err := luminal.LoadProgram(dev, res, assets.MeshVertexShader, assets.MeshFragmentShader)
	if err != nil {
		return err
	}
	defer meshShader.Release()

	marker, err := luminal.NewMesh(dev, markerData(), luminal.TextureMaterial(tex, false))
	if err != nil {
		return err
	}
	defer marker.Cleanup()
	marker.Translate(-2, -1, -4)

	camera := luminal.NewCamera()
	sc := &scene{camera: camera, wall: back}
	window.SetClearColor(luminal.Color{R: 0.2, G: 0.3, B: 0.3, A: 1})

	clicks := 0
	return window.Loop(func(f luminal.Frame) error {
		in := window.Input()
		sc.handleInput(in)
		if button.Update(in) {
			clicks++
			button.Label = fmt.Sprintf("Pressed %d", clicks)
		}

		proj := luminal.Perspective(cfg.FOV, f.Width, f.Height, cfg.Near, cfg.Far)
		matrices := camera.Matrices(proj)
		if err := back.Render(wallShader, matrices); err != nil {
			return err
		}
		if err := floor.Render(wallShader, matrices); err != nil {
			return err
		}
		marker.Rotate(float32(f.Delta)*45, mgl32.Vec3{0, 1, 0})
		if err := marker.Render(meshShader, matrices); err != nil {
			return err
		}

		pos := camera.Position()
		info := fmt.Sprintf("Rotation X:%.0f Y:%.0f Z:%.0f  Camera %.2f %.2f %.2f",
			sc.angles[0], sc.angles[1], sc.angles[2], pos.X(), pos.Y(), pos.Z())
		if err := font.RenderRelative("Luminal Scape", 0.01, 0.95, 0.1, 1, 1); err != nil {
			return err
		}
		if err := font.RenderRelative(info, 0.01, 0.85, 0.05, 1, 1); err != nil {
			return err
		}
		return button.Draw(f.Width, f.Height)
	})
}

const rotationStep = 1.0 // Degrees per frame

type scene struct {
	camera *luminal.Camera
	wall   *luminal.Mesh
	angles [3]float32 // Degrees around X, Y, Z
}

var rotationKeys = []struct {
	key  luminal.Key
	axis int
	sign float32
}{
	{luminal.Key1, 0, 1},
	{luminal.Key2, 1, 1},
	{luminal.Key3, 2, 1},
	{luminal.Key4, 0, -1},
	{luminal.Key5, 1, -1},
	{luminal.Key6, 2, -1},
}

var axes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func (s *scene) handleInput(in *luminal.InputState) {
	switch {
	case in.KeyDown(luminal.KeyW):
		s.camera.MoveForward()
	case in.KeyDown(luminal.KeyS):
		s.camera.MoveBackward()
	}
	if in.KeyDown(luminal.KeyA) {
		s.camera.TurnLeft()
	}
	if in.KeyDown(luminal.KeyD) {
		s.camera.TurnRight()
	}
	if in.KeyDown(luminal.KeyQ) {
		s.camera.MoveLeft()
	}
	if in.KeyDown(luminal.KeyE) {
		s.camera.MoveRight()
	}

	// Each rotation key replaces the wall transform with a rotation about
	// its own axis, so the wall leaves its translated position.
	for _, rk := range rotationKeys {
		if in.KeyDown(rk.key) {
			s.angles[rk.axis] += rk.sign * rotationStep
			s.wall.SetRotation(s.angles[rk.axis], axes[rk.axis])
		}
	}
	if in.KeyPressed(luminal.KeyR) {
		s.angles = [3]float32{}
		s.wall.ResetTransform()
		s.wall.Translate(0, 0, -10)
	}
}

// markerData is a square pyramid with its apex up.
func markerData() luminal.MeshData {
	return luminal.MeshData{
		Vertices: []float32{
			// Position       TexCoord
			-0.5, 0, -0.5, 0, 0,
			0.5, 0, -0.5, 1, 0,
			0.5, 0, 0.5, 1, 1,
			-0.5, 0, 0.5, 0, 1,
			0, 1, 0, 0.5, 0.5,
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0,
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
		Layout: luminal.LayoutPositionUV,
	}
}

func wallTexture(dev luminal.Device, res *luminal.Resources, name string) (luminal.TextureID, error) {
	if name != "" {
		return luminal.LoadTexture(dev, res, name)
	}
	return luminal.UploadImage(dev, checkerboard(256, 32))
}

func checkerboard(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 200, G: 180, B: 150, A: 255}
	dark := color.RGBA{R: 120, G: 90, B: 70, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func dumpAtlas(atlas *luminal.GlyphAtlas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create atlas dump: %w", err)
	}
	if err := atlas.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write atlas dump: %w", err)
	}
	return f.Close()
}
