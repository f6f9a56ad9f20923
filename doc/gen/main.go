// Command gen renders each luminal component with sample data, captures
// framebuffer pixels, and saves JPEG screenshots to doc/imgs/. The baked
// glyph atlas is written alongside as atlas.png.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/luminal"
	"github.com/go-theft-auto/luminal/assets"
	"github.com/go-theft-auto/luminal/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name   string           // filename without extension
	width  int              // viewport width
	height int              // viewport height
	draw   func(*kit) error // drawing function
	frames int              // frames to render (0 = default 2)
}

// kit holds the components shared by every screenshot.
type kit struct {
	dev    *opengl.Device
	font   *luminal.FontAtlas
	button *luminal.Button
	wall   *luminal.Program
	back   *luminal.Mesh
	floor  *luminal.Mesh
	width  int
	height int
}

func run() error {
	platform := opengl.NewPlatform(nil)
	if err := platform.Init(); err != nil {
		return err
	}
	defer platform.Terminate()

	// The hidden surface stays at 800×600, larger than every screenshot.
	surface, err := platform.CreateSurface(luminal.SurfaceConfig{
		Width: 800, Height: 600, Title: "screenshot-gen",
		GLMajor: 4, GLMinor: 1,
	})
	if err != nil {
		return err
	}
	defer surface.Destroy()
	surface.MakeContextCurrent()

	dev, err := opengl.NewDevice(nil)
	if err != nil {
		return err
	}
	dev.Configure(luminal.ContextState{DepthTest: true, Blend: luminal.BlendAlpha})

	k, cleanup, err := newKit(dev)
	if err != nil {
		return err
	}
	defer cleanup()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(k, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	if err := writeAtlas(k.font.Atlas(), filepath.Join(outDir, "atlas.png")); err != nil {
		return err
	}
	fmt.Printf("\nGenerated %d screenshots and atlas.png in %s/\n", len(shots), outDir)
	return nil
}

func newKit(dev *opengl.Device) (*kit, func(), error) {
	res := luminal.NewResources(assets.FS, "")
	k := &kit{dev: dev}
	var releases []func()
	cleanup := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	fail := func(err error) (*kit, func(), error) {
		cleanup()
		return nil, nil, err
	}

	font, err := luminal.NewFontAtlas(dev, res, "gofont:regular", 20)
	if err != nil {
		return fail(err)
	}
	k.font = font
	releases = append(releases, font.Cleanup)

	button, err := luminal.NewButton(dev, font, 0.1, 0.3, 160, 44, "Press", 300, 120)
	if err != nil {
		return fail(err)
	}
	k.button = button
	releases = append(releases, button.Cleanup)

	wall, err := luminal.LoadProgram(dev, res, assets.WallVertexShader, assets.WallFragmentShader)
	if err != nil {
		return fail(err)
	}
	wall.SetVec3("lightPos", 0, 5, 5)
	wall.SetVec3("lightColor", 1, 1, 1)
	k.wall = wall
	releases = append(releases, wall.Release)

	tex, err := luminal.UploadImage(dev, checkerboard(128, 16))
	if err != nil {
		return fail(err)
	}
	releases = append(releases, func() { dev.DeleteTexture(tex) })

	back, err := luminal.NewPlane(dev, 6, 3, luminal.TextureMaterial(tex, false))
	if err != nil {
		return fail(err)
	}
	back.SetTextureScale(3, 1.5)
	back.Translate(0, 0.5, -4)
	k.back = back
	releases = append(releases, back.Cleanup)

	floor, err := luminal.NewPlane(dev, 6, 6, luminal.ColorMaterial(luminal.ColorYellow, true))
	if err != nil {
		return fail(err)
	}
	floor.SetRotation(-90, mgl32.Vec3{1, 0, 0})
	floor.SetPosition(0, -1, -2)
	k.floor = floor
	releases = append(releases, floor.Cleanup)

	return k, cleanup, nil
}

func capture(k *kit, s screenshot, outDir string) error {
	k.width, k.height = s.width, s.height
	k.dev.Viewport(s.width, s.height)
	k.font.SetProjection(s.width, s.height)
	k.button.UpdatePosition(s.width, s.height)

	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}
	for i := 0; i < frames; i++ {
		k.dev.SetClearColor(luminal.Color{R: 0.12, G: 0.12, B: 0.14, A: 1})
		k.dev.Clear()
		if err := s.draw(k); err != nil {
			return err
		}
	}

	img := k.dev.ReadPixels(s.width, s.height)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns every screenshot to generate.
func buildScreenshots() []screenshot {
	const paragraph = "Text is baked into a single-channel atlas at startup and drawn " +
		"as two triangles per glyph, one draw call per line."

	return []screenshot{
		{
			name: "text", width: 400, height: 200,
			draw: func(k *kit) error {
				if err := k.font.Render("Plain text", 12, 28, 1, 1, 1); err != nil {
					return err
				}
				if err := k.font.Render("Colored text (yellow)", 12, 56, 1, 1, 0); err != nil {
					return err
				}
				lines := luminal.WrapText(k.font, paragraph, 376, luminal.WrapModeWord)
				return luminal.RenderLines(k.font, lines, 12, 90, 0.8, 0.8, 0.8)
			},
		},
		{
			name: "truncate", width: 300, height: 80,
			draw: func(k *kit) error {
				s := luminal.TruncateText(k.font, "A label far too long for its slot", 200)
				return k.font.Render(s, 12, 44, 1, 1, 1)
			},
		},
		{
			name: "button", width: 300, height: 120,
			draw: func(k *kit) error {
				return k.button.Draw(k.width, k.height)
			},
		},
		{
			name: "planes", width: 480, height: 320,
			draw: func(k *kit) error {
				proj := luminal.Perspective(45, k.width, k.height, 0.1, 100)
				cam := luminal.NewCamera().Matrices(proj)
				if err := k.floor.Render(k.wall, cam); err != nil {
					return err
				}
				if err := k.back.Render(k.wall, cam); err != nil {
					return err
				}
				return k.font.RenderRelative("Textured wall, lit floor", 0.03, 0.1, 1, 1, 1)
			},
		},
	}
}

func checkerboard(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 220, G: 220, B: 220, A: 255}
	dark := color.RGBA{R: 60, G: 90, B: 140, A: 255}
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

func writeAtlas(atlas *luminal.GlyphAtlas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := atlas.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write atlas: %w", err)
	}
	return f.Close()
}
