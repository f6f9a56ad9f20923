package luminal_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-theft-auto/luminal"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 255, A: 255})

	img, err := luminal.DecodeImage(encodePNG(t, src))
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v, want opaque red", got)
	}
}

func TestDecodeImageErrors(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("definitely not an image"),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := luminal.DecodeImage(data); !errors.Is(err, luminal.ErrDecode) {
				t.Errorf("DecodeImage() error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestUploadImage(t *testing.T) {
	dev := newMockDevice()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	id, err := luminal.UploadImage(dev, img)
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if id == 0 {
		t.Error("UploadImage() returned zero handle")
	}
	desc := dev.textures[0]
	if desc.Format != luminal.FormatRGBA8 || !desc.Mipmaps || desc.Wrap != luminal.WrapRepeat {
		t.Errorf("desc = %+v, want repeating mipmapped RGBA8", desc)
	}
	if len(dev.pixels[0]) != 4*4*4 {
		t.Errorf("uploaded %d bytes, want 64", len(dev.pixels[0]))
	}
}

func TestUploadImageCompactsSubImage(t *testing.T) {
	dev := newMockDevice()
	full := image.NewRGBA(image.Rect(0, 0, 8, 8))
	full.SetRGBA(2, 2, color.RGBA{G: 255, A: 255})
	sub := full.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)

	if _, err := luminal.UploadImage(dev, sub); err != nil {
		t.Fatal(err)
	}
	px := dev.pixels[0]
	if len(px) != 2*2*4 {
		t.Fatalf("uploaded %d bytes, want 16", len(px))
	}
	if px[1] != 255 || px[3] != 255 {
		t.Errorf("first texel = %v, want green", px[:4])
	}
}

func TestLoadTexture(t *testing.T) {
	root := t.TempDir()
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 2, 2)))
	if err := os.WriteFile(filepath.Join(root, "wall.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := luminal.NewResources(nil, root)
	dev := newMockDevice()

	if _, err := luminal.LoadTexture(dev, res, "wall.png"); err != nil {
		t.Errorf("LoadTexture() error = %v", err)
	}
	if _, err := luminal.LoadTexture(dev, res, "broken.png"); !errors.Is(err, luminal.ErrDecode) {
		t.Errorf("LoadTexture(broken) error = %v, want ErrDecode", err)
	}
	if _, err := luminal.LoadTexture(dev, res, "missing.png"); !errors.Is(err, luminal.ErrResourceNotFound) {
		t.Errorf("LoadTexture(missing) error = %v, want ErrResourceNotFound", err)
	}

	dev.textureErr = errBoom
	if _, err := luminal.LoadTexture(dev, res, "wall.png"); !errors.Is(err, errBoom) {
		t.Errorf("LoadTexture() with device failure error = %v", err)
	}
}
