package luminal

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes into RGBA.
// Failures wrap ErrDecode.
func DecodeImage(data []byte) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// LoadTexture decodes the named image resource and uploads it as a
// repeating, mipmapped RGBA texture.
func LoadTexture(dev Device, res *Resources, name string) (TextureID, error) {
	data, err := res.Load(name)
	if err != nil {
		return 0, fmt.Errorf("load texture %q: %w", name, err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return 0, fmt.Errorf("texture %q: %w", name, err)
	}
	return UploadImage(dev, img)
}

// UploadImage uploads img as a repeating, mipmapped RGBA texture.
func UploadImage(dev Device, img *image.RGBA) (TextureID, error) {
	b := img.Bounds()
	pixels := img.Pix
	if img.Stride != b.Dx()*4 {
		pixels = make([]byte, 0, b.Dx()*b.Dy()*4)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := img.PixOffset(b.Min.X, y)
			pixels = append(pixels, img.Pix[row:row+b.Dx()*4]...)
		}
	}

	id, err := dev.CreateTexture(TextureDesc{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  FormatRGBA8,
		Filter:  FilterLinearMipmap,
		Wrap:    WrapRepeat,
		Mipmaps: true,
	}, pixels)
	if err != nil {
		return 0, fmt.Errorf("upload texture: %w", err)
	}
	return id, nil
}
