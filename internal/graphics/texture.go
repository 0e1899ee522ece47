package graphics

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math/bits"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Texture is a device texture with its dimensions.
type Texture struct {
	dev    Device
	id     uint32
	width  int
	height int
	target TextureTarget
	format TextureFormat
}

func (t *Texture) ID() uint32            { return t.id }
func (t *Texture) Width() int            { return t.width }
func (t *Texture) Height() int           { return t.height }
func (t *Texture) Target() TextureTarget { return t.target }
func (t *Texture) Format() TextureFormat { return t.format }

// Release deletes the device texture.
func (t *Texture) Release() {
	if t.id != 0 {
		t.dev.DeleteTexture(t.id)
		t.id = 0
	}
}

// LoadTexture loads a 2D texture from a PNG, JPEG, BMP or TIFF file.
func LoadTexture(dev Device, path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewTextureFromImage(dev, img), nil
}

// DecodeImage decodes r into RGBA, rescaling to power-of-two dimensions and
// flipping rows so the first row is the bottom of the image.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	w, h := nextPowerOfTwo(b.Dx()), nextPowerOfTwo(b.Dy())
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}
	flipRows(rgba)
	return rgba, nil
}

// NewTextureFromImage uploads img as a mipmapped RGBA texture.
func NewTextureFromImage(dev Device, img *image.RGBA) *Texture {
	size := img.Rect.Size()
	id := dev.CreateTexture(TextureSpec{
		Target:  Texture2D,
		Format:  FormatRGBA,
		Width:   size.X,
		Height:  size.Y,
		Pixels:  img.Pix,
		Mipmaps: true,
	})
	return &Texture{dev: dev, id: id, width: size.X, height: size.Y, target: Texture2D, format: FormatRGBA}
}

// NewRenderTexture allocates an empty render target. A depth target is a
// 2D depth texture set up for shadow comparison; a cube target has six
// square RGBA faces of width x width.
func NewRenderTexture(dev Device, width, height int, format TextureFormat, target TextureTarget) *Texture {
	if target == TextureCubeMap {
		height = width
	}
	id := dev.CreateTexture(TextureSpec{
		Target: target,
		Format: format,
		Width:  width,
		Height: height,
	})
	return &Texture{dev: dev, id: id, width: width, height: height, target: target, format: format}
}

// White returns a 1x1 white texture, used when a material has no texture
// but its shader samples one.
func White(dev Device) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []byte{0xff, 0xff, 0xff, 0xff})
	id := dev.CreateTexture(TextureSpec{Target: Texture2D, Format: FormatRGBA, Width: 1, Height: 1, Pixels: img.Pix})
	return &Texture{dev: dev, id: id, width: 1, height: 1, target: Texture2D, format: FormatRGBA}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	stride := img.Stride
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
