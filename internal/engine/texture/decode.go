// Package texture decodes image files and manages their upload to the GPU.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrUnsupported is returned for data no registered decoder recognizes.
var ErrUnsupported = errors.New("texture: unsupported image format")

// Decode decodes image bytes. name is only used to pick the TGA decoder,
// which cannot be sniffed; everything else goes through image.Decode.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(name), ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Load reads and decodes path into an RGBA image ready for upload: no larger
// than maxSize on either side, rows flipped so the first row is the bottom.
// maxSize <= 0 disables scaling.
func Load(path string, maxSize int) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty image: %w", path, ErrUnsupported)
	}

	rgba := ToRGBA(img, maxSize)
	FlipVertical(rgba)
	return rgba, nil
}

// ToRGBA converts img to a zero-origin RGBA image, downscaling it to fit
// maxSize while preserving aspect ratio.
func ToRGBA(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.PixOffset(b.Min.X, top)
		u := img.PixOffset(b.Min.X, bottom)
		copy(tmp, img.Pix[t:t+rowLen])
		copy(img.Pix[t:t+rowLen], img.Pix[u:u+rowLen])
		copy(img.Pix[u:u+rowLen], tmp)
	}
}
