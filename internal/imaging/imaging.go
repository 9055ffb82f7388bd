// Package imaging decodes, scales and synthesises the pictures the player shows:
// album art, theme backgrounds and transport button glyphs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF cover art
	_ "image/jpeg" // register JPEG cover art
	_ "image/png"  // register PNG cover art
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register BMP backgrounds
	_ "golang.org/x/image/webp" // register WebP backgrounds
)

// ArtSize is the edge length of the album art box.
const ArtSize = 250

// PlaceholderColor fills the art box when a track has no usable cover.
var PlaceholderColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// Placeholder returns a w×h image filled with PlaceholderColor.
func Placeholder(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: PlaceholderColor}, image.Point{}, draw.Src)
	return img
}

// Decode decodes an encoded image of any registered format.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode image: empty data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// LoadFile reads and decodes the image at path.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail scales img down to fit inside w×h, keeping its aspect ratio.
// Images already inside the box are returned unchanged.
func Thumbnail(img image.Image, w, h int) image.Image {
	return resize.Thumbnail(uint(w), uint(h), img, resize.Lanczos3)
}

// Stretch resizes img to exactly w×h, ignoring its aspect ratio.
func Stretch(img image.Image, w, h int) image.Image {
	return resize.Resize(uint(w), uint(h), img, resize.Bilinear)
}

// AlbumArt turns embedded cover bytes into the art box image.
// It reports false and returns the placeholder when data is empty or undecodable.
func AlbumArt(data []byte) (image.Image, bool) {
	if len(data) == 0 {
		return Placeholder(ArtSize, ArtSize), false
	}
	img, err := Decode(data)
	if err != nil {
		return Placeholder(ArtSize, ArtSize), false
	}
	return Thumbnail(img, ArtSize, ArtSize), true
}
