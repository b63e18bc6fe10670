package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxWidth       = 1600
	DefaultQuality = 75
)

type Options struct {
	MaxWidth int
	Quality  float32
	// RenameToWebP writes <base>.webp instead of keeping the source file
	// name, which existing page references point at.
	RenameToWebP bool
}

func DefaultOptions() Options {
	return Options{MaxWidth: MaxWidth, Quality: DefaultQuality}
}

// ToWebP decodes a JPEG, PNG or WebP image, scales it down to opts.MaxWidth
// (never up) and encodes it as lossy WebP.
func ToWebP(src io.Reader, opts Options) (*bytes.Buffer, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	img = fitWidth(img, opts.MaxWidth)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}
	return buf, nil
}

func fitWidth(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
