package imaging

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Resample scales src to exactly width×height with a Catmull-Rom filter.
// Aspect ratio is not preserved; callers crop to square first if they
// want undistorted icons. Upscaling past the source size is allowed.
func Resample(src image.Image, width, height int) (*image.RGBA, error) {
	bounds := src.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("%w: source has a zero dimension", ErrInvalidImage)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Rect, src, bounds, draw.Over, nil)
	return dst, nil
}
