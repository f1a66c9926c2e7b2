package imaging

import (
	"image"
	"image/draw"
)

// CenterCrop crops img to a centered square whose side is the shorter
// dimension. Already-square images are returned unchanged; otherwise the
// result is a fresh buffer that does not alias the source.
func CenterCrop(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == height {
		return img
	}

	side := min(width, height)
	origin := image.Pt(
		bounds.Min.X+(width-side)/2,
		bounds.Min.Y+(height-side)/2,
	)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, origin, draw.Src)
	return dst
}
