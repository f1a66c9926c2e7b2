package imaging

import (
	"errors"
	"fmt"
	"image"
	"io"

	// Register the decoders for every supported input format so
	// image.Decode can sniff content regardless of file extension.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidImage      = errors.New("invalid image")
)

var acceptedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// Decode reads a JPEG, PNG, or WEBP image from r. The format is sniffed
// from the content, so a mislabeled file still fails cleanly.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: unrecognized image data", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if !acceptedFormats[format] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has a zero dimension", ErrInvalidImage)
	}
	return img, nil
}
