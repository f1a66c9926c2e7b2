// Package ico encodes the Windows icon container format: a fixed ICONDIR
// header, one 16-byte directory entry per image, then the concatenated
// image payloads. Payloads are PNG-encoded, which the format accepts for
// all targets since Windows Vista.
package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
)

const (
	headerSize = 6
	entrySize  = 16
)

// DefaultSizes is the square pixel ladder for a standalone favicon.
var DefaultSizes = []int{16, 32, 48, 64, 128, 256}

// BundleSizes is the reduced ladder embedded in the app icon bundle.
var BundleSizes = []int{16, 32, 48}

// Encode writes images into a single multi-image icon container, in order.
func Encode(w io.Writer, images []image.Image) error {
	if len(images) == 0 {
		return errors.New("ico: no images to encode")
	}
	if len(images) > 0xFFFF {
		return fmt.Errorf("ico: too many images (%d)", len(images))
	}

	payloads := make([][]byte, len(images))
	for i, img := range images {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("ico: encode payload %d: %w", i, err)
		}
		payloads[i] = buf.Bytes()
	}

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint16(header[0:2], 0)                   // reserved
	binary.LittleEndian.PutUint16(header[2:4], 1)                   // image type (icon)
	binary.LittleEndian.PutUint16(header[4:6], uint16(len(images))) // image count
	if _, err := w.Write(header); err != nil {
		return err
	}

	// Offsets are running totals over the actual payload bytes, starting
	// right after the directory.
	offset := uint32(headerSize + entrySize*len(images))
	for i, img := range images {
		entry := make([]byte, entrySize)
		bounds := img.Bounds()
		entry[0] = dimByte(bounds.Dx())
		entry[1] = dimByte(bounds.Dy())
		entry[2] = 0                                  // palette color count
		entry[3] = 0                                  // reserved
		binary.LittleEndian.PutUint16(entry[4:6], 1)  // color planes
		binary.LittleEndian.PutUint16(entry[6:8], 32) // bits per pixel
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(payloads[i])))
		binary.LittleEndian.PutUint32(entry[12:16], offset)
		if _, err := w.Write(entry); err != nil {
			return err
		}
		offset += uint32(len(payloads[i]))
	}

	for _, payload := range payloads {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

// dimByte encodes an icon dimension for a directory entry; the format
// stores 256 as 0.
func dimByte(v int) byte {
	if v >= 256 {
		return 0
	}
	return byte(v)
}
