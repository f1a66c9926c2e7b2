// Package bundle assembles the app icon bundle: a flat gzip-compressed
// tar archive holding a reduced favicon.ico, one PNG per target size,
// and the manifest text files that reference them.
package bundle

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"image"
	"image/png"
	"sort"
	"time"

	"github.com/mikeh74/favicon-generator/internal/ico"
	"github.com/mikeh74/favicon-generator/internal/imaging"
)

// Build renders every bundle entry from src and packages them into
// tar.gz bytes. Output is deterministic for identical pixel data: entry
// metadata is fixed and entries are written in name order.
func Build(src image.Image) ([]byte, error) {
	entries := map[string][]byte{}

	for _, spec := range PNGSizes {
		resized, err := imaging.Resample(src, spec.Width, spec.Height)
		if err != nil {
			return nil, fmt.Errorf("resize %s: %w", spec.Filename, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("encode %s: %w", spec.Filename, err)
		}
		entries[spec.Filename] = buf.Bytes()
	}

	icoData, err := buildFaviconICO(src)
	if err != nil {
		return nil, err
	}
	entries[iconName] = icoData

	manifest, err := renderWebManifest()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", manifestName, err)
	}
	entries[manifestName] = manifest
	entries[browserConfigName] = renderBrowserConfig()

	readme, err := renderReadme()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", readmeName, err)
	}
	entries[readmeName] = readme

	return archive(entries)
}

func buildFaviconICO(src image.Image) ([]byte, error) {
	images := make([]image.Image, 0, len(ico.BundleSizes))
	for _, size := range ico.BundleSizes {
		resized, err := imaging.Resample(src, size, size)
		if err != nil {
			return nil, fmt.Errorf("resize %s to %d: %w", iconName, size, err)
		}
		images = append(images, resized)
	}
	var buf bytes.Buffer
	if err := ico.Encode(&buf, images); err != nil {
		return nil, fmt.Errorf("encode %s: %w", iconName, err)
	}
	return buf.Bytes(), nil
}

func archive(entries map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)
	for _, name := range names {
		data := entries[name]
		// Fixed epoch mtime keeps archive bytes reproducible across runs.
		header := &tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
			ModTime:  time.Unix(0, 0).UTC(),
			Typeflag: tar.TypeReg,
			Format:   tar.FormatUSTAR,
		}
		if err := tw.WriteHeader(header); err != nil {
			return nil, fmt.Errorf("write tar header %s: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return nil, fmt.Errorf("write tar entry %s: %w", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gzw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
