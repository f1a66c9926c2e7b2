package app

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeh74/favicon-generator/internal/config"
	"github.com/mikeh74/favicon-generator/internal/ico"
	"github.com/mikeh74/favicon-generator/internal/imaging"
	"github.com/mikeh74/favicon-generator/internal/logging"
)

func writePNGFixture(t *testing.T, path string, width, height int) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
}

// writeBandedJPEG writes a wide JPEG whose centered 600×600 region is
// white and whose left/right flanks are black, so crop behavior shows up
// in the output pixel values.
func writeBandedJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1000, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 1000; x++ {
			if x >= 200 && x < 800 {
				img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{A: 255})
			}
		}
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer file.Close()
	if err := jpeg.Encode(file, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
}

func newGenerator(t *testing.T, configure func(*config.Options)) *Generator {
	t.Helper()
	opts := config.Options{}
	configure(&opts)
	return New(opts, logging.New(false))
}

func TestRun_ICOModeDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "logo.png")
	writePNGFixture(t, input, 64, 64)

	generator := newGenerator(t, func(opts *config.Options) {
		opts.Args.InputFile = input
	})
	if err := generator.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := filepath.Join(dir, "logo.ico")
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	entries, err := ico.ParseDirectory(data)
	if err != nil {
		t.Fatalf("output is not a valid icon container: %v", err)
	}
	// Upscaling is allowed: a 64×64 source still yields the full ladder.
	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6", len(entries))
	}
	for i, want := range ico.DefaultSizes {
		if entries[i].Width != want {
			t.Fatalf("entry %d = %d, want %d", i, entries[i].Width, want)
		}
	}

	if _, err := os.Stat(output + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("temp file left behind after success")
	}
}

func TestRun_BundleModeCropEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.jpg")
	writeBandedJPEG(t, input)

	generator := newGenerator(t, func(opts *config.Options) {
		opts.Args.InputFile = input
		opts.Crop = true
		opts.AppIcons = true
	})
	if err := generator.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "photo.tar.gz"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var appleTouch []byte
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip open: %v", err)
	}
	defer gzr.Close()
	tr := tar.NewReader(gzr)
	count := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar read: %v", err)
		}
		count++
		if header.Name == "apple-touch-icon.png" {
			appleTouch, err = io.ReadAll(tr)
			if err != nil {
				t.Fatalf("read apple-touch-icon: %v", err)
			}
		}
	}
	if count != 10 {
		t.Fatalf("archive entries = %d, want 10", count)
	}
	if appleTouch == nil {
		t.Fatal("archive missing apple-touch-icon.png")
	}

	img, err := png.Decode(bytes.NewReader(appleTouch))
	if err != nil {
		t.Fatalf("apple-touch-icon does not decode: %v", err)
	}
	if img.Bounds().Dx() != 180 || img.Bounds().Dy() != 180 {
		t.Fatalf("apple-touch-icon = %dx%d, want 180x180", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// The crop keeps only the white center band, so even the corners of
	// the resized icon must be bright. Without the crop the black flanks
	// would survive into the output.
	for _, pt := range []image.Point{{X: 5, Y: 90}, {X: 174, Y: 90}, {X: 90, Y: 5}} {
		r, _, _, _ := img.At(pt.X, pt.Y).RGBA()
		if r>>8 < 180 {
			t.Fatalf("pixel %v too dark (%d): crop did not keep the center region", pt, r>>8)
		}
	}
}

func TestRun_UnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "image.bmp")
	if err := os.WriteFile(input, []byte("BM..."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	generator := newGenerator(t, func(opts *config.Options) {
		opts.Args.InputFile = input
	})
	err := generator.Run(context.Background())
	if !errors.Is(err, imaging.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "image.ico")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("output file created for unsupported input")
	}
}

func TestRun_MislabeledContent(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(input, []byte("GIF89a..."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	generator := newGenerator(t, func(opts *config.Options) {
		opts.Args.InputFile = input
	})
	if err := generator.Run(context.Background()); err == nil {
		t.Fatal("expected error for mislabeled content")
	}
}

func TestRun_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "logo.png")
	output := filepath.Join(dir, "custom-name.ico")
	writePNGFixture(t, input, 32, 32)

	generator := newGenerator(t, func(opts *config.Options) {
		opts.Args.InputFile = input
		opts.Output = output
	})
	if err := generator.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("explicit output missing: %v", err)
	}
}

func TestWriteArtifact_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "no-such-dir", "out.ico")
	err := writeArtifact(missing, []byte("data"))
	if !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("err = %v, want ErrOutputWrite", err)
	}
	if _, statErr := os.Stat(missing + ".tmp"); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("temp file left behind after failure")
	}
}

func TestNew_NilLoggerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil logger")
		}
	}()
	New(config.Options{}, nil)
}
