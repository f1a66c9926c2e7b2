// Package app sequences the favicon pipeline: decode the source image,
// optionally center-crop it, resample it into the mode's size ladder,
// and write the packaged artifact in one atomic step.
package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikeh74/favicon-generator/internal/bundle"
	"github.com/mikeh74/favicon-generator/internal/config"
	"github.com/mikeh74/favicon-generator/internal/ico"
	"github.com/mikeh74/favicon-generator/internal/imaging"
	"github.com/mikeh74/favicon-generator/internal/logging"
)

type Generator struct {
	opts   config.Options
	logger *logging.Logger
}

func New(opts config.Options, logger *logging.Logger) *Generator {
	if logger == nil {
		panic("app.New: logger must not be nil")
	}
	return &Generator{opts: opts, logger: logger}
}

func (g *Generator) Run(ctx context.Context) error {
	if g.opts.Watch {
		return g.runWatch(ctx)
	}
	return g.buildOnce()
}

func (g *Generator) buildOnce() error {
	img, err := g.decodeInput()
	if err != nil {
		return err
	}
	return g.packageAndWrite(img)
}

// decodeInput validates the input extension, then decodes and sniffs the
// content. A mislabeled file fails on the sniff even when the extension
// passes.
func (g *Generator) decodeInput() (image.Image, error) {
	input := g.opts.Args.InputFile
	if _, ok := config.InputFormat(input); !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)",
			imaging.ErrUnsupportedFormat,
			filepath.Ext(input),
			strings.Join(config.SupportedExtensions(), ", "))
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("decoded input",
		logging.Field("path", input),
		logging.Field("width", img.Bounds().Dx()),
		logging.Field("height", img.Bounds().Dy()),
	)
	return img, nil
}

func (g *Generator) packageAndWrite(img image.Image) error {
	if g.opts.Crop {
		img = imaging.CenterCrop(img)
		g.logger.Debug("cropped to square", logging.Field("side", img.Bounds().Dx()))
	}

	var (
		artifact []byte
		mode     string
		err      error
	)
	if g.opts.AppIcons {
		mode = "app-icons"
		artifact, err = bundle.Build(img)
	} else {
		mode = "ico"
		artifact, err = g.buildICO(img)
	}
	if err != nil {
		return err
	}

	output := config.DeriveOutputPath(g.opts)
	if err := writeArtifact(output, artifact); err != nil {
		return err
	}
	g.logger.Info("artifact written",
		logging.Field("mode", mode),
		logging.Field("path", output),
		logging.Field("bytes", len(artifact)),
	)
	return nil
}

func (g *Generator) buildICO(img image.Image) ([]byte, error) {
	images := make([]image.Image, 0, len(ico.DefaultSizes))
	for _, size := range ico.DefaultSizes {
		resized, err := imaging.Resample(img, size, size)
		if err != nil {
			return nil, fmt.Errorf("resize to %d: %w", size, err)
		}
		images = append(images, resized)
	}
	var buf bytes.Buffer
	if err := ico.Encode(&buf, images); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeArtifact writes the full artifact to a sibling temp file and
// renames it into place, so a failure never leaves a truncated output.
func writeArtifact(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}
