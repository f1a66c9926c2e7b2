package config

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

type Options struct {
	Output   string `short:"o" long:"output" description:"Output path (default: input filename with .ico or .tar.gz extension)"`
	Crop     bool   `short:"c" long:"crop" description:"Center-crop the image to a square before resizing"`
	AppIcons bool   `short:"a" long:"app-icons" description:"Produce an app icon bundle (.tar.gz) instead of a bare .ico"`
	Watch    bool   `short:"w" long:"watch" description:"Keep running and rebuild whenever the input file changes"`
	Debug    bool   `long:"debug" description:"Enable verbose debug output"`
	Version  bool   `short:"V" long:"version" description:"Print version and exit"`

	Args struct {
		InputFile string `positional-arg-name:"INPUT_FILE" description:"Path to the JPEG, PNG, or WEBP image to convert"`
	} `positional-args:"yes"`
}

// inputFormats maps accepted input extensions to the image format name
// reported by image.Decode for that content.
var inputFormats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".webp": "webp",
}

func ParseOptions(args []string) (Options, error) {
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] INPUT_FILE"
	if _, err := parser.ParseArgs(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func ValidateRequired(opts Options) error {
	if strings.TrimSpace(opts.Args.InputFile) == "" {
		return errors.New("an input file is required")
	}
	return nil
}

// InputFormat reports the expected image format for path based on its
// extension, before any pixel data is read.
func InputFormat(path string) (string, bool) {
	format, ok := inputFormats[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

func SupportedExtensions() []string {
	exts := make([]string, 0, len(inputFormats))
	for ext := range inputFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DeriveOutputPath resolves the artifact path: an explicit --output wins,
// otherwise the input filename with its extension swapped for the mode's.
func DeriveOutputPath(opts Options) string {
	if opts.Output != "" {
		return opts.Output
	}
	ext := ".ico"
	if opts.AppIcons {
		ext = ".tar.gz"
	}
	input := opts.Args.InputFile
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
