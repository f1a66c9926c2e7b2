package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"text/template"
)

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Icons           []manifestIcon `json:"icons"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Display         string         `json:"display"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

func renderWebManifest() ([]byte, error) {
	manifest := webManifest{
		Name:            "App",
		ShortName:       "App",
		ThemeColor:      "#ffffff",
		BackgroundColor: "#ffffff",
		Display:         "standalone",
	}
	for _, spec := range PNGSizes {
		if spec.Purpose != "android-chrome" {
			continue
		}
		manifest.Icons = append(manifest.Icons, manifestIcon{
			Src:   "/" + spec.Filename,
			Sizes: fmt.Sprintf("%dx%d", spec.Width, spec.Height),
			Type:  "image/png",
		})
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func renderBrowserConfig() []byte {
	var tile string
	for _, spec := range PNGSizes {
		if spec.Purpose == "mstile" {
			tile = spec.Filename
		}
	}
	xml := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<browserconfig>
    <msapplication>
        <tile>
            <square150x150logo src="/%s"/>
            <TileColor>#da532c</TileColor>
        </tile>
    </msapplication>
</browserconfig>
`, tile)
	return []byte(xml)
}

var readmeTemplate = template.Must(template.New("readme").Parse(`# App Icons

Extract this archive into the root of your site, then add the snippets
below to the <head> of your pages.

## Files

{{range .Files}}- ` + "`{{.}}`" + `
{{end}}
## HTML

` + "```html" + `
<link rel="icon" href="/favicon.ico" sizes="48x48">
<link rel="icon" type="image/png" sizes="16x16" href="/favicon-16x16.png">
<link rel="icon" type="image/png" sizes="32x32" href="/favicon-32x32.png">
<link rel="apple-touch-icon" sizes="180x180" href="/apple-touch-icon.png">
<link rel="manifest" href="/site.webmanifest">
<meta name="msapplication-config" content="/browserconfig.xml">
<meta name="theme-color" content="#ffffff">
` + "```" + `
`))

func renderReadme() ([]byte, error) {
	files := EntryNames()
	sort.Strings(files)
	var buf bytes.Buffer
	if err := readmeTemplate.Execute(&buf, struct{ Files []string }{Files: files}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
