package bundle

// SizeSpec is one target raster in the app icon bundle: a fixed
// resolution, its platform role, and the exact entry name downstream
// HTML snippets reference.
type SizeSpec struct {
	Width    int
	Height   int
	Purpose  string
	Filename string
}

const (
	iconName          = "favicon.ico"
	manifestName      = "site.webmanifest"
	browserConfigName = "browserconfig.xml"
	readmeName        = "README.md"
)

// PNGSizes is the fixed set of standalone PNG entries. The 16/32/48
// ladder goes into favicon.ico; 48 exists only there.
var PNGSizes = []SizeSpec{
	{Width: 16, Height: 16, Purpose: "favicon", Filename: "favicon-16x16.png"},
	{Width: 32, Height: 32, Purpose: "favicon", Filename: "favicon-32x32.png"},
	{Width: 180, Height: 180, Purpose: "apple-touch-icon", Filename: "apple-touch-icon.png"},
	{Width: 192, Height: 192, Purpose: "android-chrome", Filename: "android-chrome-192x192.png"},
	{Width: 512, Height: 512, Purpose: "android-chrome", Filename: "android-chrome-512x512.png"},
	{Width: 150, Height: 150, Purpose: "mstile", Filename: "mstile-150x150.png"},
}

// EntryNames lists every entry the archive must contain, unsorted.
func EntryNames() []string {
	names := make([]string, 0, len(PNGSizes)+4)
	names = append(names, iconName, manifestName, browserConfigName, readmeName)
	for _, spec := range PNGSizes {
		names = append(names, spec.Filename)
	}
	return names
}
