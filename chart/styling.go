package chart

import "strings"

// colorNameToHex translates the color names the API uses in plot
// styles. Unknown names are reported, never thrown: the caller picks
// the fallback.
var colorNameToHex = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"brown":   "#a52a2a",
	"pink":    "#ffc0cb",
	"grey":    "#808080",
	"gray":    "#808080",
	"olive":   "#808000",
	"navy":    "#000080",
	"teal":    "#008080",
	"lime":    "#00ff00",
	"maroon":  "#800000",
	"salmon":  "#fa8072",
	"gold":    "#ffd700",
	"violet":  "#ee82ee",
}

// ColorNameToHex resolves a color name to its hex form. Hex values
// pass through unchanged.
func ColorNameToHex(name string) (string, bool) {
	if strings.HasPrefix(name, "#") {
		return name, true
	}
	hex, found := colorNameToHex[strings.ToLower(name)]
	return hex, found
}

// strokeStyles maps the API's linestyle names onto chart dash array
// values. 0 renders solid.
var strokeStyles = map[string]int{
	"solid":   0,
	"dotted":  1,
	"dashed":  3,
	"dashdot": 5,
}

func StrokeStyle(name string) (int, bool) {
	dash, found := strokeStyles[strings.ToLower(name)]
	return dash, found
}

const (
	defaultColor    = "#000000"
	modelLineWidth  = 1
	statLineWidth   = 2
	refLineWidth    = 2
	defaultDash     = 0
	defaultBoxColor = "#63badb"
)
