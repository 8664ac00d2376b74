package mdpdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

var (
	hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	rgbColor = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(,\s*[\d.]+\s*)?\)$`)
)

// namedColors is the small set of CSS names accepted in color specs.
var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"gray":        "#808080",
	"grey":        "#808080",
	"pink":        "#ffc0cb",
	"brown":       "#a52a2a",
	"cyan":        "#00ffff",
	"magenta":     "#ff00ff",
	"transparent": "",
}

// ValidateColor accepts #rgb through #rrggbbaa, rgb()/rgba() and a small
// set of CSS color names. Anything else could smuggle CSS into a style
// attribute and is rejected.
func ValidateColor(c string) error {
	c = strings.TrimSpace(c)
	switch {
	case hexColor.MatchString(c):
		return nil
	case rgbColor.MatchString(c):
		return nil
	}
	if _, ok := namedColors[strings.ToLower(c)]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidColor, c)
}

// rgb is an 8-bit color used by the fpdf engine.
type rgb struct {
	R, G, B int
}

// cssColorRGB converts an accepted CSS color to RGB. ok is false for
// transparent and unparseable values.
func cssColorRGB(c string) (rgb, bool) {
	c = strings.ToLower(strings.TrimSpace(c))
	if named, ok := namedColors[c]; ok {
		if named == "" {
			return rgb{}, false
		}
		c = named
	}

	if m := rgbColor.FindStringSubmatch(c); m != nil {
		var out [3]int
		for i := range out {
			v, err := strconv.Atoi(m[i+1])
			if err != nil || v > 255 {
				return rgb{}, false
			}
			out[i] = v
		}
		return rgb{out[0], out[1], out[2]}, true
	}

	if !hexColor.MatchString(c) {
		return rgb{}, false
	}
	switch hex := c[1:]; len(hex) {
	case 4: // #rgba
		c = "#" + hex[:3]
	case 8: // #rrggbbaa
		c = "#" + hex[:6]
	case 3, 6:
	default:
		return rgb{}, false
	}

	col := chroma.ParseColour(c)
	if !col.IsSet() {
		return rgb{}, false
	}
	return rgb{int(col.Red()), int(col.Green()), int(col.Blue())}, true
}
