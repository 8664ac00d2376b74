package mdpdf

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// DefaultTextColor is used when a color spec only names the background.
const DefaultTextColor = "#1a1a1a"

// ColorPair is the background and text color of a status cell.
type ColorPair struct {
	Background string
	Text       string
}

var defaultColors = map[string]ColorPair{
	"EXISTS":              {"#d4edda", "#155724"},
	"MISSING":             {"#f8d7da", "#721c24"},
	"PARTIAL":             {"#fff3cd", "#856404"},
	"TODO":                {"#fff3cd", "#856404"},
	"DONE":                {"#d4edda", "#155724"},
	"CLIENT-SIDE":         {"#d1ecf1", "#0c5460"},
	"NEEDS CLARIFICATION": {"#e8daef", "#512e5f"},
	"WARNING":             {"#fff3cd", "#856404"},
	"ERROR":               {"#f8d7da", "#721c24"},
	"N/A":                 {"#e2e3e5", "#495057"},
}

// DefaultColors returns a copy of the built-in keyword palette.
func DefaultColors() map[string]ColorPair {
	return maps.Clone(defaultColors)
}

// Palette is an immutable keyword to color mapping. Keys are upper-case.
type Palette struct {
	colors map[string]ColorPair
}

// DefaultPalette returns a Palette holding DefaultColors.
func DefaultPalette() *Palette {
	return NewPaletteBuilder().Build()
}

// Lookup matches text against the palette keys. The whole trimmed text must
// equal a key, ignoring case.
func (p *Palette) Lookup(text string) (ColorPair, bool) {
	if p == nil {
		return ColorPair{}, false
	}
	c, ok := p.colors[normalizeKeyword(text)]
	return c, ok
}

// Keywords returns the sorted palette keys.
func (p *Palette) Keywords() []string {
	if p == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(p.colors))
}

// Len returns the number of keywords.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.colors)
}

// PaletteBuilder assembles a Palette from the defaults plus overrides.
// The zero value starts empty; NewPaletteBuilder starts from DefaultColors.
type PaletteBuilder struct {
	colors map[string]ColorPair
}

// NewPaletteBuilder returns a builder seeded with DefaultColors.
func NewPaletteBuilder() *PaletteBuilder {
	return &PaletteBuilder{colors: DefaultColors()}
}

// Set adds or replaces one keyword.
func (b *PaletteBuilder) Set(keyword string, c ColorPair) *PaletteBuilder {
	if b.colors == nil {
		b.colors = make(map[string]ColorPair)
	}
	b.colors[normalizeKeyword(keyword)] = c
	return b
}

// Override applies overrides on top of what the builder holds. On a key
// collision the override wins.
func (b *PaletteBuilder) Override(overrides map[string]ColorPair) *PaletteBuilder {
	for k, c := range overrides {
		b.Set(k, c)
	}
	return b
}

// Build returns a Palette independent of the builder.
func (b *PaletteBuilder) Build() *Palette {
	return &Palette{colors: maps.Clone(b.colors)}
}

func normalizeKeyword(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseColorSpec parses "#bg:#text" or a single background color.
// A single color gets DefaultTextColor as text.
func ParseColorSpec(spec string) (ColorPair, error) {
	bg, text, found := strings.Cut(strings.TrimSpace(spec), ":")
	if !found {
		text = DefaultTextColor
	}
	bg, text = strings.TrimSpace(bg), strings.TrimSpace(text)

	if err := ValidateColor(bg); err != nil {
		return ColorPair{}, fmt.Errorf("background: %w", err)
	}
	if err := ValidateColor(text); err != nil {
		return ColorPair{}, fmt.Errorf("text: %w", err)
	}
	return ColorPair{Background: bg, Text: text}, nil
}

// ParseColorOverrides decodes a JSON or YAML object of keyword to color
// spec, e.g. {"DONE": "#d4edda:#155724", "BLOCKED": "#f8d7da"}.
// Keywords are upper-cased.
func ParseColorOverrides(serialized string) (map[string]ColorPair, error) {
	raw, err := yamlutil.DecodeStringMap([]byte(serialized))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColorOverrides, err)
	}
	return ColorOverridesFromMap(raw)
}

// ColorOverridesFromMap validates an already decoded keyword to spec map.
func ColorOverridesFromMap(raw map[string]string) (map[string]ColorPair, error) {
	out := make(map[string]ColorPair, len(raw))
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		key := normalizeKeyword(k)
		if key == "" {
			return nil, fmt.Errorf("%w: empty keyword", ErrInvalidColorOverrides)
		}
		c, err := ParseColorSpec(raw[k])
		if err != nil {
			return nil, fmt.Errorf("%w: keyword %q: %w", ErrInvalidColorOverrides, k, err)
		}
		out[key] = c
	}
	return out, nil
}

// paletteColors adapts a Palette to the pipeline coloring pass.
type paletteColors struct {
	p *Palette
}

func (a paletteColors) Lookup(text string) (pipeline.CellColor, bool) {
	c, ok := a.p.Lookup(text)
	if !ok {
		return pipeline.CellColor{}, false
	}
	return pipeline.CellColor{
		Keyword:    normalizeKeyword(text),
		Background: c.Background,
		Text:       c.Text,
	}, true
}

var _ pipeline.KeywordColors = paletteColors{}
