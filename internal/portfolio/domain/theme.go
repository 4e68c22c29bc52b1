package domain

import (
	"fmt"
	"strconv"

	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// Color is an sRGB color.
type Color struct {
	R, G, B int
}

// Hex renders the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses #RRGGBB.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
}

// MustHex is ParseHex for the fixed palettes below.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette holds the colors applied uniformly to every block.
type Palette struct {
	Page      Color
	Text      Color
	Title     Color
	Heading   Color
	Accent    Color
	Divider   Color
	TableBody Color
	Watermark Color
}

var (
	lightPalette = Palette{
		Page:      MustHex("#FFFFFF"),
		Text:      MustHex("#1A365D"),
		Title:     MustHex("#1E3A8A"),
		Heading:   MustHex("#38BDF8"),
		Accent:    MustHex("#FFD700"),
		Divider:   MustHex("#38BDF8"),
		TableBody: MustHex("#F5F5F5"),
		Watermark: MustHex("#1A3380"),
	}
	darkPalette = Palette{
		Page:      MustHex("#0F172A"),
		Text:      MustHex("#F8FAFC"),
		Title:     MustHex("#FFD700"),
		Heading:   MustHex("#38BDF8"),
		Accent:    MustHex("#FFD700"),
		Divider:   MustHex("#FFD700"),
		TableBody: MustHex("#1E293B"),
		Watermark: MustHex("#FFFFFF"),
	}
)

// PaletteFor returns the palette of theme; unknown themes get Light.
func PaletteFor(theme settingsdomain.Theme) Palette {
	if theme == settingsdomain.ThemeDark {
		return darkPalette
	}
	return lightPalette
}
