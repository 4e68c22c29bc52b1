package domain

import (
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// Block is one layout element. The set of implementations is closed.
type Block interface {
	Kind() string
	block()
}

// TextStyle selects font, color and alignment of a Text block.
type TextStyle int

const (
	StyleTitle     TextStyle = iota // large centered title
	StyleSubtitle                   // centered heading-colored line
	StyleBody                       // left-aligned body text
	StyleParagraph                  // justified body text
	StyleBullet                     // bulleted body line
	StyleTagline                    // small centered italic line in divider color
	StyleClosing                    // centered body text
)

func (s TextStyle) String() string {
	switch s {
	case StyleTitle:
		return "title"
	case StyleSubtitle:
		return "subtitle"
	case StyleBody:
		return "body"
	case StyleParagraph:
		return "paragraph"
	case StyleBullet:
		return "bullet"
	case StyleTagline:
		return "tagline"
	case StyleClosing:
		return "closing"
	}
	return "unknown"
}

// Spacer is vertical whitespace in points.
type Spacer struct {
	Height float64
}

// Text is a run of text in one style.
type Text struct {
	Style TextStyle
	Text  string
}

// Heading opens a section.
type Heading struct {
	Title string
}

// Picture places an image at a fixed display size in points.
type Picture struct {
	Image  Image
	Width  float64
	Height float64
}

// Divider is a filled bar centered on the page.
type Divider struct {
	Width  float64
	Height float64
}

// Table is a header row plus body rows, all with len(Header) cells.
type Table struct {
	Header    []string
	Rows      [][]string
	ColWidths []float64
}

func (Spacer) Kind() string  { return "spacer" }
func (Text) Kind() string    { return "text" }
func (Heading) Kind() string { return "heading" }
func (Picture) Kind() string { return "image" }
func (Divider) Kind() string { return "divider" }
func (Table) Kind() string   { return "table" }

func (Spacer) block()  {}
func (Text) block()    {}
func (Heading) block() {}
func (Picture) block() {}
func (Divider) block() {}
func (Table) block()   {}

// PartKind tells where a part starts.
type PartKind int

const (
	PartCover PartKind = iota
	PartSection
	PartClosing
)

func (k PartKind) String() string {
	switch k {
	case PartCover:
		return "cover"
	case PartSection:
		return "section"
	case PartClosing:
		return "closing"
	}
	return "unknown"
}

// Part is a contiguous run of blocks. Cover and closing parts start on a
// new page; sections flow after one another.
type Part struct {
	Kind    PartKind
	Section SectionKey // empty unless Kind == PartSection
	Blocks  []Block
}

// Watermark is stamped on every page: the logo when present, else Text.
type Watermark struct {
	Logo []byte
	Text string
}

// Document is the composed, not yet rendered portfolio.
type Document struct {
	Title     string
	Author    string
	Theme     settingsdomain.Theme
	Palette   Palette
	Font      settingsdomain.FontChoice
	Watermark Watermark
	Parts     []Part
}

// SectionKeys lists the sections present in the document, in order.
func (d Document) SectionKeys() []SectionKey {
	var keys []SectionKey
	for _, p := range d.Parts {
		if p.Kind == PartSection {
			keys = append(keys, p.Section)
		}
	}
	return keys
}
