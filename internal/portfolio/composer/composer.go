// Package composer turns submitted portfolio fields into an ordered layout
// document. It performs no I/O and never reads the clock.
package composer

import (
	"strings"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

const (
	DefaultTitle  = "AI Consulting Portfolio"
	DefaultAuthor = "AI Consultant"
	Subtitle      = "Professional Consulting Portfolio"
	Tagline       = "Elevating Expertise into Professional Impact — Powered by PyStatR+"
	ClosingText   = "Thank you for reviewing this portfolio.\n" +
		"For inquiries, collaborations, or consulting engagements, please contact your PyStatR+ consultant."
	WatermarkText = "PyStatRPlus"

	dateLayout = "January 02, 2006"
)

// Fixed display sizes, in points.
const (
	LogoSize      = 150.0
	ImageWidth    = 300.0
	ImageHeight   = 200.0
	DividerWidth  = 450.0
	DividerHeight = 6.0
)

// ScenarioColWidths fit the five scenario columns into the text width of a
// Letter page with one inch margins.
var ScenarioColWidths = []float64{76, 66, 116, 116, 94}

// Compose builds the document for fields under theme. Identical inputs give
// structurally identical documents.
func Compose(fields domain.Fields, theme settingsdomain.Theme) domain.Document {
	if !theme.Valid() {
		theme = settingsdomain.ThemeLight
	}
	font := fields.FontChoice
	if !font.Valid() {
		font = settingsdomain.FontHelvetica
	}

	title := strings.TrimSpace(fields.ProjectTitle)
	if title == "" {
		title = DefaultTitle
	}
	author := strings.TrimSpace(fields.Name)
	if author == "" {
		author = DefaultAuthor
	}

	doc := domain.Document{
		Title:   title,
		Author:  author,
		Theme:   theme,
		Palette: domain.PaletteFor(theme),
		Font:    font,
		Watermark: domain.Watermark{
			Logo: fields.Logo,
			Text: WatermarkText,
		},
	}

	doc.Parts = append(doc.Parts, cover(fields, title, author))
	for _, s := range domain.Sections {
		if part, ok := section(s, fields); ok {
			doc.Parts = append(doc.Parts, part)
		}
	}
	doc.Parts = append(doc.Parts, closing())
	return doc
}

func cover(fields domain.Fields, title, author string) domain.Part {
	blocks := []domain.Block{domain.Spacer{Height: 80}}
	if len(fields.Logo) > 0 {
		blocks = append(blocks,
			domain.Picture{Image: domain.Image{Name: "logo", Data: fields.Logo}, Width: LogoSize, Height: LogoSize},
			domain.Spacer{Height: 50},
		)
	}
	blocks = append(blocks,
		domain.Text{Style: domain.StyleTitle, Text: title},
		domain.Text{Style: domain.StyleSubtitle, Text: Subtitle},
		domain.Spacer{Height: 30},
		domain.Text{Style: domain.StyleBody, Text: "Prepared by: " + author},
	)
	if fields.Date != nil {
		blocks = append(blocks, domain.Text{Style: domain.StyleBody, Text: "Date: " + fields.Date.Format(dateLayout)})
	}
	blocks = append(blocks,
		domain.Spacer{Height: 60},
		domain.Divider{Width: DividerWidth, Height: DividerHeight},
		domain.Spacer{Height: 20},
		domain.Text{Style: domain.StyleTagline, Text: Tagline},
	)
	return domain.Part{Kind: domain.PartCover, Blocks: blocks}
}

// section renders the body of s by its kind. ok is false when the section
// has nothing to show; its images are dropped with it.
func section(s domain.Section, fields domain.Fields) (domain.Part, bool) {
	raw := fields.Text(s.Key)

	var body []domain.Block
	switch s.Kind {
	case domain.FreeText:
		text := strings.TrimSpace(raw)
		if text == "" {
			return domain.Part{}, false
		}
		body = []domain.Block{domain.Text{Style: domain.StyleParagraph, Text: text}}
	case domain.BulletList:
		items := ParseBullets(raw)
		if len(items) == 0 {
			return domain.Part{}, false
		}
		for _, item := range items {
			body = append(body, domain.Text{Style: domain.StyleBullet, Text: item})
		}
	case domain.ScenarioTable:
		rows := ParseScenarios(raw)
		if len(rows) == 0 {
			return domain.Part{}, false
		}
		table := domain.Table{
			Header:    append([]string(nil), domain.ScenarioHeader...),
			ColWidths: append([]float64(nil), ScenarioColWidths...),
		}
		for _, r := range rows {
			table.Rows = append(table.Rows, r[:])
		}
		body = []domain.Block{table}
	default:
		return domain.Part{}, false
	}

	blocks := append([]domain.Block{domain.Heading{Title: s.Title}}, body...)
	for _, img := range fields.SectionImages(s.Key) {
		blocks = append(blocks,
			domain.Picture{Image: img, Width: ImageWidth, Height: ImageHeight},
			domain.Spacer{Height: 12},
		)
	}
	blocks = append(blocks, domain.Spacer{Height: 20})
	return domain.Part{Kind: domain.PartSection, Section: s.Key, Blocks: blocks}, true
}

func closing() domain.Part {
	return domain.Part{Kind: domain.PartClosing, Blocks: []domain.Block{
		domain.Spacer{Height: 200},
		domain.Divider{Width: DividerWidth, Height: DividerHeight},
		domain.Spacer{Height: 30},
		domain.Text{Style: domain.StyleClosing, Text: ClosingText},
		domain.Spacer{Height: 40},
		domain.Text{Style: domain.StyleTagline, Text: Tagline},
	}}
}

// ParseBullets splits text on newlines and keeps the trimmed, non-blank lines.
func ParseBullets(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// ParseScenarios keeps the lines containing '|' that split into at least
// five trimmed parts. Parts past the fifth are dropped.
func ParseScenarios(text string) []domain.ScenarioRow {
	var rows []domain.ScenarioRow
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < len(domain.ScenarioRow{}) {
			continue
		}
		var row domain.ScenarioRow
		for i := range row {
			row[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, row)
	}
	return rows
}
