package render

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

const (
	margin       = 72.0
	titleFamily  = "Helvetica"
	creator      = "PyStatR+ Portfolio Builder"
	bodySize     = 12.0
	bodyLeading  = 16.0
	tableSize    = 10.0
	tableLeading = 13.0
	tablePadding = 6.0
)

var white = domain.Color{R: 255, G: 255, B: 255}

// bodyFamily maps a font choice to its core PDF font family.
func bodyFamily(f settingsdomain.FontChoice) string {
	switch f {
	case settingsdomain.FontTimes:
		return "Times"
	case settingsdomain.FontCourier:
		return "Courier"
	default:
		return "Helvetica"
	}
}

type page struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	palette domain.Palette
	body    string
	width   float64
	height  float64
	content float64
}

// layout writes the unstamped document to out. Pictures absent from assets
// are skipped; pictures the backend rejects become warnings.
func layout(doc domain.Document, assets map[blockRef]string, generatedAt time.Time, out string) ([]string, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator(creator, true)

	w, h := pdf.GetPageSize()
	p := &page{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		palette: doc.Palette,
		body:    bodyFamily(doc.Font),
		width:   w,
		height:  h,
		content: w - 2*margin,
	}

	if doc.Theme == settingsdomain.ThemeDark {
		pdf.SetHeaderFunc(func() {
			p.fill(doc.Palette.Page)
			pdf.Rect(0, 0, p.width, p.height, "F")
		})
	}

	var warnings []string
	prev := domain.PartClosing
	for pi, part := range doc.Parts {
		if part.Kind != domain.PartSection || prev != domain.PartSection {
			pdf.AddPage()
		}
		prev = part.Kind

		for bi, b := range part.Blocks {
			switch blk := b.(type) {
			case domain.Spacer:
				pdf.Ln(blk.Height)
			case domain.Text:
				p.text(blk)
			case domain.Heading:
				p.heading(blk)
			case domain.Divider:
				p.divider(blk)
			case domain.Table:
				p.table(blk)
			case domain.Picture:
				path, ok := assets[blockRef{part: pi, block: bi}]
				if !ok {
					continue
				}
				if err := p.picture(blk, path); err != nil {
					warnings = append(warnings, fmt.Sprintf("could not place image %s: %v", imageName(blk.Image, bi), err))
				}
			default:
				return warnings, fmt.Errorf("unsupported block %q", b.Kind())
			}
			if err := pdf.Error(); err != nil {
				return warnings, err
			}
		}
	}

	if err := pdf.OutputFileAndClose(out); err != nil {
		return warnings, fmt.Errorf("failed to write layout: %w", err)
	}
	return warnings, nil
}

func (p *page) fill(c domain.Color)   { p.pdf.SetFillColor(c.R, c.G, c.B) }
func (p *page) stroke(c domain.Color) { p.pdf.SetDrawColor(c.R, c.G, c.B) }
func (p *page) ink(c domain.Color)    { p.pdf.SetTextColor(c.R, c.G, c.B) }

// ensure starts a new page unless h points fit above the bottom margin.
func (p *page) ensure(h float64) {
	if p.pdf.GetY()+h > p.height-margin {
		p.pdf.AddPage()
	}
}

func (p *page) text(t domain.Text) {
	pdf := p.pdf
	switch t.Style {
	case domain.StyleTitle:
		pdf.SetFont(titleFamily, "B", 28)
		p.ink(p.palette.Title)
		pdf.MultiCell(p.content, 32, p.tr(t.Text), "", "C", false)
		pdf.Ln(30)
	case domain.StyleSubtitle:
		pdf.SetFont(titleFamily, "B", 16)
		p.ink(p.palette.Heading)
		pdf.MultiCell(p.content, 20, p.tr(t.Text), "", "C", false)
	case domain.StyleTagline:
		pdf.SetFont(titleFamily, "I", 10)
		p.ink(p.palette.Divider)
		pdf.Ln(10)
		pdf.MultiCell(p.content, 14, p.tr(t.Text), "", "C", false)
	case domain.StyleClosing:
		pdf.SetFont(p.body, "", bodySize)
		p.ink(p.palette.Text)
		pdf.Ln(20)
		pdf.MultiCell(p.content, bodyLeading, p.tr(t.Text), "", "C", false)
	case domain.StyleBullet:
		p.bodyText("• "+t.Text, "J")
	case domain.StyleParagraph:
		p.bodyText(t.Text, "J")
	default:
		p.bodyText(t.Text, "L")
	}
}

func (p *page) bodyText(s, align string) {
	p.pdf.SetFont(p.body, "", bodySize)
	p.ink(p.palette.Text)
	p.pdf.Ln(6)
	p.pdf.MultiCell(p.content, bodyLeading, p.tr(s), "", align, false)
	p.pdf.Ln(6)
}

func (p *page) heading(hd domain.Heading) {
	pdf := p.pdf
	p.ensure(24 + 28 + 12 + 3*bodyLeading)
	pdf.Ln(24)
	pdf.SetFont(titleFamily, "B", 16)
	p.ink(p.palette.Heading)
	p.stroke(p.palette.Accent)
	lw := pdf.GetLineWidth()
	pdf.SetLineWidth(1)
	pdf.CellFormat(p.content, 28, p.tr(hd.Title), "1", 1, "L", false, 0, "")
	pdf.SetLineWidth(lw)
	pdf.Ln(12)
}

func (p *page) divider(d domain.Divider) {
	p.ensure(d.Height)
	y := p.pdf.GetY()
	p.fill(p.palette.Divider)
	p.pdf.Rect((p.width-d.Width)/2, y, d.Width, d.Height, "F")
	p.pdf.SetY(y + d.Height)
}

func (p *page) picture(pic domain.Picture, path string) error {
	pdf := p.pdf
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptions(path, opts)
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		return err
	}
	p.ensure(pic.Height)
	y := pdf.GetY()
	pdf.ImageOptions(path, (p.width-pic.Width)/2, y, pic.Width, pic.Height, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		return err
	}
	pdf.SetY(y + pic.Height)
	return nil
}

func (p *page) table(t domain.Table) {
	pdf := p.pdf
	total := 0.0
	for _, w := range t.ColWidths {
		total += w
	}
	left := (p.width - total) / 2

	lw := pdf.GetLineWidth()
	pdf.SetLineWidth(1)
	p.stroke(p.palette.Accent)

	pdf.SetFont(titleFamily, "B", tableSize)
	p.row(t.Header, t.ColWidths, left, p.palette.Heading, white)

	pdf.SetFont(p.body, "", tableSize)
	for _, r := range t.Rows {
		p.row(r, t.ColWidths, left, p.palette.TableBody, p.palette.Text)
	}

	pdf.SetLineWidth(lw)
	pdf.SetX(margin)
}

// row draws one table row whose height fits its tallest cell. A row taller
// than a page is continued on the following pages, each chunk drawn with its
// own cell borders. The current font must already be set.
func (p *page) row(cells []string, widths []float64, left float64, bg, fg domain.Color) {
	pdf := p.pdf
	lines := make([][][]byte, len(widths))
	total := 1
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = p.tr(cells[i])
		}
		lines[i] = pdf.SplitLines([]byte(cell), w-tablePadding)
		if len(lines[i]) > total {
			total = len(lines[i])
		}
	}

	perPage := p.rowLinesPerPage()
	for first := 0; first < total; {
		remaining := total - first
		fit := p.rowLinesLeft()
		switch {
		case fit >= remaining:
			p.rowChunk(lines, widths, left, first, total, bg, fg)
			return
		case fit < 1, first == 0 && remaining <= perPage:
			// keep rows that fit on one page together
			pdf.AddPage()
			continue
		}
		p.rowChunk(lines, widths, left, first, first+fit, bg, fg)
		first += fit
		pdf.AddPage()
	}
}

// rowLinesLeft is how many table lines fit between the cursor and the
// bottom margin.
func (p *page) rowLinesLeft() int {
	return int((p.height - margin - p.pdf.GetY() - 2*tablePadding) / tableLeading)
}

// rowLinesPerPage is how many table lines fit on an empty page.
func (p *page) rowLinesPerPage() int {
	return int((p.height - 2*margin - 2*tablePadding) / tableLeading)
}

// rowChunk draws lines [from, to) of every cell as one bordered band.
func (p *page) rowChunk(lines [][][]byte, widths []float64, x float64, from, to int, bg, fg domain.Color) {
	pdf := p.pdf
	height := float64(to-from)*tableLeading + 2*tablePadding
	y := pdf.GetY()
	p.fill(bg)
	p.ink(fg)
	for i, w := range widths {
		pdf.Rect(x, y, w, height, "FD")
		for j := from; j < to && j < len(lines[i]); j++ {
			pdf.SetXY(x, y+tablePadding+float64(j-from)*tableLeading)
			pdf.CellFormat(w, tableLeading, string(lines[i][j]), "", 0, "C", false, 0, "")
		}
		x += w
	}
	pdf.SetXY(margin, y+height)
}
