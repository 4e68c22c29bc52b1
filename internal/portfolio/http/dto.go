package http

import (
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
)

type blockDTO struct {
	Kind      string     `json:"kind"`
	Style     string     `json:"style,omitempty"`
	Text      string     `json:"text,omitempty"`
	Title     string     `json:"title,omitempty"`
	Image     string     `json:"image,omitempty"`
	Bytes     int        `json:"bytes,omitempty"`
	Width     float64    `json:"width,omitempty"`
	Height    float64    `json:"height,omitempty"`
	Header    []string   `json:"header,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
	ColWidths []float64  `json:"col_widths,omitempty"`
}

type partDTO struct {
	Kind    string     `json:"kind"`
	Section string     `json:"section,omitempty"`
	Blocks  []blockDTO `json:"blocks"`
}

type previewResponse struct {
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Theme     string     `json:"theme"`
	Font      string     `json:"font"`
	Watermark string     `json:"watermark"`
	Palette   paletteDTO `json:"palette"`
	Parts     []partDTO  `json:"parts"`
}

type paletteDTO struct {
	Page      string `json:"page"`
	Text      string `json:"text"`
	Title     string `json:"title"`
	Heading   string `json:"heading"`
	Accent    string `json:"accent"`
	Divider   string `json:"divider"`
	TableBody string `json:"table_body"`
	Watermark string `json:"watermark"`
}

func toPreview(doc domain.Document) previewResponse {
	wm := doc.Watermark.Text
	if len(doc.Watermark.Logo) > 0 {
		wm = "logo"
	}
	p := doc.Palette
	resp := previewResponse{
		Title:     doc.Title,
		Author:    doc.Author,
		Theme:     string(doc.Theme),
		Font:      string(doc.Font),
		Watermark: wm,
		Palette: paletteDTO{
			Page:      p.Page.Hex(),
			Text:      p.Text.Hex(),
			Title:     p.Title.Hex(),
			Heading:   p.Heading.Hex(),
			Accent:    p.Accent.Hex(),
			Divider:   p.Divider.Hex(),
			TableBody: p.TableBody.Hex(),
			Watermark: p.Watermark.Hex(),
		},
		Parts: make([]partDTO, 0, len(doc.Parts)),
	}
	for _, part := range doc.Parts {
		pd := partDTO{Kind: part.Kind.String(), Section: string(part.Section), Blocks: make([]blockDTO, 0, len(part.Blocks))}
		for _, b := range part.Blocks {
			pd.Blocks = append(pd.Blocks, toBlock(b))
		}
		resp.Parts = append(resp.Parts, pd)
	}
	return resp
}

func toBlock(b domain.Block) blockDTO {
	out := blockDTO{Kind: b.Kind()}
	switch blk := b.(type) {
	case domain.Spacer:
		out.Height = blk.Height
	case domain.Text:
		out.Style = blk.Style.String()
		out.Text = blk.Text
	case domain.Heading:
		out.Title = blk.Title
	case domain.Picture:
		out.Image = blk.Image.Name
		out.Bytes = len(blk.Image.Data)
		out.Width = blk.Width
		out.Height = blk.Height
	case domain.Divider:
		out.Width = blk.Width
		out.Height = blk.Height
	case domain.Table:
		out.Header = blk.Header
		out.Rows = blk.Rows
		out.ColWidths = blk.ColWidths
	}
	return out
}
