package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
)

// blockRef addresses one block of a document.
type blockRef struct {
	part, block int
}

// prepareAssets writes every decodable picture into ws as an 8-bit PNG.
// Pictures that fail to decode are reported as warnings and left out.
func prepareAssets(ws string, doc domain.Document) (map[blockRef]string, []string) {
	assets := make(map[blockRef]string)
	var warnings []string
	n := 0
	for pi, part := range doc.Parts {
		for bi, b := range part.Blocks {
			pic, ok := b.(domain.Picture)
			if !ok {
				continue
			}
			n++
			path, err := writeNormalized(ws, fmt.Sprintf("image-%03d", n), pic.Image.Data)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("could not process image %s: %v", imageName(pic.Image, n), err))
				continue
			}
			assets[blockRef{part: pi, block: bi}] = path
		}
	}
	return assets, warnings
}

// writeNormalized decodes data and re-encodes it as a non-interlaced 8-bit
// PNG so the layout backend accepts every input the decoder does.
func writeNormalized(ws, base string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	rgba := image.NewNRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	path := filepath.Join(ws, base+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := png.Encode(f, rgba); err != nil {
		f.Close()
		return "", fmt.Errorf("encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

func imageName(img domain.Image, n int) string {
	if img.Name != "" {
		return img.Name
	}
	return fmt.Sprintf("#%d", n)
}
