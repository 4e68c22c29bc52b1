package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/service"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

const (
	maxUploadBytes = 32 << 20
	dateLayout     = "2006-01-02"
)

// parseExportForm reads a multipart or urlencoded portfolio form.
func parseExportForm(c *gin.Context) (service.ExportRequest, error) {
	var req service.ExportRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	form, err := c.MultipartForm()
	switch {
	case errors.Is(err, http.ErrNotMultipart):
		// urlencoded forms carry no files
		if err := c.Request.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form: %w", err)
		}
		form = &multipart.Form{Value: c.Request.PostForm}
	case err != nil:
		return req, fmt.Errorf("invalid form: %w", err)
	}
	value := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	f := domain.Fields{
		ProjectTitle: value("project_title"),
		Name:         value("name"),
		BrandColor:   strings.TrimSpace(value("brand_color")),
		FontChoice:   settingsdomain.FontChoice(strings.TrimSpace(value("font_choice"))),
		Content:      map[domain.SectionKey]string{},
		Images:       map[domain.SectionKey][]domain.Image{},
	}

	if raw := strings.TrimSpace(value("date")); raw != "" {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return req, domain.ErrInvalidDate
		}
		f.Date = &d
	}

	if files := form.File["logo"]; len(files) > 0 {
		logo, err := readUpload(files[0])
		if err != nil {
			return req, err
		}
		f.Logo = logo
	} else if b64 := strings.TrimSpace(value("logo")); b64 != "" {
		logo, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return req, fmt.Errorf("logo is not valid base64: %w", err)
		}
		f.Logo = logo
	}

	for _, s := range domain.Sections {
		f.Content[s.Key] = value(string(s.Key))
		for _, fh := range form.File[s.Key.ImagesField()] {
			data, err := readUpload(fh)
			if err != nil {
				return req, err
			}
			f.Images[s.Key] = append(f.Images[s.Key], domain.Image{Name: fh.Filename, Data: data})
		}
	}

	req.Fields = f
	req.Preset = strings.TrimSpace(value("preset"))
	if raw := strings.TrimSpace(value("theme")); raw != "" {
		theme, err := settingsdomain.ParseTheme(raw)
		if err != nil {
			return req, err
		}
		req.Theme = theme
	}
	return req, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}
