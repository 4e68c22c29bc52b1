package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/logging"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/composer"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/render"
	settingsdomain "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// fieldsFile is the on-disk form of domain.Fields. Logo and image paths
// are relative to the file.
type fieldsFile struct {
	ProjectTitle string                         `json:"project_title"`
	Date         string                         `json:"date"`
	Name         string                         `json:"name"`
	BrandColor   string                         `json:"brand_color"`
	FontChoice   settingsdomain.FontChoice      `json:"font_choice"`
	Logo         string                         `json:"logo"`
	Sections     map[domain.SectionKey]string   `json:"sections"`
	Images       map[domain.SectionKey][]string `json:"images"`
}

func RunRender(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: worker render <fields.json> <out.pdf> [Light|Dark]")
	}
	theme := settingsdomain.ThemeLight
	if len(args) > 2 {
		t, err := settingsdomain.ParseTheme(args[2])
		if err != nil {
			return fmt.Errorf("theme %q: %w", args[2], err)
		}
		theme = t
	}

	logger, err := logging.New(envOr("LOG_LEVEL", "info"), envOr("APP_ENV", "development"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fields, err := loadFields(args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	res, err := render.NewRenderer(logger).Render(context.Background(), composer.Compose(fields, theme), render.Options{GeneratedAt: now})
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], res.PDF, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}

	logger.Info("portfolio rendered",
		zap.String("out", args[1]),
		zap.String("theme", string(theme)),
		zap.Int("pages", res.Pages),
		zap.Int("bytes", len(res.PDF)),
		zap.Strings("warnings", res.Warnings),
	)
	return nil
}

func loadFields(path string) (domain.Fields, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Fields{}, fmt.Errorf("failed to read fields: %w", err)
	}
	var ff fieldsFile
	if err := json.Unmarshal(raw, &ff); err != nil {
		return domain.Fields{}, fmt.Errorf("failed to parse fields: %w", err)
	}
	dir := filepath.Dir(path)

	fields := domain.Fields{
		ProjectTitle: ff.ProjectTitle,
		Name:         ff.Name,
		BrandColor:   ff.BrandColor,
		FontChoice:   ff.FontChoice,
		Content:      ff.Sections,
		Images:       map[domain.SectionKey][]domain.Image{},
	}
	if ff.Date != "" {
		d, err := time.Parse("2006-01-02", ff.Date)
		if err != nil {
			return domain.Fields{}, domain.ErrInvalidDate
		}
		fields.Date = &d
	}
	if ff.Logo != "" {
		logo, err := os.ReadFile(filepath.Join(dir, ff.Logo))
		if err != nil {
			return domain.Fields{}, fmt.Errorf("failed to read logo: %w", err)
		}
		fields.Logo = logo
	}
	for key, paths := range ff.Images {
		for _, p := range paths {
			data, err := os.ReadFile(filepath.Join(dir, p))
			if err != nil {
				return domain.Fields{}, fmt.Errorf("failed to read image: %w", err)
			}
			fields.Images[key] = append(fields.Images[key], domain.Image{Name: filepath.Base(p), Data: data})
		}
	}
	return fields, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
