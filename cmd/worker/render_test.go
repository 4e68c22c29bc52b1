package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
)

func TestLoadFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("logo"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "chart.png"), []byte("chart"), 0o644))

	path := filepath.Join(dir, "fields.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "project_title": "Retail Forecasting",
  "date": "2025-03-14",
  "name": "Dana",
  "logo": "logo.png",
  "sections": {"exec_summary": "Summary text", "risks": "Data drift\nCost overrun"},
  "images": {"exec_summary": ["img/chart.png"]}
}`), 0o644))

	fields, err := loadFields(path)
	require.NoError(t, err)

	assert.Equal(t, "Retail Forecasting", fields.ProjectTitle)
	require.NotNil(t, fields.Date)
	assert.Equal(t, "2025-03-14", fields.Date.Format("2006-01-02"))
	assert.Equal(t, []byte("logo"), fields.Logo)
	assert.Equal(t, "Data drift\nCost overrun", fields.Text(domain.KeyRisks))

	imgs := fields.SectionImages(domain.KeyExecSummary)
	require.Len(t, imgs, 1)
	assert.Equal(t, "chart.png", imgs[0].Name)
	assert.Equal(t, []byte("chart"), imgs[0].Data)
}

func TestLoadFields_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"date": "14/03/2025"}`), 0o644))

	_, err := loadFields(path)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
