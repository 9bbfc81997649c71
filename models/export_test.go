package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExportOptionsNormalize(t *testing.T) {
	t.Run("clamps numeric fields into range", func(t *testing.T) {
		opts := ExportOptions{MarginInches: 5.0, ImageQuality: 0.1}
		opts.Normalize()

		assert.Equal(t, 2.0, opts.MarginInches)
		assert.Equal(t, 0.5, opts.ImageQuality)

		opts = ExportOptions{MarginInches: 0.1, ImageQuality: 2.0}
		opts.Normalize()

		assert.Equal(t, 0.5, opts.MarginInches)
		assert.Equal(t, 1.0, opts.ImageQuality)
	})

	t.Run("unknown enums fall back to defaults", func(t *testing.T) {
		opts := ExportOptions{Format: "tabloid", Orientation: "diagonal", Template: "fancy"}
		opts.Normalize()

		assert.Equal(t, PageA4, opts.Format)
		assert.Equal(t, OrientationPortrait, opts.Orientation)
		assert.Equal(t, TemplateStandard, opts.Template)
	})

	t.Run("valid values survive", func(t *testing.T) {
		opts := ExportOptions{
			Format:       PageLetter,
			Orientation:  OrientationLandscape,
			Template:     TemplateDetailed,
			MarginInches: 1.25,
			ImageQuality: 0.9,
		}
		opts.Normalize()

		assert.Equal(t, PageLetter, opts.Format)
		assert.Equal(t, 1.25, opts.MarginInches)
		assert.Equal(t, 0.9, opts.ImageQuality)
	})
}

func TestValidateExportData(t *testing.T) {
	t.Run("requires a project name", func(t *testing.T) {
		v := ValidateExportData(ExportData{ProjectInfo: ProjectInfo{Name: "   "}})
		assert.False(t, v.IsValid)
		assert.Contains(t, v.Errors, "현장명을 입력해주세요.")
	})

	t.Run("empty conditions are allowed", func(t *testing.T) {
		v := ValidateExportData(ExportData{ProjectInfo: ProjectInfo{Name: "한강 신축현장"}})
		assert.True(t, v.IsValid)
		assert.Empty(t, v.Errors)
	})
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("standard template has no suffix", func(t *testing.T) {
		name := ExportFileName(ProjectInfo{Name: "한강 신축현장"}, TemplateStandard, at)
		assert.Equal(t, "한강 신축현장_견적조건서_2026-03-02.html", name)
	})

	t.Run("other templates carry a suffix", func(t *testing.T) {
		name := ExportFileName(ProjectInfo{Name: "한강 신축현장"}, TemplateCompact, at)
		assert.Equal(t, "한강 신축현장_견적조건서_compact_2026-03-02.html", name)
	})

	t.Run("empty project name falls back", func(t *testing.T) {
		name := ExportFileName(ProjectInfo{}, TemplateStandard, at)
		assert.Equal(t, "견적조건서_견적조건서_2026-03-02.html", name)
	})
}

func TestProjectInfoClampRates(t *testing.T) {
	info := ProjectInfo{ExemptionRate: 150, OrderVolumeRate: -10}
	info.ClampRates()

	assert.Equal(t, 100.0, info.ExemptionRate)
	assert.Equal(t, 0.0, info.OrderVolumeRate)
}
