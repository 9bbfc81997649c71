package document

import (
	"testing"
	"time"

	"bidcond-backend/models"

	"github.com/stretchr/testify/assert"
)

func exportData(opts models.ExportOptions) models.ExportData {
	return models.ExportData{
		ProjectInfo: models.ProjectInfo{Name: "한강 신축현장"},
		WorkType:    "철근콘크리트",
		Options:     opts,
		Timestamp:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildPrintDocument(t *testing.T) {
	t.Run("page geometry follows the options", func(t *testing.T) {
		opts := models.DefaultExportOptions()
		opts.Format = models.PageLetter
		opts.Orientation = models.OrientationLandscape
		opts.MarginInches = 1.5

		doc := BuildPrintDocument("<div>본문</div>", exportData(opts))

		assert.Contains(t, doc, "size: letter landscape;")
		assert.Contains(t, doc, "margin: 1.5in;")
		assert.Contains(t, doc, `class="template-standard"`)
		assert.Contains(t, doc, "<div>본문</div>")
	})

	t.Run("document prints and closes itself", func(t *testing.T) {
		doc := BuildPrintDocument("<div>본문</div>", exportData(models.DefaultExportOptions()))

		assert.Contains(t, doc, "window.print()")
		assert.Contains(t, doc, "window.close()")
		assert.Contains(t, doc, "}, 500);")
		assert.Contains(t, doc, "}, 3000);")
	})

	t.Run("header and footer can be hidden", func(t *testing.T) {
		opts := models.DefaultExportOptions()
		opts.IncludeHeader = false
		opts.IncludeFooter = false

		doc := BuildPrintDocument("<div>본문</div>", exportData(opts))
		assert.Contains(t, doc, ".doc-header { display: none; }")
		assert.Contains(t, doc, ".doc-footer { display: none; }")
	})

	t.Run("watermark is rendered only when enabled", func(t *testing.T) {
		plain := BuildPrintDocument("<div>본문</div>", exportData(models.DefaultExportOptions()))
		assert.NotContains(t, plain, "watermark")

		opts := models.DefaultExportOptions()
		opts.IncludeWatermark = true
		marked := BuildPrintDocument("<div>본문</div>", exportData(opts))
		assert.Contains(t, marked, `<div class="watermark">`)
	})

	t.Run("compact template hides images and tightens spacing", func(t *testing.T) {
		opts := models.DefaultExportOptions()
		opts.Template = models.TemplateCompact

		doc := BuildPrintDocument("<div>본문</div>", exportData(opts))
		assert.Contains(t, doc, `class="template-compact"`)
		assert.Contains(t, doc, "body.template-compact img { display: none; }")
		assert.Contains(t, doc, "body.template-compact .space-y-2 > * + * { margin-top: 0.25rem; }")
	})

	t.Run("detailed template reveals clause detail text", func(t *testing.T) {
		opts := models.DefaultExportOptions()
		opts.Template = models.TemplateDetailed

		doc := BuildPrintDocument(`<div class="clause-detail">철근 배근</div>`, exportData(opts))
		assert.Contains(t, doc, `class="template-detailed"`)
		assert.Contains(t, doc, ".clause-detail { display: none; }")
		assert.Contains(t, doc, "body.template-detailed .clause-detail { display: block; }")
	})

	t.Run("title carries the export file name", func(t *testing.T) {
		opts := models.DefaultExportOptions()
		opts.Template = models.TemplateCompact

		doc := BuildPrintDocument("<div>본문</div>", exportData(opts))
		assert.Contains(t, doc, "<title>한강 신축현장_견적조건서_compact_2026-03-02.html</title>")
		assert.Contains(t, doc, `class="template-compact"`)
	})
}
