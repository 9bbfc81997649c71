package document

import (
	"fmt"
	"html"
	"strings"

	"bidcond-backend/models"
)

// BuildPrintDocument wraps normalized preview markup into a standalone HTML
// document that prints itself when opened. The page geometry, template class,
// and optional header, footer, and watermark come from the export options,
// which the caller has already normalized.
func BuildPrintDocument(markup string, data models.ExportData) string {
	opts := data.Options
	title := models.ExportFileName(data.ProjectInfo, opts.Template, data.Timestamp)

	var extra strings.Builder
	if !opts.IncludeHeader {
		extra.WriteString(".doc-header { display: none; }\n")
	}
	if !opts.IncludeFooter {
		extra.WriteString(".doc-footer { display: none; }\n")
	}

	watermark := ""
	if opts.IncludeWatermark {
		extra.WriteString(`.watermark {
  position: fixed;
  top: 40%;
  left: 0;
  right: 0;
  text-align: center;
  font-size: 72px;
  color: rgba(0, 0, 0, 0.06);
  transform: rotate(-30deg);
  pointer-events: none;
  z-index: 0;
}
`)
		watermark = `<div class="watermark">견적조건서</div>`
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
@page {
  size: %s %s;
  margin: %gin;
}
body {
  font-family: Arial, sans-serif;
  font-size: 12px;
  line-height: 1.4;
  color: black;
  background: white;
  margin: 0;
  padding: 0;
}
%s%s</style>
</head>
<body class="template-%s">
%s<div class="print-content">
%s
</div>
<script>
window.onload = function() {
  setTimeout(function() {
    window.print();
    setTimeout(function() {
      window.close();
    }, 3000);
  }, 500);
};
</script>
</body>
</html>
`,
		html.EscapeString(title),
		opts.Format, opts.Orientation, opts.MarginInches,
		printStylesheet, extra.String(),
		opts.Template,
		watermark,
		markup,
	)
}
