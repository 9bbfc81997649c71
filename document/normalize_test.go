package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMarkup(t *testing.T) {
	t.Run("highlight classes become inline styles", func(t *testing.T) {
		out, err := NormalizeMarkup(`<div class="bg-yellow-100 border-yellow-400">강제 추가 조건</div>`)
		require.NoError(t, err)

		assert.Contains(t, out, "background-color: #fef3c7")
		assert.Contains(t, out, "border-color: #f59e0b")
		assert.Contains(t, out, "border-width: 2px")
		assert.Contains(t, out, "border-style: solid")
	})

	t.Run("importance marker color is inlined", func(t *testing.T) {
		out, err := NormalizeMarkup(`<span class="text-red-600">[중요]</span>`)
		require.NoError(t, err)
		assert.Contains(t, out, "color: #dc2626")
	})

	t.Run("every element gets the print font", func(t *testing.T) {
		out, err := NormalizeMarkup(`<div><p>본문</p></div>`)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "font-family: Arial, sans-serif"))
	})

	t.Run("images are constrained to the page", func(t *testing.T) {
		out, err := NormalizeMarkup(`<img src="/api/images/abc" alt="첨부 이미지">`)
		require.NoError(t, err)

		assert.Contains(t, out, "max-width: 100%")
		assert.Contains(t, out, "height: auto")
		assert.Contains(t, out, "page-break-inside: avoid")
	})

	t.Run("form controls are flattened", func(t *testing.T) {
		out, err := NormalizeMarkup(`<input type="number" value="100">`)
		require.NoError(t, err)

		assert.Contains(t, out, "border: none")
		assert.Contains(t, out, "background-color: transparent")
	})

	t.Run("unknown classes pass through untouched", func(t *testing.T) {
		out, err := NormalizeMarkup(`<div class="pl-6 text-sm">조건</div>`)
		require.NoError(t, err)

		assert.Contains(t, out, `class="pl-6 text-sm"`)
		assert.NotContains(t, out, "padding-left")
	})

	t.Run("existing styles are preserved and merged", func(t *testing.T) {
		out, err := NormalizeMarkup(`<div class="bg-yellow-100" style="margin-top: 4px">조건</div>`)
		require.NoError(t, err)

		assert.Contains(t, out, "margin-top: 4px")
		assert.Contains(t, out, "background-color: #fef3c7")
	})

	t.Run("normalizing twice is stable", func(t *testing.T) {
		markup := `<div class="bg-yellow-100 border-yellow-400"><span class="text-red-600">[중요]</span><img src="/x.png"></div>`

		once, err := NormalizeMarkup(markup)
		require.NoError(t, err)
		twice, err := NormalizeMarkup(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	})
}
