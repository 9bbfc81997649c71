package parser

import (
	"strings"
	"testing"

	"bidcond-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `공종명,공종코드,대분류,공종상세,중분류,태그,내용,중요표기,이미지
철근콘크리트,RC01,구조,철근 배근,안전일반,추락방지,작업 전 안전난간을 설치한다,중요,
철근콘크리트,RC01,구조,철근 배근,품질사항,배근검사,배근 간격은 도면을 따른다,일반,
미장,PL01,마감, 미장 바름 , 공사사항 ,바탕처리, 바탕면 청소 후 시공한다 ,,img/pl01.png
`

func TestParseCatalog(t *testing.T) {
	t.Run("parses rows and skips header", func(t *testing.T) {
		clauses, err := ParseCatalog(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		require.Len(t, clauses, 3)

		assert.Equal(t, "철근콘크리트", clauses[0].WorkType)
		assert.Equal(t, "RC01", clauses[0].WorkTypeCode)
		assert.Equal(t, "안전일반", clauses[0].SubCategory)
		assert.Equal(t, models.ImportanceImportant, clauses[0].Importance)
	})

	t.Run("trims whitespace from fields", func(t *testing.T) {
		clauses, err := ParseCatalog(strings.NewReader(sampleCSV))
		require.NoError(t, err)

		assert.Equal(t, "미장 바름", clauses[2].Detail)
		assert.Equal(t, "공사사항", clauses[2].SubCategory)
		assert.Equal(t, "바탕면 청소 후 시공한다", clauses[2].Text)
	})

	t.Run("normalizes unknown importance markers", func(t *testing.T) {
		clauses, err := ParseCatalog(strings.NewReader(sampleCSV))
		require.NoError(t, err)

		assert.Equal(t, models.ImportanceNormal, clauses[1].Importance)
		assert.Equal(t, models.ImportanceNormal, clauses[2].Importance)
	})

	t.Run("quoted fields keep embedded delimiters and newlines", func(t *testing.T) {
		csv := "공종명,공종코드,대분류,공종상세,중분류,태그,내용,중요표기,이미지\n" +
			"철근콘크리트,RC01,구조,철근 배근,안전일반,추락방지,\"난간, 발판을 설치하고\n작업 전 점검한다\",중요,\n"

		clauses, err := ParseCatalog(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, clauses, 1)

		assert.Equal(t, "난간, 발판을 설치하고\n작업 전 점검한다", clauses[0].Text)
		assert.Equal(t, models.ImportanceImportant, clauses[0].Importance)
	})

	t.Run("skips rows with wrong column count", func(t *testing.T) {
		csv := "공종명,공종코드,대분류,공종상세,중분류,태그,내용,중요표기,이미지\n" +
			"철근콘크리트,RC01,구조\n" +
			"미장,PL01,마감,미장 바름,공사사항,바탕처리,바탕면 청소 후 시공한다,일반,\n"

		clauses, err := ParseCatalog(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, clauses, 1)
		assert.Equal(t, "미장", clauses[0].WorkType)
	})

	t.Run("empty input yields empty catalog", func(t *testing.T) {
		clauses, err := ParseCatalog(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, clauses)
	})

	t.Run("header only yields empty catalog", func(t *testing.T) {
		clauses, err := ParseCatalog(strings.NewReader("공종명,공종코드,대분류,공종상세,중분류,태그,내용,중요표기,이미지\n"))
		require.NoError(t, err)
		assert.Empty(t, clauses)
	})
}
