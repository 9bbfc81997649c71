package document

import (
	"testing"

	"bidcond-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selected(workType, code, sub, major, text string) models.SelectedClause {
	return models.SelectedClause{Clause: models.Clause{
		WorkType:      workType,
		WorkTypeCode:  code,
		SubCategory:   sub,
		MajorCategory: major,
		Text:          text,
	}}
}

func TestGroupSections(t *testing.T) {
	t.Run("groups by sub category numbered after the front matter", func(t *testing.T) {
		conditions := []models.SelectedClause{
			selected("철근콘크리트", "RC01", "안전일반", "구조", "안전난간을 설치한다"),
			selected("철근콘크리트", "RC01", "품질사항", "구조", "배근 간격은 도면을 따른다"),
			selected("철근콘크리트", "RC01", "안전일반", "구조", "낙하물 방지망을 설치한다"),
		}

		sections := GroupSections(conditions)
		require.Len(t, sections, 2)

		assert.Equal(t, "안전일반", sections[0].Title)
		assert.Equal(t, 6, sections[0].SequenceNumber)
		assert.Len(t, sections[0].Conditions, 2)

		assert.Equal(t, "품질사항", sections[1].Title)
		assert.Equal(t, 7, sections[1].SequenceNumber)
	})

	t.Run("groups appear in first-selection order", func(t *testing.T) {
		conditions := []models.SelectedClause{
			selected("미장", "PL01", "공사사항", "마감", "바탕면 청소 후 시공한다"),
			selected("철근콘크리트", "RC01", "안전일반", "구조", "안전난간을 설치한다"),
			selected("미장", "PL01", "공사사항", "마감", "양생 기간을 준수한다"),
		}

		sections := GroupSections(conditions)
		require.Len(t, sections, 2)
		assert.Equal(t, "공사사항", sections[0].Title)
		assert.Equal(t, "안전일반", sections[1].Title)
	})

	t.Run("falls back to major category then 기타", func(t *testing.T) {
		conditions := []models.SelectedClause{
			selected("철근콘크리트", "RC01", "", "구조", "중분류 없는 조건"),
			selected("철근콘크리트", "RC01", "", "", "분류 없는 조건"),
		}

		sections := GroupSections(conditions)
		require.Len(t, sections, 2)
		assert.Equal(t, "구조", sections[0].Title)
		assert.Equal(t, "기타", sections[1].Title)
	})

	t.Run("custom clauses are excluded", func(t *testing.T) {
		custom := selected("사용자 정의", models.WorkTypeCodeCustom, "", "", "현장 특수조건")
		custom.Custom = true

		conditions := []models.SelectedClause{
			custom,
			selected("철근콘크리트", "RC01", "안전일반", "구조", "안전난간을 설치한다"),
		}

		sections := GroupSections(conditions)
		require.Len(t, sections, 1)
		assert.Equal(t, "안전일반", sections[0].Title)

		customOnly := CustomClauses(conditions)
		require.Len(t, customOnly, 1)
		assert.Equal(t, "현장 특수조건", customOnly[0].Text)
	})

	t.Run("empty selection yields no sections", func(t *testing.T) {
		assert.Empty(t, GroupSections(nil))
	})
}

func TestSuppliedMaterials(t *testing.T) {
	t.Run("collects distinct supplied work types", func(t *testing.T) {
		conditions := []models.SelectedClause{
			selected("시멘트 지급자재", "SM01", "", "", "첫 번째"),
			selected("시멘트 지급자재", "SM01", "", "", "두 번째"),
			selected("철근콘크리트", "RC01", "", "", "세 번째"),
		}
		assert.Equal(t, "시멘트 지급자재", SuppliedMaterials(conditions))
	})

	t.Run("none selected reads 미선택", func(t *testing.T) {
		assert.Equal(t, "미선택", SuppliedMaterials(nil))
	})
}
