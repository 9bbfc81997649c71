package selection

import (
	"testing"

	"bidcond-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clause(code, text string) models.Clause {
	return models.Clause{WorkType: "철근콘크리트", WorkTypeCode: code, Text: text}
}

func TestSetToggle(t *testing.T) {
	t.Run("toggle adds then removes", func(t *testing.T) {
		s := New()
		c := clause("RC01", "안전난간을 설치한다")

		assert.True(t, s.Toggle(c))
		assert.True(t, s.Contains(c))
		assert.Equal(t, 1, s.Len())

		assert.False(t, s.Toggle(c))
		assert.False(t, s.Contains(c))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("identity is the code and text pair", func(t *testing.T) {
		s := New()
		s.Toggle(clause("RC01", "같은 내용"))
		s.Toggle(clause("PL01", "같은 내용"))

		assert.Equal(t, 2, s.Len())
	})

	t.Run("add rejects duplicates", func(t *testing.T) {
		s := New()
		c := clause("RC01", "안전난간을 설치한다")

		assert.True(t, s.Add(c))
		assert.False(t, s.Add(c))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("snapshot preserves insertion order", func(t *testing.T) {
		s := New()
		s.Add(clause("RC01", "첫 번째"))
		s.Add(clause("RC01", "두 번째"))
		s.Add(clause("PL01", "세 번째"))

		snapshot := s.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, "첫 번째", snapshot[0].Text)
		assert.Equal(t, "두 번째", snapshot[1].Text)
		assert.Equal(t, "세 번째", snapshot[2].Text)
	})
}

func TestSetToggleAll(t *testing.T) {
	view := []models.Clause{
		clause("RC01", "첫 번째"),
		clause("RC01", "두 번째"),
		clause("RC01", "세 번째"),
	}

	t.Run("selects missing view members", func(t *testing.T) {
		s := New()
		s.Add(view[1])

		selected, orphaned := s.ToggleAll(view)
		assert.True(t, selected)
		assert.Empty(t, orphaned)
		assert.Equal(t, 3, s.Len())
	})

	t.Run("deselects exactly the view when all selected", func(t *testing.T) {
		s := New()
		outside := clause("PL01", "범위 밖 조건")
		s.Add(outside)
		for _, c := range view {
			s.Add(c)
		}

		selected, _ := s.ToggleAll(view)
		assert.False(t, selected)
		assert.Equal(t, 1, s.Len())
		assert.True(t, s.Contains(outside))
	})

	t.Run("round trip restores the empty state", func(t *testing.T) {
		s := New()
		s.ToggleAll(view)
		s.ToggleAll(view)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("empty view is a no-op", func(t *testing.T) {
		s := New()
		selected, orphaned := s.ToggleAll(nil)
		assert.False(t, selected)
		assert.Nil(t, orphaned)
	})
}

func TestSetAttachments(t *testing.T) {
	c := clause("RC01", "안전난간을 설치한다")

	attach := func(s *Set) models.ImageAttachment {
		att := models.ImageAttachment{
			ID:        uuid.New(),
			ClauseKey: c.Key().String(),
			Filename:  "site.png",
		}
		s.Attach(att)
		return att
	}

	t.Run("snapshot carries attachments", func(t *testing.T) {
		s := New()
		s.Add(c)
		att := attach(s)

		snapshot := s.Snapshot()
		require.Len(t, snapshot, 1)
		require.Len(t, snapshot[0].Attachments, 1)
		assert.Equal(t, att.ID, snapshot[0].Attachments[0].ID)
	})

	t.Run("removing a clause orphans its attachments", func(t *testing.T) {
		s := New()
		s.Add(c)
		att := attach(s)

		orphaned := s.Remove(c)
		require.Len(t, orphaned, 1)
		assert.Equal(t, att.ID, orphaned[0].ID)
		assert.Empty(t, s.Attachments(c.Key().String()))
	})

	t.Run("clear orphans everything", func(t *testing.T) {
		s := New()
		s.Add(c)
		attach(s)
		attach(s)

		orphaned := s.Clear()
		assert.Len(t, orphaned, 2)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("detach removes a single attachment", func(t *testing.T) {
		s := New()
		s.Add(c)
		att := attach(s)
		other := attach(s)

		got, ok := s.Detach(c.Key().String(), att.ID)
		require.True(t, ok)
		assert.Equal(t, att.ID, got.ID)

		remaining := s.Attachments(c.Key().String())
		require.Len(t, remaining, 1)
		assert.Equal(t, other.ID, remaining[0].ID)

		_, ok = s.Detach(c.Key().String(), att.ID)
		assert.False(t, ok)
	})
}

func TestSetNotify(t *testing.T) {
	t.Run("every mutation fires the listener synchronously", func(t *testing.T) {
		s := New()
		calls := 0
		var last []models.SelectedClause
		s.SetOnChange(func(current []models.SelectedClause) {
			calls++
			last = current
		})

		c := clause("RC01", "안전난간을 설치한다")
		s.Add(c)
		assert.Equal(t, 1, calls)
		assert.Len(t, last, 1)

		s.Remove(c)
		assert.Equal(t, 2, calls)
		assert.Empty(t, last)
	})
}
