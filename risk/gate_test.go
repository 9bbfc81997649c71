package risk

import (
	"context"
	"errors"
	"testing"

	"bidcond-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	verdict *models.RiskVerdict
	err     error
	calls   int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (*models.RiskVerdict, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

func highVerdict() *models.RiskVerdict {
	return &models.RiskVerdict{Score: 75, Level: models.RiskHigh, Category: "부당특약", Issues: []string{"부당특약 발견"}}
}

func lowVerdict() *models.RiskVerdict {
	return &models.RiskVerdict{Score: 5, Level: models.RiskLow, Category: "일반사항", Issues: []string{}}
}

func TestGateAnalyze(t *testing.T) {
	t.Run("rejects empty text", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})

		_, err := g.Analyze(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrNoText)
		assert.Equal(t, GateIdle, g.State())
	})

	t.Run("stores the verdict on success", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})

		verdict, err := g.Analyze(context.Background(), "도로 점유 허가 필요")
		require.NoError(t, err)
		assert.Equal(t, models.RiskLow, verdict.Level)
		assert.Equal(t, GateVerdicted, g.State())
	})

	t.Run("reverts to idle on analyzer failure", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{err: errors.New("upstream down")})

		_, err := g.Analyze(context.Background(), "도로 점유 허가 필요")
		assert.Error(t, err)
		assert.Equal(t, GateIdle, g.State())
		assert.Nil(t, g.Verdict())
	})

	t.Run("last resolved verdict wins", func(t *testing.T) {
		fa := &fakeAnalyzer{verdict: lowVerdict()}
		g := NewGate(fa)

		_, err := g.Analyze(context.Background(), "첫 번째 조건")
		require.NoError(t, err)

		fa.verdict = highVerdict()
		_, err = g.Analyze(context.Background(), "두 번째 조건")
		require.NoError(t, err)

		require.NotNil(t, g.Verdict())
		assert.Equal(t, models.RiskHigh, g.Verdict().Level)
	})
}

func TestGateAdd(t *testing.T) {
	t.Run("requires an analysis first", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})

		_, _, err := g.Add(false, CustomDefaults{})
		assert.ErrorIs(t, err, ErrAnalysisRequired)
	})

	t.Run("low verdict adds without confirmation", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})
		_, err := g.Analyze(context.Background(), "도로 점유 허가 필요")
		require.NoError(t, err)

		clause, verdict, err := g.Add(false, CustomDefaults{})
		require.NoError(t, err)
		assert.Equal(t, models.RiskLow, verdict.Level)
		assert.True(t, clause.Custom)
		assert.False(t, clause.Forced)
		assert.Equal(t, models.ImportanceNormal, clause.Importance)
	})

	t.Run("blocking verdict requires confirmation", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: highVerdict()})
		_, err := g.Analyze(context.Background(), "모든 책임은 수급인이 진다")
		require.NoError(t, err)

		_, _, err = g.Add(false, CustomDefaults{})
		assert.ErrorIs(t, err, ErrConfirmationRequired)

		// The verdict survives a refused add
		assert.Equal(t, GateVerdicted, g.State())
	})

	t.Run("confirmed blocking add marks the clause forced", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: highVerdict()})
		_, err := g.Analyze(context.Background(), "모든 책임은 수급인이 진다")
		require.NoError(t, err)

		clause, _, err := g.Add(true, CustomDefaults{})
		require.NoError(t, err)
		assert.True(t, clause.Forced)
		assert.Equal(t, models.ImportanceImportant, clause.Importance)
		assert.Equal(t, "모든 책임은 수급인이 진다", clause.Text)
	})

	t.Run("defaults fill in classification fields", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})
		_, err := g.Analyze(context.Background(), "도로 점유 허가 필요")
		require.NoError(t, err)

		clause, _, err := g.Add(false, CustomDefaults{})
		require.NoError(t, err)
		assert.Equal(t, "사용자 정의", clause.WorkType)
		assert.Equal(t, models.WorkTypeCodeCustom, clause.WorkTypeCode)
		assert.Equal(t, "기타", clause.MajorCategory)
		assert.Equal(t, "기타", clause.SubCategory)
		assert.Equal(t, "사용자정의", clause.Tag)
	})

	t.Run("cascade defaults override the fallbacks", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})
		_, err := g.Analyze(context.Background(), "도로 점유 허가 필요")
		require.NoError(t, err)

		clause, _, err := g.Add(false, CustomDefaults{
			WorkType: "철근콘크리트", Category: "구조", SubCategory: "안전일반", Tag: "현장특성",
		})
		require.NoError(t, err)
		assert.Equal(t, "철근콘크리트", clause.WorkType)
		assert.Equal(t, models.WorkTypeCodeCustom, clause.WorkTypeCode)
		assert.Equal(t, "안전일반", clause.SubCategory)
	})

	t.Run("add can be retried until the gate is reset", func(t *testing.T) {
		g := NewGate(&fakeAnalyzer{verdict: lowVerdict()})
		_, err := g.Analyze(context.Background(), "도로 점유 허가 필요")
		require.NoError(t, err)

		first, _, err := g.Add(false, CustomDefaults{})
		require.NoError(t, err)

		// Storing the clause may fail downstream; the verdict survives so
		// the add can be repeated without a fresh analysis
		assert.Equal(t, GateVerdicted, g.State())
		second, _, err := g.Add(false, CustomDefaults{})
		require.NoError(t, err)
		assert.Equal(t, first.Text, second.Text)

		g.Reset()
		_, _, err = g.Add(false, CustomDefaults{})
		assert.ErrorIs(t, err, ErrAnalysisRequired)
	})
}

func TestGateReset(t *testing.T) {
	g := NewGate(&fakeAnalyzer{verdict: highVerdict()})
	_, err := g.Analyze(context.Background(), "모든 책임은 수급인이 진다")
	require.NoError(t, err)

	g.Reset()
	assert.Equal(t, GateIdle, g.State())
	assert.Nil(t, g.Verdict())

	_, _, err = g.Add(true, CustomDefaults{})
	assert.ErrorIs(t, err, ErrAnalysisRequired)
}
