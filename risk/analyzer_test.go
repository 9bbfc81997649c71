package risk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bidcond-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictFromResult(t *testing.T) {
	t.Run("unfair marker scores high", func(t *testing.T) {
		verdict := VerdictFromResult("이 조건은 부당특약에 해당합니다.")

		assert.Equal(t, 75, verdict.Score)
		assert.Equal(t, models.RiskHigh, verdict.Level)
		assert.Equal(t, "부당특약", verdict.Category)
		assert.Contains(t, verdict.Issues, "부당특약 발견")
	})

	t.Run("short marker also scores high", func(t *testing.T) {
		verdict := VerdictFromResult("부당한 책임 전가로 판단됩니다.")
		assert.Equal(t, models.RiskHigh, verdict.Level)
	})

	t.Run("plain result scores low", func(t *testing.T) {
		verdict := VerdictFromResult("일반사항: 통상적인 시공 조건입니다.")

		assert.Equal(t, 5, verdict.Score)
		assert.Equal(t, models.RiskLow, verdict.Level)
		assert.Equal(t, "일반사항", verdict.Category)
		assert.Empty(t, verdict.Issues)
	})

	t.Run("raw result is echoed as suggestion", func(t *testing.T) {
		verdict := VerdictFromResult("검토 의견")
		require.Len(t, verdict.Suggestions, 1)
		assert.Equal(t, "검토 의견", verdict.Suggestions[0])
	})
}

func TestMisoAnalyzer(t *testing.T) {
	t.Run("posts text and derives verdict", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]string{"result": "부당특약에 해당합니다"})
		}))
		defer srv.Close()

		a := NewMisoAnalyzer(srv.URL, "test-key")
		verdict, err := a.Analyze(context.Background(), "모든 책임은 수급인이 진다")
		require.NoError(t, err)

		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "모든 책임은 수급인이 진다", gotBody["input_text"])
		assert.Equal(t, models.RiskHigh, verdict.Level)
	})

	t.Run("surfaces the API error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": "workflow unavailable"})
		}))
		defer srv.Close()

		a := NewMisoAnalyzer(srv.URL, "")
		_, err := a.Analyze(context.Background(), "조건")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workflow unavailable")
	})

	t.Run("non-JSON error body surfaces the status code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html><body>Bad Gateway</body></html>"))
		}))
		defer srv.Close()

		a := NewMisoAnalyzer(srv.URL, "")
		_, err := a.Analyze(context.Background(), "조건")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.NotContains(t, err.Error(), "decode")
	})

	t.Run("fails on unreachable endpoint without retry", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		a := NewMisoAnalyzer(srv.URL, "")
		_, err := a.Analyze(context.Background(), "조건")
		assert.Error(t, err)
	})
}
