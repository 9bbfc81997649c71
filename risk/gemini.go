package risk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"bidcond-backend/models"
)

const geminiModel = "gemini-2.0-flash"

// GeminiAnalyzer is an Analyzer backed by the Gemini API. The free-text
// answer goes through the same keyword derivation as the MISO workflow, so
// the two are interchangeable behind the interface.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// NewGeminiAnalyzer creates an analyzer using an initialized Gemini client
func NewGeminiAnalyzer(client *genai.Client) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		client: client,
		model:  geminiModel,
	}
}

// Analyze asks the model whether the clause is an unfair special condition
func (a *GeminiAnalyzer) Analyze(ctx context.Context, text string) (*models.RiskVerdict, error) {
	if a.client == nil {
		return nil, errors.New("gemini client not set")
	}

	prompt := fmt.Sprintf(`당신은 건설 하도급 계약 조건을 검토하는 전문가입니다.

아래 특수조건이 하도급법상 부당특약에 해당하는지 검토하세요.

조건:
%s

답변 규칙:
- 부당특약에 해당하면 답변 첫 줄에 "부당특약"을 반드시 포함하고 근거를 설명하세요.
- 해당하지 않으면 "일반사항"으로 시작하고 주의할 점이 있으면 권고하세요.
- 마크다운 없이 평문으로 답변하세요.`, text)

	model := a.client.GenerativeModel(a.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("risk analysis request failed: %w", err)
	}

	result := collectText(resp)
	if result == "" {
		return nil, errors.New("risk analysis returned no content")
	}

	return VerdictFromResult(result), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
