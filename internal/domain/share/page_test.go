package share

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

func TestBuildPageLocalizesEnums(t *testing.T) {
	page := BuildPage(Result{
		ID:       "r1",
		Language: "ko",
		AnalysisResult: json.RawMessage(`{
			"styleAnalysis": {"colorEvaluation": "웜톤", "silhouette": "H라인"},
			"bodyAnalysis": {"height": "Tall", "bodyType": "inverted_triangle"},
			"recommendations": [{"item": "셔츠", "reason": "깔끔함", "imageUrl": "https://x/y.png"}, {"item": "코트", "reason": "보온"}]
		}`),
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	require.True(t, page.Found)
	require.Equal(t, "키 큰", page.Height)
	require.Equal(t, "역삼각형", page.BodyType)
	require.Equal(t, "웜톤", page.ColorEvaluation)
	require.Equal(t, "2025-06-01", page.CreatedAt)
	require.Len(t, page.Recommendations, 2)
	require.Equal(t, "https://x/y.png", page.Recommendations[0].ImageURL)
	require.Empty(t, page.Recommendations[1].ImageURL)
	require.Equal(t, "AI 스타일 분석 결과", page.Labels.Title)
}

func TestDisplayNamesFallBack(t *testing.T) {
	require.Equal(t, "Pear", BodyTypeName("pear", "en"))
	require.Equal(t, "athletic", BodyTypeName("athletic", "en"))
	require.Equal(t, "보통", HeightName("medium", "de"))
}

func TestInlineResult(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := `{"language":"ja","bodyAnalysis":{"height":"short"}}`

	result, err := InlineResult(raw, now)
	require.NoError(t, err)
	require.Equal(t, InlineID, result.ID)
	require.Equal(t, "ja", result.Language)
	require.Equal(t, "低め", BuildPage(result).Height)

	encoded, err := InlineResult(url.QueryEscape(raw), now)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(encoded.AnalysisResult))

	_, err = InlineResult("not json", now)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestNotFoundPage(t *testing.T) {
	page := NotFoundPage("zh-CN")
	require.False(t, page.Found)
	require.Equal(t, "未找到结果", page.Labels.NotFoundTitle)
}
