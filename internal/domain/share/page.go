package share

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yanqian/stylecast/internal/domain/language"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

// InlineID identifies results rendered from the ?data= query parameter.
const InlineID = "shared"

// Labels are the static strings of the share page.
type Labels struct {
	Title           string
	Subtitle        string
	OriginalPhoto   string
	NoPhoto         string
	StyleAnalysis   string
	ColorEvaluation string
	Silhouette      string
	BodyAnalysis    string
	Height          string
	BodyType        string
	Recommendations string
	NotFoundTitle   string
	NotFoundBody    string
}

// Recommendation is one suggested item on the page.
type Recommendation struct {
	Item     string
	Reason   string
	ImageURL string
}

// Page is the view model of the share HTML template.
type Page struct {
	Found           bool
	Lang            string
	Labels          Labels
	ID              string
	OriginalImage   string
	CreatedAt       string
	ColorEvaluation string
	Silhouette      string
	Height          string
	BodyType        string
	Recommendations []Recommendation
}

var pageLabels = map[string]Labels{
	language.Korean: {
		Title:           "AI 스타일 분석 결과",
		Subtitle:        "나만의 맞춤형 스타일 분석 결과",
		OriginalPhoto:   "원본 사진",
		NoPhoto:         "원본 사진은 앱에서 확인하세요",
		StyleAnalysis:   "스타일 분석",
		ColorEvaluation: "컬러 평가",
		Silhouette:      "실루엣",
		BodyAnalysis:    "체형 분석",
		Height:          "키",
		BodyType:        "체형",
		Recommendations: "추천 아이템",
		NotFoundTitle:   "결과를 찾을 수 없습니다",
		NotFoundBody:    "공유 데이터를 찾을 수 없습니다.",
	},
	language.English: {
		Title:           "AI Style Analysis",
		Subtitle:        "Your personalized style analysis",
		OriginalPhoto:   "Original photo",
		NoPhoto:         "View the original photo in the app",
		StyleAnalysis:   "Style analysis",
		ColorEvaluation: "Color evaluation",
		Silhouette:      "Silhouette",
		BodyAnalysis:    "Body analysis",
		Height:          "Height",
		BodyType:        "Body type",
		Recommendations: "Recommendations",
		NotFoundTitle:   "Result not found",
		NotFoundBody:    "The shared result could not be found.",
	},
	language.Japanese: {
		Title:           "AIスタイル分析結果",
		Subtitle:        "あなただけのスタイル分析結果",
		OriginalPhoto:   "元の写真",
		NoPhoto:         "元の写真はアプリで確認してください",
		StyleAnalysis:   "スタイル分析",
		ColorEvaluation: "カラー評価",
		Silhouette:      "シルエット",
		BodyAnalysis:    "体型分析",
		Height:          "身長",
		BodyType:        "体型",
		Recommendations: "おすすめアイテム",
		NotFoundTitle:   "結果が見つかりません",
		NotFoundBody:    "共有データが見つかりませんでした。",
	},
	language.Chinese: {
		Title:           "AI风格分析结果",
		Subtitle:        "专属于你的风格分析结果",
		OriginalPhoto:   "原始照片",
		NoPhoto:         "请在应用中查看原始照片",
		StyleAnalysis:   "风格分析",
		ColorEvaluation: "色彩评价",
		Silhouette:      "廓形",
		BodyAnalysis:    "体型分析",
		Height:          "身高",
		BodyType:        "体型",
		Recommendations: "推荐单品",
		NotFoundTitle:   "未找到结果",
		NotFoundBody:    "找不到分享的数据。",
	},
}

var heightNames = map[string]map[string]string{
	language.Korean:   {"tall": "키 큰", "medium": "보통", "short": "키 작은"},
	language.English:  {"tall": "Tall", "medium": "Medium", "short": "Petite"},
	language.Japanese: {"tall": "高め", "medium": "普通", "short": "低め"},
	language.Chinese:  {"tall": "高挑", "medium": "中等", "short": "娇小"},
}

var bodyTypeNames = map[string]map[string]string{
	language.Korean:   {"hourglass": "모래시계형", "rectangle": "직사각형", "pear": "배형", "apple": "사과형", "inverted_triangle": "역삼각형"},
	language.English:  {"hourglass": "Hourglass", "rectangle": "Rectangle", "pear": "Pear", "apple": "Apple", "inverted_triangle": "Inverted triangle"},
	language.Japanese: {"hourglass": "砂時計型", "rectangle": "長方形型", "pear": "洋ナシ型", "apple": "リンゴ型", "inverted_triangle": "逆三角形型"},
	language.Chinese:  {"hourglass": "沙漏型", "rectangle": "矩形", "pear": "梨形", "apple": "苹果型", "inverted_triangle": "倒三角形"},
}

// LabelsFor returns the page labels for lang, defaulting to Korean.
func LabelsFor(lang string) Labels {
	return pageLabels[language.Normalize(lang)]
}

// HeightName maps a height enum to its display name; unknown values pass through.
func HeightName(value, lang string) string {
	return displayName(heightNames, value, lang)
}

// BodyTypeName maps a body type enum to its display name; unknown values pass through.
func BodyTypeName(value, lang string) string {
	return displayName(bodyTypeNames, value, lang)
}

func displayName(table map[string]map[string]string, value, lang string) string {
	if v, ok := table[language.Normalize(lang)][strings.ToLower(strings.TrimSpace(value))]; ok {
		return v
	}
	return value
}

// BuildPage flattens a stored result into the template view model.
func BuildPage(r Result) Page {
	lang := language.Normalize(r.Language)
	doc := gjson.ParseBytes(r.AnalysisResult)

	page := Page{
		Found:           true,
		Lang:            lang,
		Labels:          LabelsFor(lang),
		ID:              r.ID,
		OriginalImage:   r.OriginalImage,
		CreatedAt:       r.CreatedAt.Format("2006-01-02"),
		ColorEvaluation: doc.Get("styleAnalysis.colorEvaluation").String(),
		Silhouette:      doc.Get("styleAnalysis.silhouette").String(),
		Height:          HeightName(doc.Get("bodyAnalysis.height").String(), lang),
		BodyType:        BodyTypeName(doc.Get("bodyAnalysis.bodyType").String(), lang),
	}
	doc.Get("recommendations").ForEach(func(_, rec gjson.Result) bool {
		page.Recommendations = append(page.Recommendations, Recommendation{
			Item:     rec.Get("item").String(),
			Reason:   rec.Get("reason").String(),
			ImageURL: rec.Get("imageUrl").String(),
		})
		return true
	})
	return page
}

// NotFoundPage is rendered for unknown ids or unusable inline data.
func NotFoundPage(lang string) Page {
	lang = language.Normalize(lang)
	return Page{Lang: lang, Labels: LabelsFor(lang)}
}

// InlineResult builds a transient result from the ?data= query value. The
// value may still be percent-encoded when the client double-encoded it.
func InlineResult(data string, now time.Time) (Result, error) {
	data = strings.TrimSpace(data)
	if !gjson.Valid(data) {
		if decoded, err := url.QueryUnescape(data); err == nil {
			data = decoded
		}
	}
	if data == "" || !gjson.Valid(data) || !gjson.Parse(data).IsObject() {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "data must be a JSON object", nil)
	}
	return Result{
		ID:             InlineID,
		AnalysisResult: json.RawMessage(data),
		CreatedAt:      now.UTC(),
		Language:       language.Normalize(gjson.Get(data, "language").String()),
	}, nil
}
