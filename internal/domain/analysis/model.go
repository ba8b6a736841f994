package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/yanqian/stylecast/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

// Kind selects which body region is analysed.
type Kind string

const (
	KindFace     Kind = "face"
	KindFullBody Kind = "fullbody"
)

// ParseKind maps a form value onto a Kind, defaulting to face.
func ParseKind(raw string) Kind {
	if Kind(strings.ToLower(strings.TrimSpace(raw))) == KindFullBody {
		return KindFullBody
	}
	return KindFace
}

// WeatherContext is the optional weather snapshot the client attaches so
// recommendations can account for today's conditions.
type WeatherContext struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Description string  `json:"description"`
	Main        string  `json:"main"`
	Location    string  `json:"location"`
}

// ParseWeatherContext decodes the weather form field. Blank input yields nil.
func ParseWeatherContext(raw string) (*WeatherContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var wc WeatherContext
	if err := json.Unmarshal([]byte(raw), &wc); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "weather must be a JSON object", err)
	}
	return &wc, nil
}

// Request is a single analysis call.
type Request struct {
	Image       []byte
	Filename    string
	MimeType    string
	Kind        Kind
	Language    string
	Descriptive bool
	UseDummy    bool
	Weather     *WeatherContext
}

// Result is the model's JSON object, passed through untouched.
type Result = json.RawMessage

// StoredObject describes an uploaded transient blob.
type StoredObject struct {
	Key         string
	Size        int64
	ContentType string
}

// ObjectStorage holds images just long enough for the model to fetch them.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredObject, error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ChatClient is the subset of the LLM client the analysis relay needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Config wires runtime knobs for analysis.
type Config struct {
	Model         string
	Temperature   float32
	MaxTokens     int
	UseDummy      bool
	MaxImageBytes int64
	SignedURLTTL  time.Duration
	KeyPrefix     string
}
