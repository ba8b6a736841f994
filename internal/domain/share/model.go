package share

import (
	"context"
	"encoding/json"
	"time"
)

// Result is a persisted analysis a user chose to share.
type Result struct {
	ID             string          `json:"id"`
	OriginalImage  string          `json:"originalImage"`
	AnalysisResult json.RawMessage `json:"analysisResult"`
	CreatedAt      time.Time       `json:"createdAt"`
	Language       string          `json:"language"`
}

// SaveRequest is the client payload of POST /api/share.
type SaveRequest struct {
	ID             string          `json:"id"`
	OriginalImage  string          `json:"originalImage"`
	AnalysisResult json.RawMessage `json:"analysisResult"`
	Language       string          `json:"language"`
}

// Repository persists share results keyed by id.
type Repository interface {
	Save(ctx context.Context, result Result) error
	Find(ctx context.Context, id string) (Result, bool, error)
}
