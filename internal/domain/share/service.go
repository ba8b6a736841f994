package share

import (
	"context"
	"encoding/binary"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/yanqian/stylecast/internal/domain/language"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

const randomSuffixLen = 11

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Service stores and loads shared results.
type Service interface {
	Save(ctx context.Context, req SaveRequest) (Result, error)
	Load(ctx context.Context, id string) (Result, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	rand   func() string
}

// NewService wires the share domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "share.service"),
		now:    time.Now,
		rand:   randomSuffix,
	}
}

// ValidID reports whether id is safe to use as a storage key.
func ValidID(id string) bool {
	return validID.MatchString(id)
}

func (s *service) Save(ctx context.Context, req SaveRequest) (Result, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.newID()
	}
	if !ValidID(id) {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "id may only contain letters, digits, '-' and '_'", nil)
	}
	if len(req.AnalysisResult) == 0 || !gjson.ValidBytes(req.AnalysisResult) || !gjson.ParseBytes(req.AnalysisResult).IsObject() {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "analysisResult must be a JSON object", nil)
	}

	lang := language.Default
	if strings.TrimSpace(req.Language) != "" {
		lang = language.Normalize(req.Language)
	}
	result := Result{
		ID:             id,
		OriginalImage:  req.OriginalImage,
		AnalysisResult: req.AnalysisResult,
		CreatedAt:      s.now().UTC(),
		Language:       lang,
	}
	if err := s.repo.Save(ctx, result); err != nil {
		s.logger.Error("failed to save share result", "id", id, "error", err)
		return Result{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save share result", err)
	}
	s.logger.Info("share result saved", "id", id, "language", lang)
	return result, nil
}

func (s *service) Load(ctx context.Context, id string) (Result, error) {
	if !ValidID(id) {
		return Result{}, apperrors.Wrap(apperrors.CodeNotFound, "share result not found", nil)
	}
	result, ok, err := s.repo.Find(ctx, id)
	if err != nil {
		s.logger.Error("failed to load share result", "id", id, "error", err)
		return Result{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load share result", err)
	}
	if !ok {
		return Result{}, apperrors.Wrap(apperrors.CodeNotFound, "share result not found", nil)
	}
	return result, nil
}

// newID is base36(unix millis) followed by a random base36 suffix.
func (s *service) newID() string {
	return strconv.FormatInt(s.now().UnixMilli(), 36) + s.rand()
}

func randomSuffix() string {
	u := uuid.New()
	v := strconv.FormatUint(binary.BigEndian.Uint64(u[8:]), 36)
	if len(v) < randomSuffixLen {
		v = strings.Repeat("0", randomSuffixLen-len(v)) + v
	}
	return v[len(v)-randomSuffixLen:]
}
