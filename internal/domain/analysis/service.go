package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yanqian/stylecast/internal/domain/language"
	"github.com/yanqian/stylecast/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
	"github.com/yanqian/stylecast/pkg/metrics"
)

const (
	defaultModel        = "gpt-4o-mini"
	defaultSignedURLTTL = time.Hour
	defaultKeyPrefix    = "user-photos"
	cleanupTimeout      = 10 * time.Second
	maxFilenameLength   = 100
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Service relays a photo to the vision model and returns its style analysis.
type Service interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

type service struct {
	cfg     Config
	storage ObjectStorage
	chat    ChatClient
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the analysis relay. A nil chat client forces dummy mode.
func NewService(cfg Config, storage ObjectStorage, chat ChatClient, m *metrics.Metrics, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = defaultSignedURLTTL
	}
	if strings.TrimSpace(cfg.KeyPrefix) == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	return &service{
		cfg:     cfg,
		storage: storage,
		chat:    chat,
		metrics: m,
		logger:  logger.With("component", "analysis.service"),
		now:     time.Now,
	}
}

func (s *service) Analyze(ctx context.Context, req Request) (Result, error) {
	lang := language.Normalize(req.Language)
	kind := ParseKind(string(req.Kind))

	if req.UseDummy || s.cfg.UseDummy || s.chat == nil {
		s.logger.Info("serving fixture analysis", "kind", kind, "descriptive", req.Descriptive, "language", lang)
		result, err := Fixture(kind, req.Descriptive, lang)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeModel, "failed to load sample analysis", err)
		}
		return result, nil
	}

	if len(req.Image) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "image file is required", nil)
	}
	if s.cfg.MaxImageBytes > 0 && int64(len(req.Image)) > s.cfg.MaxImageBytes {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("image exceeds %d bytes", s.cfg.MaxImageBytes), nil)
	}

	key := s.objectKey(kind, req.Filename)
	stored, err := s.storage.Put(ctx, key, req.Image, req.MimeType)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to upload image", err)
	}
	s.logger.Info("image uploaded", "key", stored.Key, "bytes", stored.Size)
	defer s.release(stored.Key)

	imageURL, err := s.storage.SignedURL(ctx, stored.Key, s.cfg.SignedURLTTL)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to create image url", err)
	}

	prompt, err := BuildPrompt(kind, req.Descriptive, req.Weather, lang)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeModel, "failed to build analysis prompt", err)
	}

	resp, err := s.chat.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		Messages: []chatgpt.Message{
			{Role: "system", Content: systemPrompt(kind)},
			{Role: "user", Parts: []chatgpt.ContentPart{
				chatgpt.TextPart(prompt),
				chatgpt.ImagePart(imageURL),
			}},
		},
		ResponseFormat: chatgpt.JSONObjectFormat,
	})
	s.metrics.UpstreamCall("llm.analyze", err)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeModel, "analysis request failed", err)
	}
	s.metrics.RecordTokens(resp.Usage.TokenUsage())

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, apperrors.Wrap(apperrors.CodeModel, "analysis result is empty", nil)
	}

	result, err := parseResult(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.Warn("unparseable analysis result", "error", err, "content_length", len(resp.Choices[0].Message.Content))
		return nil, apperrors.Wrap(apperrors.CodeModel, "analysis result could not be parsed", err)
	}
	s.logger.Info("analysis completed", "kind", kind, "language", lang, "tokens", resp.Usage.TotalTokens)
	return result, nil
}

// release deletes the transient upload. It runs on a detached context so a
// cancelled request still cleans up.
func (s *service) release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	err := s.storage.Delete(ctx, key)
	s.metrics.BlobCleanup(err)
	if err != nil {
		s.logger.Warn("failed to delete transient image", "key", key, "error", err)
		return
	}
	s.logger.Debug("transient image deleted", "key", key)
}

func (s *service) objectKey(kind Kind, filename string) string {
	return fmt.Sprintf("%s/%s_analysis_%d_%s", strings.Trim(s.cfg.KeyPrefix, "/"), kind, s.now().UnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, "._")
	if len(name) > maxFilenameLength {
		name = name[len(name)-maxFilenameLength:]
	}
	if name == "" {
		return "image"
	}
	return name
}

func parseResult(raw string) (Result, error) {
	content := strings.TrimSpace(raw)
	if !gjson.Valid(content) {
		return nil, errors.New("invalid json")
	}
	if !gjson.Parse(content).IsObject() {
		return nil, errors.New("expected a json object")
	}
	return Result(content), nil
}
