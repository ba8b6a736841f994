package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/domain/analysis"
	"github.com/yanqian/stylecast/internal/domain/settings"
	"github.com/yanqian/stylecast/internal/domain/share"
	"github.com/yanqian/stylecast/internal/domain/weather"
	"github.com/yanqian/stylecast/internal/infra/config"
	"github.com/yanqian/stylecast/pkg/metrics"
	"github.com/yanqian/stylecast/pkg/util"
)

// BlobOpener serves transient images stored in process. It is nil when an
// external object store hands out its own signed URLs.
type BlobOpener interface {
	Open(ctx context.Context, key, token string) ([]byte, string, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc    weather.Service
	analysisSvc   analysis.Service
	shareSvc      share.Service
	settingsSvc   settings.Service
	blobs         BlobOpener
	metrics       *metrics.Metrics
	logger        *slog.Logger
	publicBaseURL string
	maxImageBytes int64
	startedAt     time.Time
	now           util.Clock
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	cfg *config.Config,
	weatherSvc weather.Service,
	analysisSvc analysis.Service,
	shareSvc share.Service,
	settingsSvc settings.Service,
	blobs BlobOpener,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		weatherSvc:    weatherSvc,
		analysisSvc:   analysisSvc,
		shareSvc:      shareSvc,
		settingsSvc:   settingsSvc,
		blobs:         blobs,
		metrics:       m,
		logger:        logger.With("component", "http.handler"),
		publicBaseURL: strings.TrimRight(cfg.HTTP.PublicBaseURL, "/"),
		maxImageBytes: cfg.Analysis.MaxImageBytes,
		startedAt:     util.NowUTC(),
		now:           util.NowUTC,
	}
}

// Health reports liveness and process uptime in seconds.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().Format(time.RFC3339Nano),
		"uptime":    util.Since(h.startedAt, h.now),
	})
}

// baseURL prefers the configured public URL, then the request origin.
func (h *Handler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}
