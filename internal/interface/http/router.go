package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/infra/config"
	"github.com/yanqian/stylecast/pkg/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		metricsMiddleware(m),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		languageMiddleware(),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.POST("/analyze", handler.Analyze)
		api.GET("/weather", handler.GetWeather)
		api.POST("/weather", handler.PostWeather)
		api.GET("/settings", handler.GetSettings)
		api.POST("/settings", handler.UpdateSettings)
		api.POST("/share", handler.SaveShare)
		api.GET("/share/:id", handler.GetShare)
		if handler.blobs != nil {
			api.GET("/blobs/*key", handler.GetBlob)
		}
	}

	router.GET("/share", handler.InlineSharePage)
	router.GET("/share/:id", handler.SharePage)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
