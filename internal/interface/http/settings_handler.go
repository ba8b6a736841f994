package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/domain/language"
	"github.com/yanqian/stylecast/internal/domain/settings"
)

// GetSettings returns the ad configuration.
func (h *Handler) GetSettings(c *gin.Context) {
	cfg, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, requestLanguage(c), language.MsgError))
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateSettings replaces the ad configuration.
func (h *Handler) UpdateSettings(c *gin.Context) {
	lang := requestLanguage(c)

	var req settings.AdConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(language.Message(language.MsgInvalidRequest, lang), err))
		return
	}
	cfg, err := h.settingsSvc.Update(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgError))
		return
	}
	c.JSON(http.StatusOK, cfg)
}
