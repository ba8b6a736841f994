package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/domain/language"
	"github.com/yanqian/stylecast/internal/domain/share"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

const sharePageTemplate = "share.html"

// SaveShare persists an analysis so it can be opened from a link.
func (h *Handler) SaveShare(c *gin.Context) {
	lang := requestLanguage(c)

	var req share.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(language.Message(language.MsgInvalidRequest, lang), err))
		return
	}
	if req.Language == "" {
		req.Language = lang
	}

	result, err := h.shareSvc.Save(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgShareSaveFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       result.ID,
		"shareUrl": h.baseURL(c) + "/share/" + result.ID,
	})
}

// GetShare returns a stored result as JSON.
func (h *Handler) GetShare(c *gin.Context) {
	lang := requestLanguage(c)

	result, err := h.shareSvc.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgError))
		return
	}
	c.JSON(http.StatusOK, result)
}

// SharePage renders a stored result as a standalone HTML page.
func (h *Handler) SharePage(c *gin.Context) {
	result, err := h.shareSvc.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderMissingPage(c, err)
		return
	}
	c.HTML(http.StatusOK, sharePageTemplate, share.BuildPage(result))
}

// InlineSharePage renders the analysis carried in ?data= without storing it.
func (h *Handler) InlineSharePage(c *gin.Context) {
	result, err := share.InlineResult(c.Query("data"), h.now())
	if err != nil {
		h.renderMissingPage(c, err)
		return
	}
	c.HTML(http.StatusOK, sharePageTemplate, share.BuildPage(result))
}

func (h *Handler) renderMissingPage(c *gin.Context, err error) {
	status := http.StatusNotFound
	if code := apperrors.CodeOf(err); code != apperrors.CodeNotFound && code != apperrors.CodeInvalidInput {
		status = http.StatusInternalServerError
		h.logger.Error("share page failed", "path", c.Request.URL.Path, "error", err)
	}
	c.HTML(status, sharePageTemplate, share.NotFoundPage(requestLanguage(c)))
}
