package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/domain/analysis"
	"github.com/yanqian/stylecast/internal/domain/language"
	apperrors "github.com/yanqian/stylecast/pkg/errors"
)

// Analyze relays a multipart image upload to the vision model.
func (h *Handler) Analyze(c *gin.Context) {
	lang := requestLanguage(c)

	wc, err := analysis.ParseWeatherContext(c.PostForm("weather"))
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgAnalysisFailed))
		return
	}

	req := analysis.Request{
		Kind:        analysis.ParseKind(c.PostForm("type")),
		Language:    lang,
		Descriptive: formBool(c, "descriptiveMode"),
		UseDummy:    formBool(c, "useDummy"),
		Weather:     wc,
	}

	fileHeader, err := c.FormFile("image")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			abortWithError(c, invalidRequest("failed to read upload", openErr))
			return
		}
		defer file.Close()
		reader := io.Reader(file)
		if h.maxImageBytes > 0 {
			// one extra byte lets the service reject oversized uploads
			reader = io.LimitReader(file, h.maxImageBytes+1)
		}
		data, readErr := io.ReadAll(reader)
		if readErr != nil {
			abortWithError(c, invalidRequest("failed to read upload", readErr))
			return
		}
		req.Image = data
		req.Filename = fileHeader.Filename
		req.MimeType = fileHeader.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no image; dummy mode may still answer
	default:
		abortWithError(c, invalidRequest(language.Message(language.MsgInvalidRequest, lang), err))
		return
	}

	result, err := h.analysisSvc.Analyze(c.Request.Context(), req)
	if err != nil && len(req.Image) == 0 && apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		abortWithError(c, invalidRequest(language.Message(language.MsgImageRequired, lang), err))
		return
	}
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgAnalysisFailed))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

func formBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.PostForm(key))
	return err == nil && v
}
