package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/infra/objectstore"
)

// GetBlob serves an in-process transient image to the holder of a signed link.
func (h *Handler) GetBlob(c *gin.Context) {
	data, contentType, err := h.blobs.Open(c.Request.Context(), c.Param("key"), c.Query("token"))
	switch {
	case errors.Is(err, objectstore.ErrInvalidToken):
		abortWithError(c, NewHTTPError(http.StatusForbidden, "forbidden", "invalid or expired link", err))
		return
	case errors.Is(err, objectstore.ErrBlobNotFound):
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "blob not found", err))
		return
	case err != nil:
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "storage_error", "failed to read blob", err))
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, contentType, data)
}
