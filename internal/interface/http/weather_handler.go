package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/stylecast/internal/domain/language"
	"github.com/yanqian/stylecast/internal/domain/weather"
)

type cityRequest struct {
	City string `json:"city"`
}

// GetWeather returns current conditions and the forecast for ?lat&lon or ?city.
func (h *Handler) GetWeather(c *gin.Context) {
	lang := requestLanguage(c)

	var (
		report weather.Report
		err    error
	)
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		report, err = h.weatherSvc.ByCity(c.Request.Context(), city, lang)
	} else {
		latRaw, lonRaw := c.Query("lat"), c.Query("lon")
		if latRaw == "" || lonRaw == "" {
			abortWithError(c, invalidRequest("Latitude and longitude are required", nil))
			return
		}
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			abortWithError(c, invalidRequest("Latitude and longitude must be numbers", nil))
			return
		}
		report, err = h.weatherSvc.ByCoordinates(c.Request.Context(), lat, lon, lang)
	}
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgWeatherFailed))
		return
	}
	c.JSON(http.StatusOK, report)
}

// PostWeather looks weather up by city name.
func (h *Handler) PostWeather(c *gin.Context) {
	lang := requestLanguage(c)

	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(language.Message(language.MsgInvalidRequest, lang), err))
		return
	}
	if strings.TrimSpace(req.City) == "" {
		abortWithError(c, invalidRequest("City name is required", nil))
		return
	}
	report, err := h.weatherSvc.ByCity(c.Request.Context(), req.City, lang)
	if err != nil {
		abortWithError(c, fromDomainError(err, lang, language.MsgWeatherFailed))
		return
	}
	c.JSON(http.StatusOK, report)
}
