package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/optiprice/backend-go/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetAll(c *gin.Context) {
	forecasts, err := h.service.ForecastAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forecasts": forecasts,
		"total":     len(forecasts),
	})
}

// Get returns one product's forecast. An explicit method query selects a
// single component; otherwise the full bundle is returned.
func (h *ForecastHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	method := strings.TrimSpace(c.Query("method"))
	if method != "" && method != "all" {
		value, err := h.service.ForecastMethod(c.Request.Context(), id, method)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product_id": id,
			"method":     method,
			"forecast":   value,
		})
		return
	}

	forecast, err := h.service.ForecastProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}
