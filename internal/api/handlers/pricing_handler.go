package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/optiprice/backend-go/internal/pricing"
	"github.com/optiprice/backend-go/internal/service"
)

type PricingHandler struct {
	service *service.PricingService
}

func NewPricingHandler(service *service.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

func (h *PricingHandler) OptimizeAll(c *gin.Context) {
	results, err := h.service.OptimizeAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}

func (h *PricingHandler) OptimizeProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.OptimizeProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PricingHandler) Recommendation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recommendation, err := h.service.Recommend(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// ABTest simulates pricing strategies; the optional strategy query narrows
// the simulation to a single named strategy.
func (h *PricingHandler) ABTest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	strategy := strings.TrimSpace(c.Query("strategy"))
	outcomes, err := h.service.SimulateStrategies(c.Request.Context(), id, strategy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": id,
		"results":    outcomes,
	})
}

type batchOptimizeRequest struct {
	ProductIDs []int64 `json:"product_ids"`
	Type       string  `json:"type"`
}

// BatchOptimize runs one optimization flavor over an explicit product set.
// The type selector defaults to "ml".
func (h *PricingHandler) BatchOptimize(c *gin.Context) {
	var req batchOptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch optimize payload", "details": err.Error()})
		return
	}
	if len(req.ProductIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product ids are required"})
		return
	}

	batch, err := h.service.BatchOptimize(c.Request.Context(), req.ProductIDs, strings.TrimSpace(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

func (h *PricingHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *PricingHandler) ElasticityHeatmap(c *gin.Context) {
	rows, err := h.service.ElasticityHeatmap(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"heatmap":            rows,
		"sensitivity_ranges": pricing.SensitivityRanges,
	})
}

func (h *PricingHandler) InventoryAnalysis(c *gin.Context) {
	analysis, err := h.service.InventoryAnalysis(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}
