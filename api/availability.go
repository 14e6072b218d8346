package api

import (
	"net/http"
	"time"

	"github.com/Korolev91/estatehub/internal/service/availability"
	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service availability.AvailabilityUseCase
}

type availabilityRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

func NewAvailabilityHandler(service availability.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Register mounts the ledger routes under /properties/:id/availability.
func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id/availability", h.list)
	router.POST("/:id/availability", h.block)
	router.DELETE("/:id/availability", h.release)
}

func (h *AvailabilityHandler) list(c *gin.Context) {
	propertyID, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.service.List(c.Request.Context(), propertyID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AvailabilityHandler) block(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}
	propertyID, ok := pathID(c)
	if !ok {
		return
	}

	var req availabilityRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := parseRange(c, req)
	if !ok {
		return
	}

	record, err := h.service.BlockRange(c.Request.Context(), actor, propertyID, start, end, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AvailabilityHandler) release(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}
	propertyID, ok := pathID(c)
	if !ok {
		return
	}

	var req availabilityRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := parseRange(c, req)
	if !ok {
		return
	}

	if err := h.service.ReleaseExactRange(c.Request.Context(), actor, propertyID, start, end); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseRange(c *gin.Context, req availabilityRangeRequest) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
