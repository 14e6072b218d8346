package api

import (
	"net/http"
	"strconv"

	"github.com/Korolev91/estatehub/internal/service/commission"
	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	service commission.CommissionUseCase
}

func NewCommissionHandler(service commission.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{service: service}
}

func (h *CommissionHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/booking/:id", h.getForBooking)
	router.POST("/:id/pay", h.pay)
}

func (h *CommissionHandler) list(c *gin.Context) {
	agentID, err := strconv.ParseInt(c.Query("agent_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent_id query parameter is required"})
		return
	}
	commissions, err := h.service.ListForAgent(c.Request.Context(), agentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, commissions)
}

func (h *CommissionHandler) getForBooking(c *gin.Context) {
	bookingID, ok := pathID(c)
	if !ok {
		return
	}
	comm, err := h.service.GetForBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comm)
}

func (h *CommissionHandler) pay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	paid, err := h.service.MarkPaid(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, paid)
}
