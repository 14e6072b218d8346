package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	PropertyID       int64  `json:"property_id"`
	ClientName       string `json:"client_name"`
	ClientEmail      string `json:"client_email"`
	ClientPhone      string `json:"client_phone"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

type bookingResponse struct {
	ID               int64  `json:"id"`
	Reference        string `json:"reference"`
	PropertyID       int64  `json:"property_id"`
	OwnerAgentID     int64  `json:"owner_agent_id"`
	BookingAgentID   int64  `json:"booking_agent_id"`
	ClientName       string `json:"client_name"`
	ClientEmail      string `json:"client_email"`
	Status           string `json:"status"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.POST("/:id/confirm", h.confirm)
	router.POST("/:id/cancel", h.cancel)
	router.POST("/:id/decline", h.decline)
	router.POST("/:id/pay", h.pay)
}

func (h *BookingHandler) create(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}

	created, err := h.service.RequestBooking(c.Request.Context(), actor, booking.RequestBookingInput{
		PropertyID:       req.PropertyID,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		TotalAmountCents: req.TotalAmountCents,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	agentID, err := strconv.ParseInt(c.Query("agent_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent_id query parameter is required"})
		return
	}
	bookings, err := h.service.ListForAgent(c.Request.Context(), agentID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	h.transition(c, h.service.ConfirmBooking)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	h.transition(c, h.service.CancelBooking)
}

func (h *BookingHandler) decline(c *gin.Context) {
	h.transition(c, h.service.DeclineBooking)
}

func (h *BookingHandler) pay(c *gin.Context) {
	h.transition(c, h.service.MarkPaid)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, actorAgentID, bookingID int64) (*domain.Booking, error)) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	updated, err := op(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		PropertyID:       b.PropertyID,
		OwnerAgentID:     b.OwnerAgentID,
		BookingAgentID:   b.BookingAgentID,
		ClientName:       b.ClientName,
		ClientEmail:      b.ClientEmail,
		Status:           string(b.Status),
		CheckIn:          b.CheckIn.Format("2006-01-02"),
		CheckOut:         b.CheckOut.Format("2006-01-02"),
		TotalAmountCents: b.TotalAmountCents,
	}
}
