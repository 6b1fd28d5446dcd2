package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/services"
)

const defaultCurrency = "INR"

type BookingHandler struct {
	svc          *services.BookingService
	orchestrator *services.BookingOrchestrator
}

func NewBookingHandler(svc *services.BookingService, orchestrator *services.BookingOrchestrator) *BookingHandler {
	return &BookingHandler{svc: svc, orchestrator: orchestrator}
}

func (h *BookingHandler) Register(r gin.IRouter) {
	bookings := r.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.POST("/bulk-cancel", h.BulkCancel)
	bookings.POST("/reserve", h.Reserve)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/confirm", h.ConfirmBooking)
	bookings.POST("/:id/cancel", h.CancelBooking)
	bookings.POST("/:id/confirm-payment", h.ConfirmPayment)
}

type reserveRequest struct {
	domain.CreateBookingRequest
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type bulkCancelRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids"`
}

type confirmPaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), identity(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.svc.ListForUser(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathUUID(c, "id", domain.ErrInvalidBookingID)
	if !ok {
		return
	}

	booking, err := h.svc.Get(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, ok := pathUUID(c, "id", domain.ErrInvalidBookingID)
	if !ok {
		return
	}

	booking, err := h.svc.Confirm(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := pathUUID(c, "id", domain.ErrInvalidBookingID)
	if !ok {
		return
	}

	booking, err := h.svc.Cancel(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) BulkCancel(c *gin.Context) {
	var req bulkCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	id := identity(c)
	if id.IsAnonymous() {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, h.svc.BulkCancel(c.Request.Context(), id, req.BookingIDs))
}

func (h *BookingHandler) Reserve(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	amount := 0.0
	if req.Amount != nil {
		amount = *req.Amount
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	result, err := h.orchestrator.Reserve(c.Request.Context(), identity(c), req.CreateBookingRequest, amount, currency)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	id, ok := pathUUID(c, "id", domain.ErrInvalidBookingID)
	if !ok {
		return
	}

	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	booking, err := h.orchestrator.ConfirmPaymentAndBooking(c.Request.Context(), identity(c), id, req.PaymentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
