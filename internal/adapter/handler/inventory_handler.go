package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srgjo27/scalable_booking/internal/core/domain"
	"github.com/srgjo27/scalable_booking/internal/core/services"
)

type InventoryHandler struct {
	svc *services.SeatInventoryService
}

func NewInventoryHandler(svc *services.SeatInventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) Register(r gin.IRouter) {
	shows := r.Group("/shows/:showId")
	shows.POST("/screen", h.RegisterShow)
	shows.GET("/screen", h.GetShowScreen)
	shows.GET("/seats", h.GetAvailability)
	shows.POST("/seats/lock", h.LockSeats)
	shows.POST("/seats/release", h.ReleaseSeats)
	shows.POST("/seats/confirm", h.ConfirmSeats)
}

type registerShowRequest struct {
	ScreenID uuid.UUID `json:"screenId" binding:"required"`
}

type lockSeatsRequest struct {
	BookingID      uuid.UUID `json:"bookingId" binding:"required"`
	SeatLabels     []string  `json:"seatLabels"`
	LockTTLMinutes *int      `json:"lockTtlMinutes"`
}

type seatBookingRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

func (h *InventoryHandler) RegisterShow(c *gin.Context) {
	showID, ok := pathUUID(c, "showId", domain.ErrInvalidShowID)
	if !ok {
		return
	}

	var req registerShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	if err := h.svc.RegisterShow(c.Request.Context(), identity(c), showID, req.ScreenID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"showId": showID, "screenId": req.ScreenID})
}

func (h *InventoryHandler) GetShowScreen(c *gin.Context) {
	showID, ok := pathUUID(c, "showId", domain.ErrInvalidShowID)
	if !ok {
		return
	}

	screenID, err := h.svc.GetShowScreen(c.Request.Context(), showID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"showId": showID, "screenId": screenID})
}

func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	showID, ok := pathUUID(c, "showId", domain.ErrInvalidShowID)
	if !ok {
		return
	}

	seats, err := h.svc.GetAvailability(c.Request.Context(), showID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, seats)
}

func (h *InventoryHandler) LockSeats(c *gin.Context) {
	showID, ok := pathUUID(c, "showId", domain.ErrInvalidShowID)
	if !ok {
		return
	}

	var req lockSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	ttl := domain.ClampLockTTL(req.LockTTLMinutes, domain.DefaultSeatLockTTLMinutes)
	if err := h.svc.LockSeats(c.Request.Context(), showID, req.BookingID, req.SeatLabels, ttl); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": req.BookingID, "status": domain.SeatLocked})
}

func (h *InventoryHandler) ReleaseSeats(c *gin.Context) {
	h.seatTransition(c, h.svc.ReleaseSeats, domain.SeatAvailable)
}

func (h *InventoryHandler) ConfirmSeats(c *gin.Context) {
	h.seatTransition(c, h.svc.ConfirmSeats, domain.SeatBooked)
}

func (h *InventoryHandler) seatTransition(c *gin.Context, apply func(ctx context.Context, showID, bookingID uuid.UUID) error, status domain.SeatStatus) {
	showID, ok := pathUUID(c, "showId", domain.ErrInvalidShowID)
	if !ok {
		return
	}

	var req seatBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	if err := apply(c.Request.Context(), showID, req.BookingID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": req.BookingID, "status": status})
}
