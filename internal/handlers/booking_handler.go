package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/httpresp"
	"github.com/HamidBoasidah/namaa-sub001/internal/middleware"
	ucBooking "github.com/HamidBoasidah/namaa-sub001/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createPending *ucBooking.CreatePending
	confirm       *ucBooking.Confirm
	cancel        *ucBooking.Cancel
	complete      *ucBooking.Complete
	listMine      *ucBooking.ListClientBookings
}

func NewBookingHandler(
	createPending *ucBooking.CreatePending,
	confirm *ucBooking.Confirm,
	cancel *ucBooking.Cancel,
	complete *ucBooking.Complete,
	listMine *ucBooking.ListClientBookings,
) *BookingHandler {
	return &BookingHandler{
		createPending: createPending,
		confirm:       confirm,
		cancel:        cancel,
		complete:      complete,
		listMine:      listMine,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ConsultantID uint      `json:"consultant_id" binding:"required"`
	ServiceID    uint      `json:"service_id"`
	StartAt      time.Time `json:"start_at" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE (hold)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextActorID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	bookable := domain.BookableRef{Kind: domain.BookableConsultant, ID: req.ConsultantID}
	if req.ServiceID != 0 {
		bookable = domain.BookableRef{Kind: domain.BookableService, ID: req.ServiceID}
	}

	created, err := h.createPending.Execute(c.Request.Context(), ucBooking.CreatePendingInput{
		ConsultantID: req.ConsultantID,
		ClientID:     clientID,
		Bookable:     bookable,
		StartAt:      req.StartAt,
	})
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// CONFIRM
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextActorID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a UUID.")
		return
	}

	confirmed, err := h.confirm.Execute(c.Request.Context(), bookingID, clientID)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, confirmed)
}

// ======================================================
// CANCEL (client)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextActorID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a UUID.")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	cancelled, err := h.cancel.Execute(
		c.Request.Context(),
		bookingID,
		domain.CancellerRef{ActorType: domain.ActorClient, ID: clientID},
		req.Reason,
	)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, cancelled)
}

// ======================================================
// LIST (client)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextActorID).(uint)

	bookings, err := h.listMine.Execute(c.Request.Context(), clientID)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// ADMIN
// ======================================================

func (h *BookingHandler) AdminCancel(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextActorID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a UUID.")
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	cancelled, err := h.cancel.Execute(
		c.Request.Context(),
		bookingID,
		domain.CancellerRef{ActorType: domain.ActorAdmin, ID: adminID},
		req.Reason,
	)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, cancelled)
}

func (h *BookingHandler) AdminComplete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextActorID).(uint)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a UUID.")
		return
	}

	completed, err := h.complete.Execute(c.Request.Context(), bookingID, adminID)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, completed)
}
