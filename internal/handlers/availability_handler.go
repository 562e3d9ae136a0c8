package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/httpresp"
	"github.com/HamidBoasidah/namaa-sub001/internal/timezone"
	ucBooking "github.com/HamidBoasidah/namaa-sub001/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	repo      domain.Repository
	catalog   domain.Catalog
	listSlots *ucBooking.ListSlots
	checkSlot *ucBooking.CheckSlot
}

func NewAvailabilityHandler(
	repo domain.Repository,
	catalog domain.Catalog,
	listSlots *ucBooking.ListSlots,
	checkSlot *ucBooking.CheckSlot,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		repo:      repo,
		catalog:   catalog,
		listSlots: listSlots,
		checkSlot: checkSlot,
	}
}

// ======================================================
// LIST SLOTS (public)
// ======================================================

// GET /api/public/:slug/availability?date=2026-09-14&service_id=3&hide_past=1
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	consultant, err := h.repo.GetConsultantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(consultant.Timezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	ref := domain.BookableRef{Kind: domain.BookableConsultant, ID: consultant.ID}
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric.")
			return
		}
		ref = domain.BookableRef{Kind: domain.BookableService, ID: uint(serviceID)}
	}

	info, err := h.catalog.ResolveBookable(c.Request.Context(), consultant.ID, ref)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	hidePast := c.Query("hide_past") == "1" || c.Query("hide_past") == "true"

	slots, err := h.listSlots.Execute(c.Request.Context(), ucBooking.ListSlotsInput{
		ConsultantID:    consultant.ID,
		Date:            date,
		DurationMinutes: info.DurationMinutes,
		BufferMinutes:   info.BufferMinutes,
		HidePast:        hidePast,
	})
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CHECK SLOT (public)
// ======================================================

// GET /api/public/:slug/availability/check?start=2026-09-14T10:00:00Z&service_id=3
func (h *AvailabilityHandler) CheckSlot(c *gin.Context) {
	consultant, err := h.repo.GetConsultantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	startStr := c.Query("start")
	if startStr == "" {
		httperr.BadRequest(c, "missing_start", "Query parameter start is required.")
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Start must be RFC 3339.")
		return
	}

	ref := domain.BookableRef{Kind: domain.BookableConsultant, ID: consultant.ID}
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric.")
			return
		}
		ref = domain.BookableRef{Kind: domain.BookableService, ID: uint(serviceID)}
	}

	info, err := h.catalog.ResolveBookable(c.Request.Context(), consultant.ID, ref)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	slot, err := h.checkSlot.Execute(c.Request.Context(), ucBooking.CheckSlotInput{
		ConsultantID:    consultant.ID,
		StartAt:         start,
		DurationMinutes: info.DurationMinutes,
		BufferMinutes:   info.BufferMinutes,
	})
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, slot)
}
