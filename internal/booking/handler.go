package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justicechristophersam-ai/spaflow/internal/auth"
	"github.com/justicechristophersam-ai/spaflow/internal/history"
	"github.com/justicechristophersam-ai/spaflow/internal/logger"
	"github.com/justicechristophersam-ai/spaflow/internal/metrics"
	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
	"github.com/justicechristophersam-ai/spaflow/internal/whatsapp"
)

type Handler struct {
	svc      Service
	events   EventRecorder
	business whatsapp.Business
}

func NewHandler(svc Service, events EventRecorder, business whatsapp.Business) *Handler {
	return &Handler{svc: svc, events: events, business: business}
}

// ListServices godoc
// @Summary      List offered treatments
// @Tags         public
// @Produce      json
// @Router       /api/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.svc.Catalog()})
}

// AvailableSlots godoc
// @Summary      Available start times for a date and treatment
// @Tags         public
// @Produce      json
// @Param        date     query  string  true  "Date (YYYY-MM-DD)"
// @Param        service  query  string  true  "Treatment name"
// @Router       /api/slots [get]
func (h *Handler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	serviceType := c.Query("service")
	if date == "" || serviceType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and service are required"})
		return
	}

	slots, err := h.svc.AvailableSlots(c.Request.Context(), date, serviceType)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, SlotsResponse{Date: date, Service: serviceType, Slots: slots})
}

// BookedSlots godoc
// @Summary      Occupied start times for a date and treatment
// @Tags         public
// @Produce      json
// @Param        date     query  string  true  "Date (YYYY-MM-DD)"
// @Param        service  query  string  true  "Treatment name"
// @Router       /api/booked-slots [get]
func (h *Handler) BookedSlots(c *gin.Context) {
	date := c.Query("date")
	serviceType := c.Query("service")
	if date == "" || serviceType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and service are required"})
		return
	}

	times, err := h.svc.BookedTimes(c.Request.Context(), date, serviceType)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, SlotsResponse{Date: date, Service: serviceType, Slots: times})
}

// SlotTaken godoc
// @Summary      Check whether a single slot is already occupied
// @Tags         public
// @Produce      json
// @Param        date     query  string  true  "Date (YYYY-MM-DD)"
// @Param        service  query  string  true  "Treatment name"
// @Param        time     query  string  true  "Start time (HH:MM)"
// @Router       /api/slot-taken [get]
func (h *Handler) SlotTaken(c *gin.Context) {
	date := c.Query("date")
	serviceType := c.Query("service")
	timeOfDay := c.Query("time")
	if date == "" || serviceType == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, service and time are required"})
		return
	}

	taken, err := h.svc.SlotTaken(c.Request.Context(), date, serviceType, timeOfDay)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, SlotTakenResponse{Taken: taken})
}

// CreateBooking godoc
// @Summary      Submit the public booking form
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking details"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /api/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordSlotConflict()
			c.JSON(http.StatusConflict, gin.H{"error": "Sorry, that time just got booked. Please pick another time."})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListBookings godoc
// @Summary      Filtered booking list for the dashboard
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        range    query  string  false  "Named range (upcoming|today|week|last30|all|custom)"
// @Param        from     query  string  false  "Custom range start (YYYY-MM-DD)"
// @Param        to       query  string  false  "Custom range end (YYYY-MM-DD)"
// @Param        service  query  string  false  "Treatment filter"
// @Param        status   query  string  false  "Status filter"
// @Param        q        query  string  false  "Free-text search"
// @Param        page     query  int     false  "Page number"
// @Router       /admin/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	dr, ok := h.resolveRange(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	resp, err := h.svc.List(c.Request.Context(), ListFilter{
		From:    dr.From,
		To:      dr.To,
		Service: c.Query("service"),
		Status:  c.Query("status"),
		Search:  c.Query("q"),
	}, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BookingCounts godoc
// @Summary      Summary counts for the dashboard header
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Router       /admin/bookings/counts [get]
func (h *Handler) BookingCounts(c *gin.Context) {
	dr, ok := h.resolveRange(c)
	if !ok {
		return
	}

	counts, err := h.svc.Counts(c.Request.Context(), dr.From, dr.To)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// UpdateBookingStatus godoc
// @Summary      Change a booking's lifecycle status
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "Booking ID"
// @Param        request  body  UpdateStatusRequest  true  "New status"
// @Router       /admin/bookings/{id}/status [patch]
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, _ := auth.GetAdminEmail(c)

	updated, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is occupied by another booking"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ExportCSV godoc
// @Summary      Download the filtered booking list as CSV
// @Tags         admin
// @Security     BearerAuth
// @Produce      text/csv
// @Router       /admin/bookings/export.csv [get]
func (h *Handler) ExportCSV(c *gin.Context) {
	dr, ok := h.resolveRange(c)
	if !ok {
		return
	}

	rows, err := h.svc.ListAll(c.Request.Context(), ListFilter{
		From:    dr.From,
		To:      dr.To,
		Service: c.Query("service"),
		Status:  c.Query("status"),
		Search:  c.Query("q"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	metrics.RecordCSVExport()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(dr)))
	if err := WriteCSV(c.Writer, rows); err != nil {
		logger.Error("CSV export failed", "error", err)
	}
}

// ContactLink godoc
// @Summary      WhatsApp deep link for a booking's client
// @Description  Builds a wa.me link with a prefilled confirmation message
// @Description  and records a whatsapp_opened audit entry.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Booking ID"
// @Router       /admin/bookings/{id}/whatsapp [get]
func (h *Handler) ContactLink(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	message := ""
	dateStr, timeStr, err := whatsapp.FormatDateTime(b.PreferredDate, b.PreferredTime)
	if err == nil {
		message = whatsapp.ConfirmationMessage(
			whatsapp.FirstName(b.Name), b.ServiceType, dateStr, timeStr, h.business)
	}

	link := whatsapp.BuildLink(b.WhatsApp, message)
	if link == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No valid phone number on this booking"})
		return
	}

	if h.events != nil {
		actor, _ := auth.GetAdminEmail(c)
		meta := map[string]interface{}{"phone": b.WhatsApp}
		if err := h.events.Record(c.Request.Context(), b.ID, history.ActionWhatsAppOpened, actor, meta); err != nil {
			logger.Error("History record failed", "booking_id", b.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

func (h *Handler) resolveRange(c *gin.Context) (schedule.DateRange, bool) {
	key := schedule.RangeKey(c.DefaultQuery("range", string(schedule.RangeUpcoming)))
	dr, err := schedule.ResolveRange(key, time.Now(), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown date range"})
		return schedule.DateRange{}, false
	}
	return dr, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownService), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTime), errors.Is(err, ErrSlotUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
