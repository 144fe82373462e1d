package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/justicechristophersam-ai/spaflow/internal/history"
	"github.com/justicechristophersam-ai/spaflow/internal/logger"
	"github.com/justicechristophersam-ai/spaflow/internal/metrics"
	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
)

const pageSize = 20

var (
	ErrUnknownService  = errors.New("unknown service type")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrSlotUnavailable = errors.New("time is outside bookable hours")
	ErrInvalidStatus   = errors.New("invalid status")
)

// Notifier pushes a freshly created booking to the outbound webhook.
// Delivery is best-effort; the booking record is the source of truth.
type Notifier interface {
	BookingCreated(ctx context.Context, b *Booking) error
}

// EventRecorder appends to the audit trail.
type EventRecorder interface {
	Record(ctx context.Context, bookingID, action, actor string, meta map[string]interface{}) error
}

// Publisher fans booking changes out to live admin dashboards.
type Publisher interface {
	BookingChanged(ctx context.Context, id, date, status, change string) error
}

type Service interface {
	Catalog() []schedule.Service
	AvailableSlots(ctx context.Context, date, service string) ([]string, error)
	BookedTimes(ctx context.Context, date, service string) ([]string, error)
	SlotTaken(ctx context.Context, date, service, timeOfDay string) (bool, error)
	Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error)
	Get(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter ListFilter, page int) (*ListResponse, error)
	ListAll(ctx context.Context, filter ListFilter) ([]Booking, error)
	Counts(ctx context.Context, from, to string) (*Counts, error)
	UpdateStatus(ctx context.Context, id, newStatus, actor string) (*Booking, error)
}

type service struct {
	repo      Repository
	hours     schedule.WeekHours
	slotOpts  schedule.SlotOptions
	notifier  Notifier
	events    EventRecorder
	publisher Publisher
	now       func() time.Time
}

func NewService(repo Repository, hours schedule.WeekHours, slotOpts schedule.SlotOptions,
	notifier Notifier, events EventRecorder, publisher Publisher) Service {
	return &service{
		repo:      repo,
		hours:     hours,
		slotOpts:  slotOpts,
		notifier:  notifier,
		events:    events,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Catalog() []schedule.Service {
	return schedule.Catalog
}

func (s *service) AvailableSlots(ctx context.Context, date, serviceType string) ([]string, error) {
	generated, err := s.generatedSlots(date, serviceType)
	if err != nil {
		return nil, err
	}

	occupied, err := s.repo.BookedTimes(ctx, date, serviceType)
	if err != nil {
		return nil, err
	}

	return schedule.Available(generated, occupied), nil
}

func (s *service) BookedTimes(ctx context.Context, date, serviceType string) ([]string, error) {
	if _, ok := schedule.ServiceByName(serviceType); !ok {
		return nil, ErrUnknownService
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.repo.BookedTimes(ctx, date, serviceType)
}

func (s *service) SlotTaken(ctx context.Context, date, serviceType, timeOfDay string) (bool, error) {
	if _, ok := schedule.ServiceByName(serviceType); !ok {
		return false, ErrUnknownService
	}
	return s.repo.SlotTaken(ctx, date, serviceType, schedule.NormalizeTime(timeOfDay))
}

// Create re-checks the slot and inserts the booking as pending. The
// partial unique index closes the remaining race: whichever of two
// concurrent submissions loses gets ErrSlotTaken. Webhook, audit entry
// and realtime publish run afterwards and never fail the booking.
func (s *service) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	timeOfDay := schedule.NormalizeTime(req.PreferredTime)

	generated, err := s.generatedSlots(req.PreferredDate, req.ServiceType)
	if err != nil {
		return nil, err
	}
	if !contains(generated, timeOfDay) {
		return nil, ErrSlotUnavailable
	}

	taken, err := s.repo.SlotTaken(ctx, req.PreferredDate, req.ServiceType, timeOfDay)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	created, err := s.repo.Create(ctx, &Booking{
		Name:          strings.TrimSpace(req.Name),
		WhatsApp:      strings.TrimSpace(req.WhatsApp),
		Email:         strings.TrimSpace(req.Email),
		ServiceType:   req.ServiceType,
		PreferredDate: req.PreferredDate,
		PreferredTime: timeOfDay,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCreated(created.ServiceType)

	if s.notifier != nil {
		if err := s.notifier.BookingCreated(ctx, created); err != nil {
			logger.Error("Webhook notify failed", "booking_id", created.ID, "error", err)
		}
	}

	if s.events != nil {
		meta := map[string]interface{}{
			"service": created.ServiceType,
			"date":    created.PreferredDate,
			"time":    created.PreferredTime,
		}
		if err := s.events.Record(ctx, created.ID, history.ActionBookingCreated, "", meta); err != nil {
			logger.Error("History record failed", "booking_id", created.ID, "error", err)
		}
	}

	s.publish(ctx, created, "created")

	return created, nil
}

func (s *service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns the full filtered set, unpaginated. CSV export uses it.
func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]Booking, error) {
	rows, err := s.repo.ListForRange(ctx, filter.From, filter.To, filter.Service, filter.Status)
	if err != nil {
		return nil, err
	}
	return applySearch(rows, filter.Search), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page int) (*ListResponse, error) {
	rows, err := s.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	totalRows := len(rows)
	totalPages := (totalRows + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > totalRows {
		end = totalRows
	}

	return &ListResponse{
		Bookings:   rows[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  totalRows,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Counts(ctx context.Context, from, to string) (*Counts, error) {
	return s.repo.Counts(ctx, from, to)
}

func (s *service) UpdateStatus(ctx context.Context, id, newStatus, actor string) (*Booking, error) {
	if !ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	previous := b.Status
	b.Status = newStatus

	metrics.RecordStatusChange(newStatus)

	if s.events != nil {
		meta := map[string]interface{}{"from": previous, "to": newStatus}
		if err := s.events.Record(ctx, b.ID, statusAction(newStatus), actor, meta); err != nil {
			logger.Error("History record failed", "booking_id", b.ID, "error", err)
		}
	}

	s.publish(ctx, b, "status_changed")

	return b, nil
}

func (s *service) generatedSlots(date, serviceType string) ([]string, error) {
	svc, ok := schedule.ServiceByName(serviceType)
	if !ok {
		return nil, ErrUnknownService
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	return s.hours.SlotsForDate(day, svc.DurationMinutes, s.slotOpts, s.now()), nil
}

func (s *service) publish(ctx context.Context, b *Booking, change string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.BookingChanged(ctx, b.ID, b.PreferredDate, b.Status, change); err != nil {
		logger.Error("Realtime publish failed", "booking_id", b.ID, "error", err)
	}
}

func statusAction(status string) string {
	switch status {
	case StatusConfirmed:
		return history.ActionBookingConfirmed
	case StatusCancelled:
		return history.ActionBookingCancelled
	default:
		return history.ActionBookingPending
	}
}

func applySearch(rows []Booking, search string) []Booking {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return rows
	}

	filtered := make([]Booking, 0, len(rows))
	for _, r := range rows {
		haystack := strings.ToLower(strings.Join([]string{
			r.Name, r.WhatsApp, r.Email, r.Notes, r.ServiceType,
		}, "\n"))
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
