package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

type Booking struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	WhatsApp      string    `db:"whatsapp" json:"whatsapp"`
	Email         string    `db:"email" json:"email"`
	ServiceType   string    `db:"service_type" json:"service_type"`
	PreferredDate string    `db:"preferred_date" json:"preferred_date"`
	PreferredTime string    `db:"preferred_time" json:"preferred_time"`
	Status        string    `db:"status" json:"status"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Counts are the dashboard summary numbers, computed by the same query
// contract that feeds the list so the two never disagree.
type Counts struct {
	Total     int `db:"total" json:"total"`
	Pending   int `db:"pending" json:"pending"`
	Confirmed int `db:"confirmed" json:"confirmed"`
	Cancelled int `db:"cancelled" json:"cancelled"`
	Today     int `db:"today" json:"today"`
	ThisWeek  int `db:"this_week" json:"this_week"`
}

type CreateBookingRequest struct {
	Name          string `json:"name" binding:"required"`
	WhatsApp      string `json:"whatsapp" binding:"required"`
	Email         string `json:"email"`
	ServiceType   string `json:"service_type" binding:"required"`
	PreferredDate string `json:"preferred_date" binding:"required"`
	PreferredTime string `json:"preferred_time" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilter narrows an admin listing. Empty fields match everything.
type ListFilter struct {
	From    string
	To      string
	Service string
	Status  string
	Search  string
}

type ListResponse struct {
	Bookings   []Booking `json:"bookings"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalRows  int       `json:"total_rows"`
	TotalPages int       `json:"total_pages"`
}

type SlotsResponse struct {
	Date    string   `json:"date"`
	Service string   `json:"service"`
	Slots   []string `json:"slots"`
}

type SlotTakenResponse struct {
	Taken bool `json:"taken"`
}
