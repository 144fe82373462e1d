package booking

import "context"

type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForRange(ctx context.Context, from, to, service, status string) ([]Booking, error)
	Counts(ctx context.Context, from, to string) (*Counts, error)
	UpdateStatus(ctx context.Context, id, status string) error
	BookedTimes(ctx context.Context, date, service string) ([]string, error)
	SlotTaken(ctx context.Context, date, service, timeOfDay string) (bool, error)
}
