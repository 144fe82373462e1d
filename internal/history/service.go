package history

import "context"

// Recorder is the append-only facade other packages log through.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, bookingID, action, actor string, meta map[string]interface{}) error {
	_, err := r.repo.Append(ctx, bookingID, action, actor, meta)
	return err
}
