package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "whatsapp", "email", "service_type",
		"preferred_date", "preferred_time", "status", "notes", "created_at",
	})
}

func TestCreateBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id, name, whatsapp, email, service_type, preferred_date, preferred_time, status, notes) VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8)")).
		WithArgs(sqlmock.AnyArg(), "Ama Mensah", "0241234567", "ama@example.com", "Full Body Massage", "2030-05-20", "14:00", "").
		WillReturnRows(bookingRows().
			AddRow("b1", "Ama Mensah", "0241234567", "ama@example.com", "Full Body Massage", "2030-05-20", "14:00", "pending", "", now))

	b, err := repo.Create(context.Background(), &Booking{
		Name:          "Ama Mensah",
		WhatsApp:      "0241234567",
		Email:         "ama@example.com",
		ServiceType:   "Full Body Massage",
		PreferredDate: "2030-05-20",
		PreferredTime: "14:00",
	})
	require.NoError(t, err)
	require.Equal(t, "b1", b.ID)
	require.Equal(t, StatusPending, b.Status)
	require.Equal(t, "14:00", b.PreferredTime)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// The partial unique index rejects the second active booking for the
	// same (date, time, service).
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &Booking{
		Name:          "Kofi Boateng",
		WhatsApp:      "0551234567",
		ServiceType:   "Full Body Massage",
		PreferredDate: "2030-05-20",
		PreferredTime: "14:00",
	})
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestGetBookingByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs("b1").
		WillReturnRows(bookingRows().
			AddRow("b1", "Ama Mensah", "0241234567", "", "Aromatherapy", "2030-05-20", "11:30", "confirmed", "", now))

	got, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	require.Equal(t, "b1", got.ID)
	require.Equal(t, StatusConfirmed, got.Status)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(bookingRows())

	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListForRange(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	rows := bookingRows().
		AddRow("b1", "Ama Mensah", "0241234567", "", "Aromatherapy", "2030-05-20", "11:30", "pending", "", now).
		AddRow("b2", "Kofi Boateng", "0551234567", "", "Aromatherapy", "2030-05-21", "12:15", "confirmed", "", now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY preferred_date, preferred_time")).
		WithArgs("2030-05-01", "2030-05-31", "Aromatherapy", nil).
		WillReturnRows(rows)

	list, err := repo.ListForRange(context.Background(), "2030-05-01", "2030-05-31", "Aromatherapy", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "b1", list[0].ID)
}

func TestCounts(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"total", "pending", "confirmed", "cancelled", "today", "this_week"}).
		AddRow(12, 5, 6, 1, 2, 7)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'pending') AS pending")).
		WithArgs("2030-05-01", nil).
		WillReturnRows(rows)

	counts, err := repo.Counts(context.Background(), "2030-05-01", "")
	require.NoError(t, err)
	require.Equal(t, 12, counts.Total)
	require.Equal(t, 5, counts.Pending)
	require.Equal(t, 7, counts.ThisWeek)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// success case
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs("b1", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "b1", "confirmed")
	require.NoError(t, err)

	// unknown id: zero rows affected
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs("missing", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), "missing", "confirmed")
	require.ErrorIs(t, err, ErrNotFound)

	// un-cancelling into a slot someone else took meanwhile
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs("b2", "pending").
		WillReturnError(&pq.Error{Code: "23505"})

	err = repo.UpdateStatus(context.Background(), "b2", "pending")
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookedTimesAndSlotTaken(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT to_char(preferred_time, 'HH24:MI') FROM bookings WHERE preferred_date = $1 AND service_type = $2 AND status <> 'cancelled' ORDER BY preferred_time")).
		WithArgs("2030-05-20", "Full Body Massage").
		WillReturnRows(sqlmock.NewRows([]string{"to_char"}).AddRow("11:00").AddRow("14:00"))

	times, err := repo.BookedTimes(context.Background(), "2030-05-20", "Full Body Massage")
	require.NoError(t, err)
	require.Equal(t, []string{"11:00", "14:00"}, times)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS( SELECT 1 FROM bookings WHERE preferred_date = $1 AND service_type = $2 AND preferred_time = $3 AND status <> 'cancelled' )")).
		WithArgs("2030-05-20", "Full Body Massage", "14:00").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.SlotTaken(context.Background(), "2030-05-20", "Full Body Massage", "14:00")
	require.NoError(t, err)
	require.True(t, taken)
}
