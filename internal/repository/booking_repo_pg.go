package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, ticketID, username string) (*domain.Booking, error)
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Booking, error)
	ListByUsername(ctx context.Context, username string) ([]domain.BookingView, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// seatColumn is selected from a fixed pair; the class never reaches the SQL
// text as user input.
func seatColumn(class domain.SeatClass) string {
	if class == domain.SeatClassAC {
		return "ac_seats_available"
	}
	return "sleeper_seats_available"
}

// Create books seats: one transaction holding the availability check, the
// counter decrement and the booking insert. The decrement carries the check in
// its WHERE clause, so two bookings racing for the last seats serialize on the
// schedule row and the loser sees zero rows affected.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	col := seatColumn(booking.SeatClass)
	cmd, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE schedules SET %s = %s - $1, updated_at = now() WHERE schedule_id=$2 AND %s >= $1`, col, col, col),
		booking.NumSeats, booking.ScheduleID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schedules WHERE schedule_id=$1)`, booking.ScheduleID).Scan(&exists); err != nil {
			return mapError(err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientSeats
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (ticket_id, username, schedule_id, seat_class, num_seats, total_fare_paise)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING booked_at`,
		booking.TicketID, booking.Username, booking.ScheduleID, booking.SeatClass, booking.NumSeats, booking.TotalFarePaise).
		Scan(&booking.BookedAt); err != nil {
		return mapError(err)
	}

	return mapError(tx.Commit(ctx))
}

// Cancel deletes the booking and restores its seats in one transaction. The
// DELETE doubles as the existence check; once the row is gone a second cancel
// reports not found, so seats can never be restored twice for one ticket.
func (r *PGBookingRepository) Cancel(ctx context.Context, ticketID, username string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT ticket_id, username, schedule_id, seat_class, num_seats, total_fare_paise, booked_at FROM bookings WHERE ticket_id=$1 FOR UPDATE`, ticketID)
	var b domain.Booking
	if err := row.Scan(&b.TicketID, &b.Username, &b.ScheduleID, &b.SeatClass, &b.NumSeats, &b.TotalFarePaise, &b.BookedAt); err != nil {
		return nil, mapError(err)
	}
	if b.Username != username {
		return nil, domain.ErrNotOwner
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE ticket_id=$1`, ticketID); err != nil {
		return nil, mapError(err)
	}

	col := seatColumn(b.SeatClass)
	if _, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE schedules SET %s = %s + $1, updated_at = now() WHERE schedule_id=$2`, col, col),
		b.NumSeats, b.ScheduleID); err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT ticket_id, username, schedule_id, seat_class, num_seats, total_fare_paise, booked_at FROM bookings WHERE ticket_id=$1`, ticketID)
	var b domain.Booking
	if err := row.Scan(&b.TicketID, &b.Username, &b.ScheduleID, &b.SeatClass, &b.NumSeats, &b.TotalFarePaise, &b.BookedAt); err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}

const bookingViewQuery = `SELECT b.ticket_id, b.username, t.train_name, t.source, t.destination, s.departure_date, t.departure_time, t.journey_duration, b.seat_class, b.num_seats, b.total_fare_paise, b.booked_at
	FROM bookings b
	JOIN schedules s ON b.schedule_id = s.schedule_id
	JOIN trains t ON s.train_number = t.train_number`

func (r *PGBookingRepository) ListByUsername(ctx context.Context, username string) ([]domain.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewQuery+` WHERE b.username=$1 ORDER BY b.booked_at`, username)
	if err != nil {
		return nil, mapError(err)
	}
	return scanBookingViews(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewQuery+` ORDER BY b.booked_at`)
	if err != nil {
		return nil, mapError(err)
	}
	return scanBookingViews(rows)
}

func scanBookingViews(rows pgx.Rows) ([]domain.BookingView, error) {
	defer rows.Close()

	views := make([]domain.BookingView, 0)
	for rows.Next() {
		var v domain.BookingView
		if err := rows.Scan(&v.TicketID, &v.Username, &v.TrainName, &v.Source, &v.Destination, &v.DepartureDate, &v.DepartureTime, &v.JourneyDuration, &v.SeatClass, &v.NumSeats, &v.TotalFarePaise, &v.BookedAt); err != nil {
			return nil, mapError(err)
		}
		views = append(views, v)
	}
	return views, mapError(rows.Err())
}

var _ BookingRepository = (*PGBookingRepository)(nil)
