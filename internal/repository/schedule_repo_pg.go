package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepository interface {
	Create(ctx context.Context, trainNumber string, departureDate time.Time) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	ListJourneys(ctx context.Context, asOf time.Time) ([]domain.JourneyView, error)
}

type PGScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &PGScheduleRepository{db: db}
}

// Create seeds the availability counters from the train totals in a single
// INSERT ... SELECT, so there is no window where the train row could change
// between read and insert. The unique index on (train_number, departure_date)
// rejects a duplicate schedule.
func (r *PGScheduleRepository) Create(ctx context.Context, trainNumber string, departureDate time.Time) (*domain.Schedule, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO schedules (train_number, departure_date, ac_seats_available, sleeper_seats_available)
		SELECT train_number, $2, total_ac_seats, total_sleeper_seats FROM trains WHERE train_number=$1
		RETURNING schedule_id, train_number, departure_date, ac_seats_available, sleeper_seats_available, created_at, updated_at`,
		trainNumber, departureDate)
	var s domain.Schedule
	if err := row.Scan(&s.ID, &s.TrainNumber, &s.DepartureDate, &s.AcSeatsAvailable, &s.SleeperSeatsAvailable, &s.CreatedAt, &s.UpdatedAt); err != nil {
		// no rows means the train does not exist
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *PGScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	row := r.db.QueryRow(ctx, `SELECT schedule_id, train_number, departure_date, ac_seats_available, sleeper_seats_available, created_at, updated_at FROM schedules WHERE schedule_id=$1`, id)
	var s domain.Schedule
	if err := row.Scan(&s.ID, &s.TrainNumber, &s.DepartureDate, &s.AcSeatsAvailable, &s.SleeperSeatsAvailable, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *PGScheduleRepository) ListJourneys(ctx context.Context, asOf time.Time) ([]domain.JourneyView, error) {
	rows, err := r.db.Query(ctx, `SELECT s.schedule_id, t.train_number, t.train_name, t.source, t.destination, s.departure_date, t.departure_time, s.ac_seats_available, t.ac_fare_paise, s.sleeper_seats_available, t.sleeper_fare_paise
		FROM schedules s JOIN trains t ON s.train_number = t.train_number
		WHERE s.departure_date >= $1
		ORDER BY s.departure_date, t.departure_time`, asOf)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	journeys := make([]domain.JourneyView, 0)
	for rows.Next() {
		var j domain.JourneyView
		if err := rows.Scan(&j.ScheduleID, &j.TrainNumber, &j.TrainName, &j.Source, &j.Destination, &j.DepartureDate, &j.DepartureTime, &j.AcSeatsAvailable, &j.AcFarePaise, &j.SleeperSeatsAvailable, &j.SleeperFarePaise); err != nil {
			return nil, mapError(err)
		}
		journeys = append(journeys, j)
	}
	return journeys, mapError(rows.Err())
}

var _ ScheduleRepository = (*PGScheduleRepository)(nil)
