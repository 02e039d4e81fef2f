package repository

import (
	"context"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TrainRepository interface {
	Create(ctx context.Context, train *domain.Train) error
	GetByNumber(ctx context.Context, number string) (*domain.Train, error)
	List(ctx context.Context) ([]domain.Train, error)
	Delete(ctx context.Context, number string) error
}

type PGTrainRepository struct {
	db *pgxpool.Pool
}

func NewTrainRepository(db *pgxpool.Pool) TrainRepository {
	return &PGTrainRepository{db: db}
}

func (r *PGTrainRepository) Create(ctx context.Context, train *domain.Train) error {
	err := r.db.QueryRow(ctx, `INSERT INTO trains (train_number, train_name, source, destination, departure_time, journey_duration, total_ac_seats, total_sleeper_seats, ac_fare_paise, sleeper_fare_paise)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		train.Number, train.Name, train.Source, train.Destination, train.DepartureTime, train.JourneyDuration,
		train.TotalAcSeats, train.TotalSleeperSeats, train.AcFarePaise, train.SleeperFarePaise).
		Scan(&train.CreatedAt, &train.UpdatedAt)
	return mapError(err)
}

func (r *PGTrainRepository) GetByNumber(ctx context.Context, number string) (*domain.Train, error) {
	row := r.db.QueryRow(ctx, `SELECT train_number, train_name, source, destination, departure_time, journey_duration, total_ac_seats, total_sleeper_seats, ac_fare_paise, sleeper_fare_paise, created_at, updated_at FROM trains WHERE train_number=$1`, number)
	var t domain.Train
	if err := row.Scan(&t.Number, &t.Name, &t.Source, &t.Destination, &t.DepartureTime, &t.JourneyDuration, &t.TotalAcSeats, &t.TotalSleeperSeats, &t.AcFarePaise, &t.SleeperFarePaise, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *PGTrainRepository) List(ctx context.Context) ([]domain.Train, error) {
	rows, err := r.db.Query(ctx, `SELECT train_number, train_name, source, destination, departure_time, journey_duration, total_ac_seats, total_sleeper_seats, ac_fare_paise, sleeper_fare_paise, created_at, updated_at FROM trains ORDER BY train_number`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	trains := make([]domain.Train, 0)
	for rows.Next() {
		var t domain.Train
		if err := rows.Scan(&t.Number, &t.Name, &t.Source, &t.Destination, &t.DepartureTime, &t.JourneyDuration, &t.TotalAcSeats, &t.TotalSleeperSeats, &t.AcFarePaise, &t.SleeperFarePaise, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		trains = append(trains, t)
	}
	return trains, mapError(rows.Err())
}

// Delete refuses to remove a train that still has schedules. The reference
// check and the delete run in one transaction so a concurrent ScheduleTrain
// cannot slip between them.
func (r *PGTrainRepository) Delete(ctx context.Context, number string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	var refs int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM schedules WHERE train_number=$1`, number).Scan(&refs); err != nil {
		return mapError(err)
	}
	if refs > 0 {
		return domain.ErrConflict
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM trains WHERE train_number=$1`, number)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return mapError(tx.Commit(ctx))
}

var _ TrainRepository = (*PGTrainRepository)(nil)
