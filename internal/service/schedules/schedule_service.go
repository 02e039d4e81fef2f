package schedules

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/repository"
)

type ScheduleAdminUseCase interface {
	AddTrain(ctx context.Context, input AddTrainInput) (*domain.Train, error)
	ScheduleTrain(ctx context.Context, trainNumber string, departureDate time.Time) (*domain.Schedule, error)
	DeleteTrain(ctx context.Context, trainNumber string) error
	ListTrains(ctx context.Context) ([]domain.Train, error)
}

type ScheduleAdminService struct {
	trains    repository.TrainRepository
	schedules repository.ScheduleRepository
}

type AddTrainInput struct {
	Number            string `json:"number"`
	Name              string `json:"name"`
	Source            string `json:"source"`
	Destination       string `json:"destination"`
	DepartureTime     string `json:"departure_time"`
	JourneyDuration   string `json:"journey_duration"`
	TotalAcSeats      int    `json:"total_ac_seats"`
	TotalSleeperSeats int    `json:"total_sleeper_seats"`
	AcFarePaise       int64  `json:"ac_fare_paise"`
	SleeperFarePaise  int64  `json:"sleeper_fare_paise"`
}

func NewScheduleAdminService(trains repository.TrainRepository, schedules repository.ScheduleRepository) *ScheduleAdminService {
	return &ScheduleAdminService{trains: trains, schedules: schedules}
}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (s *ScheduleAdminService) AddTrain(ctx context.Context, input AddTrainInput) (*domain.Train, error) {
	if input.Number == "" || input.Name == "" || input.Source == "" || input.Destination == "" {
		return nil, fmt.Errorf("%w: number, name, source and destination are required", domain.ErrInvalidRequest)
	}
	if !hhmmRe.MatchString(input.DepartureTime) {
		return nil, fmt.Errorf("%w: departure time must be HH:MM", domain.ErrInvalidRequest)
	}
	if input.JourneyDuration == "" {
		return nil, fmt.Errorf("%w: journey duration is required", domain.ErrInvalidRequest)
	}
	if input.TotalAcSeats <= 0 || input.TotalSleeperSeats <= 0 {
		return nil, fmt.Errorf("%w: seat totals must be positive", domain.ErrInvalidRequest)
	}
	if input.AcFarePaise < 0 || input.SleeperFarePaise < 0 {
		return nil, fmt.Errorf("%w: fares must be non-negative", domain.ErrInvalidRequest)
	}

	train := &domain.Train{
		Number:            input.Number,
		Name:              input.Name,
		Source:            input.Source,
		Destination:       input.Destination,
		DepartureTime:     input.DepartureTime,
		JourneyDuration:   input.JourneyDuration,
		TotalAcSeats:      input.TotalAcSeats,
		TotalSleeperSeats: input.TotalSleeperSeats,
		AcFarePaise:       input.AcFarePaise,
		SleeperFarePaise:  input.SleeperFarePaise,
	}
	if err := s.trains.Create(ctx, train); err != nil {
		return nil, err
	}
	return train, nil
}

func (s *ScheduleAdminService) ScheduleTrain(ctx context.Context, trainNumber string, departureDate time.Time) (*domain.Schedule, error) {
	if trainNumber == "" {
		return nil, fmt.Errorf("%w: train number is required", domain.ErrInvalidRequest)
	}
	if departureDate.IsZero() {
		return nil, fmt.Errorf("%w: departure date is required", domain.ErrInvalidRequest)
	}
	return s.schedules.Create(ctx, trainNumber, departureDate)
}

// DeleteTrain blocks while schedules still reference the train; the repository
// reports that as a conflict.
func (s *ScheduleAdminService) DeleteTrain(ctx context.Context, trainNumber string) error {
	if trainNumber == "" {
		return fmt.Errorf("%w: train number is required", domain.ErrInvalidRequest)
	}
	return s.trains.Delete(ctx, trainNumber)
}

func (s *ScheduleAdminService) ListTrains(ctx context.Context) ([]domain.Train, error) {
	return s.trains.List(ctx)
}

var _ ScheduleAdminUseCase = (*ScheduleAdminService)(nil)
