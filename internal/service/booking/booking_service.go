package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/fare"
	"github.com/Domenick1991/railbooking/internal/kafka"
	"github.com/Domenick1991/railbooking/internal/repository"
)

// maxTicketIDAttempts bounds regeneration when a generated ticket id collides
// with an existing row. The id space is 900000 values, so more than a couple
// of collisions in a row means something is wrong with the store.
const maxTicketIDAttempts = 5

type BookingUseCase interface {
	ListBookableJourneys(ctx context.Context, asOf time.Time) ([]domain.JourneyView, error)
	Book(ctx context.Context, input BookTicketInput) (*domain.Booking, error)
	Cancel(ctx context.Context, ticketID, username string) error
	MyBookings(ctx context.Context, username string) ([]domain.BookingView, error)
	AllBookings(ctx context.Context) ([]domain.BookingView, error)
}

type Cache interface {
	GetJourneys(ctx context.Context) ([]domain.JourneyView, error)
	SetJourneys(ctx context.Context, journeys []domain.JourneyView) error
	InvalidateJourneys(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	schedules          repository.ScheduleRepository
	trains             repository.TrainRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type BookTicketInput struct {
	ScheduleID int64  `json:"schedule_id"`
	Username   string `json:"username"`
	SeatClass  string `json:"seat_class"`
	NumSeats   int    `json:"num_seats"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	schedules repository.ScheduleRepository,
	trains repository.TrainRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		schedules:    schedules,
		trains:       trains,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ListBookableJourneys returns the joined schedule+train view for every journey
// departing on or after asOf. The snapshot may lag behind concurrent bookings;
// availability is rechecked inside the booking transaction.
func (s *BookingService) ListBookableJourneys(ctx context.Context, asOf time.Time) ([]domain.JourneyView, error) {
	asOf = truncateToDate(asOf)
	today := truncateToDate(s.now())

	cacheable := s.cache != nil && asOf.Equal(today)
	if cacheable {
		if cached, err := s.cache.GetJourneys(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	journeys, err := s.schedules.ListJourneys(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if cacheable {
		_ = s.cache.SetJourneys(ctx, journeys)
	}
	return journeys, nil
}

func (s *BookingService) Book(ctx context.Context, input BookTicketInput) (*domain.Booking, error) {
	if input.NumSeats <= 0 {
		return nil, fmt.Errorf("%w: number of seats must be positive", domain.ErrInvalidRequest)
	}
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidRequest)
	}
	class, err := domain.ParseSeatClass(input.SeatClass)
	if err != nil {
		return nil, err
	}

	sched, err := s.schedules.GetByID(ctx, input.ScheduleID)
	if err != nil {
		return nil, err
	}
	train, err := s.trains.GetByNumber(ctx, sched.TrainNumber)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Username:       input.Username,
		ScheduleID:     input.ScheduleID,
		SeatClass:      class,
		NumSeats:       input.NumSeats,
		TotalFarePaise: fare.Total(train, class, input.NumSeats),
	}

	// The repository holds the availability check and the decrement in one
	// transaction; this loop only retries ticket-id collisions.
	for attempt := 0; attempt < maxTicketIDAttempts; attempt++ {
		booking.TicketID = generateTicketID()
		err = s.bookings.Create(ctx, booking)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return nil, err
		}
	}
	if errors.Is(err, domain.ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: ticket id generation exhausted", domain.ErrTransientFailure)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateJourneys(ctx)
	}
	if err := s.publish(ctx, "ticket_booked", booking); err != nil {
		log.Printf("publish ticket_booked for %s: %v", booking.TicketID, err)
	}
	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, ticketID, username string) error {
	if ticketID == "" {
		return fmt.Errorf("%w: ticket id is required", domain.ErrInvalidRequest)
	}

	cancelled, err := s.bookings.Cancel(ctx, ticketID, username)
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateJourneys(ctx)
	}
	if err := s.publish(ctx, "ticket_cancelled", cancelled); err != nil {
		log.Printf("publish ticket_cancelled for %s: %v", cancelled.TicketID, err)
	}
	return nil
}

func (s *BookingService) MyBookings(ctx context.Context, username string) ([]domain.BookingView, error) {
	return s.bookings.ListByUsername(ctx, username)
}

func (s *BookingService) AllBookings(ctx context.Context) ([]domain.BookingView, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		Type:           eventType,
		TicketID:       booking.TicketID,
		Username:       booking.Username,
		ScheduleID:     booking.ScheduleID,
		SeatClass:      string(booking.SeatClass),
		NumSeats:       booking.NumSeats,
		TotalFarePaise: booking.TotalFarePaise,
		BookedAt:       booking.BookedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.TicketID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.TicketID, event)
	}
	return nil
}

// generateTicketID keeps the TKT###### format of the legacy system. Uniqueness
// is enforced by the primary key on bookings; collisions are retried by Book.
func generateTicketID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("TKT%06d", n.Int64()+100000)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ BookingUseCase = (*BookingService)(nil)
