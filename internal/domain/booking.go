package domain

import (
	"fmt"
	"time"
)

type SeatClass string

const (
	SeatClassAC      SeatClass = "AC"
	SeatClassSleeper SeatClass = "Sleeper"
)

func ParseSeatClass(s string) (SeatClass, error) {
	switch SeatClass(s) {
	case SeatClassAC:
		return SeatClassAC, nil
	case SeatClassSleeper:
		return SeatClassSleeper, nil
	default:
		return "", fmt.Errorf("%w: unknown seat class %q", ErrInvalidRequest, s)
	}
}

type Booking struct {
	TicketID       string
	Username       string
	ScheduleID     int64
	SeatClass      SeatClass
	NumSeats       int
	TotalFarePaise int64
	BookedAt       time.Time
}

// BookingView is the booking joined with its train and schedule for reports.
type BookingView struct {
	TicketID        string
	Username        string
	TrainName       string
	Source          string
	Destination     string
	DepartureDate   time.Time
	DepartureTime   string
	JourneyDuration string
	SeatClass       SeatClass
	NumSeats        int
	TotalFarePaise  int64
	BookedAt        time.Time
}
