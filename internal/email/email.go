package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/railbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	fmt.Printf("notify %s: %s ticket %s, schedule %d, %d %s seat(s)\n",
		event.Username, event.Type, event.TicketID, event.ScheduleID, event.NumSeats, event.SeatClass)
	return nil
}
