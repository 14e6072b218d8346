package email

import (
	"context"
	"fmt"

	"github.com/Korolev91/estatehub/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %s (property %d, %s - %s)\n",
		event.ClientEmail, event.Type, event.Reference, event.PropertyID,
		event.CheckIn.Format("2006-01-02"), event.CheckOut.Format("2006-01-02"))
	return nil
}
