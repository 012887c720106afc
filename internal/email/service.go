package email

import (
	"context"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
