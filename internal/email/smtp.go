package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
)

const confirmationSubject = "Your Zen Spa appointment is booked"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<p>Hi {{.FirstName}},</p>
<p>Your appointment on <strong>{{.Date}}</strong> at <strong>{{.Time}}</strong> is confirmed.</p>
{{if .Notes}}<p>Your notes: {{.Notes}}</p>{{end}}
<p>Booking reference: #{{.ID}}</p>
<p>We look forward to seeing you.</p>`))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPService struct {
	dialer Dialer
	from   string
	cb     *gobreaker.CircuitBreaker
	logger *logger.Logger
}

func NewSMTPService(host string, port int, username, password, from string, logger *logger.Logger) *SMTPService {
	return NewService(gomail.NewDialer(host, port, username, password), from, logger)
}

func NewService(dialer Dialer, from string, logger *logger.Logger) *SMTPService {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &SMTPService{
		dialer: dialer,
		from:   from,
		cb:     cb,
		logger: logger,
	}
}

func (s *SMTPService) SendBookingConfirmation(ctx context.Context, booking *model.Booking) error {
	body, err := RenderConfirmation(booking)
	if err != nil {
		return err
	}
	return s.SendCustom(ctx, booking.Email, confirmationSubject, body)
}

func (s *SMTPService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", content)

	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.dialer.DialAndSend(m)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// RenderConfirmation builds the HTML body of a booking confirmation.
func RenderConfirmation(booking *model.Booking) (string, error) {
	data := struct {
		ID        int64
		FirstName string
		Date      string
		Time      string
		Notes     string
	}{
		ID:        booking.ID,
		FirstName: booking.FirstName,
		Date:      booking.Date,
		Time:      booking.Time,
	}
	if booking.Notes != nil {
		data.Notes = *booking.Notes
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render confirmation: %w", err)
	}
	return buf.String(), nil
}
