package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
)

type stubDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *stubDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestRenderConfirmation(t *testing.T) {
	notes := "<b>allergic to lavender</b>"
	body, err := RenderConfirmation(&model.Booking{ID: 12, FirstName: "Jane", Date: "2024-06-01", Time: "9:00 AM", Notes: &notes})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Jane")
	assert.Contains(t, body, "2024-06-01")
	assert.Contains(t, body, "9:00 AM")
	assert.Contains(t, body, "#12")
	assert.Contains(t, body, "&lt;b&gt;allergic to lavender&lt;/b&gt;", "notes are escaped")

	body, err = RenderConfirmation(&model.Booking{ID: 1, FirstName: "Jane"})
	require.NoError(t, err)
	assert.NotContains(t, body, "Your notes")
}

func TestSendBookingConfirmation(t *testing.T) {
	dialer := &stubDialer{}
	svc := NewService(dialer, "bookings@zenspa.local", logger.Nop())

	err := svc.SendBookingConfirmation(context.Background(), &model.Booking{ID: 3, FirstName: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, dialer.sent[0].GetHeader("To"))
	assert.Equal(t, []string{confirmationSubject}, dialer.sent[0].GetHeader("Subject"))
}

func TestSendCustom_BreakerOpensAfterFailures(t *testing.T) {
	dialer := &stubDialer{err: errors.New("connection refused")}
	svc := NewService(dialer, "bookings@zenspa.local", logger.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Error(t, svc.SendCustom(ctx, "a@b.co", "s", "c"))
	}

	// Open breaker: the dialer is not called even once it recovers.
	dialer.err = nil
	assert.Error(t, svc.SendCustom(ctx, "a@b.co", "s", "c"))
	assert.Empty(t, dialer.sent)
}

func TestSendCustom_CanceledContext(t *testing.T) {
	dialer := &stubDialer{}
	svc := NewService(dialer, "bookings@zenspa.local", logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.SendCustom(ctx, "a@b.co", "s", "c"), context.Canceled)
	assert.Empty(t, dialer.sent)
}
