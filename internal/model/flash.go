package model

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification delivered on the next read and then cleared.
type Flash struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func BookingConfirmedFlash() Flash {
	return Flash{
		Type:        FlashSuccess,
		Title:       "Booking Successful",
		Description: "Your appointment has been booked!",
	}
}
