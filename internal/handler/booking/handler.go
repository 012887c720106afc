package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyMuloki/zen-spa/internal/handler"
	"github.com/AndyMuloki/zen-spa/internal/middleware"
	"github.com/AndyMuloki/zen-spa/internal/model"
	"github.com/AndyMuloki/zen-spa/internal/service/availability"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
)

const msgMissingAvailabilityParams = "Missing required parameters: date, serviceId/packageId, and therapistId"

type Booker interface {
	CreateBooking(ctx context.Context, sessionID string, req *model.CreateBookingRequest) (*model.Booking, error)
	ConsumeFlash(ctx context.Context, sessionID string) (*model.Flash, error)
}

type SlotResolver interface {
	AvailableSlots(ctx context.Context, q model.AvailabilityQuery) ([]string, error)
	Schedule() availability.Schedule
}

type Handler struct {
	bookings     Booker
	availability SlotResolver
	metrics      *metrics.Metrics
}

func NewHandler(bookings Booker, availability SlotResolver, metrics *metrics.Metrics) *Handler {
	return &Handler{
		bookings:     bookings,
		availability: availability,
		metrics:      metrics,
	}
}

// RegisterRoutes mounts the read endpoints on r. create carries extra
// middleware for POST /bookings, typically the rate limiter.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, create ...gin.HandlerFunc) {
	r.GET("/availability", h.Availability)
	r.GET("/slots", h.Slots)
	r.GET("/flash", h.Flash)
	r.POST("/bookings", append(create, h.CreateBooking)...)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("Invalid request body", err))
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(booking))
}

func (h *Handler) Availability(c *gin.Context) {
	h.metrics.AvailabilityRequests.Inc()

	date := c.Query("date")
	therapistRaw := c.Query("therapistId")
	serviceRaw := c.Query("serviceId")
	packageRaw := c.Query("packageId")
	if date == "" || therapistRaw == "" || (serviceRaw == "" && packageRaw == "") {
		handler.RespondError(c, apperrors.NewBadRequest(msgMissingAvailabilityParams, nil))
		return
	}

	q := model.AvailabilityQuery{Date: date}
	var err error
	if q.TherapistID, err = handler.ParseQueryID("therapistId", therapistRaw); err != nil {
		handler.RespondError(c, err)
		return
	}
	if q.ServiceID, err = optionalQueryID("serviceId", serviceRaw); err != nil {
		handler.RespondError(c, err)
		return
	}
	if q.PackageID, err = optionalQueryID("packageId", packageRaw); err != nil {
		handler.RespondError(c, err)
		return
	}

	slots, err := h.availability.AvailableSlots(c.Request.Context(), q)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

// Slots returns the schedule in effect for ?date=, ignoring bookings.
func (h *Handler) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.availability.Schedule().For(c.Query("date"))))
}

// Flash delivers and clears the caller's pending notification. data.flash is
// null when there is none.
func (h *Handler) Flash(c *gin.Context) {
	f, err := h.bookings.ConsumeFlash(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"flash": f}))
}

func optionalQueryID(name, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := handler.ParseQueryID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
