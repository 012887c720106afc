package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyMuloki/zen-spa/internal/handler"
	"github.com/AndyMuloki/zen-spa/internal/model"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

// Gateway is the admin-only surface of the core services.
type Gateway interface {
	ListServices(ctx context.Context) ([]*model.Service, error)
	CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error)
	UpdateService(ctx context.Context, id int64, patch *model.ServicePatch) (*model.Service, error)
	DeleteService(ctx context.Context, id int64) error

	ListPackages(ctx context.Context) ([]*model.Package, error)
	CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error)
	UpdatePackage(ctx context.Context, id int64, patch *model.PackagePatch) (*model.Package, error)
	DeletePackage(ctx context.Context, id int64) error

	ListTherapists(ctx context.Context) ([]*model.Therapist, error)
	CreateTherapist(ctx context.Context, req *model.CreateTherapistRequest) (*model.Therapist, error)
	UpdateTherapist(ctx context.Context, id int64, patch *model.TherapistPatch) (*model.Therapist, error)
	DeleteTherapist(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context) ([]*model.Testimonial, error)
	CreateTestimonial(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id int64, patch *model.TestimonialPatch) (*model.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error

	ListBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type Handler struct {
	gateway Gateway
}

func NewHandler(gateway Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// RegisterRoutes mounts the gated endpoints. r must already enforce the admin claim.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}

	packages := r.Group("/packages")
	{
		packages.GET("", h.ListPackages)
		packages.POST("", h.CreatePackage)
		packages.PUT("/:id", h.UpdatePackage)
		packages.DELETE("/:id", h.DeletePackage)
	}

	therapists := r.Group("/therapists")
	{
		therapists.GET("", h.ListTherapists)
		therapists.POST("", h.CreateTherapist)
		therapists.PUT("/:id", h.UpdateTherapist)
		therapists.DELETE("/:id", h.DeleteTherapist)
	}

	testimonials := r.Group("/testimonials")
	{
		testimonials.GET("", h.ListTestimonials)
		testimonials.POST("", h.CreateTestimonial)
		testimonials.PUT("/:id", h.UpdateTestimonial)
		testimonials.DELETE("/:id", h.DeleteTestimonial)
	}

	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("Invalid request body", err))
		return false
	}
	return true
}

func respond(c *gin.Context, status int, data interface{}, err error) {
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(status, handler.NewSuccessResponse(data))
}

// remove runs del for the :id parameter and answers 204.
func remove(c *gin.Context, del func(ctx context.Context, id int64) error) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Services

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.gateway.ListServices(c.Request.Context())
	respond(c, http.StatusOK, services, err)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	service, err := h.gateway.CreateService(c.Request.Context(), &req)
	respond(c, http.StatusCreated, service, err)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var patch model.ServicePatch
	if !bindJSON(c, &patch) {
		return
	}
	service, err := h.gateway.UpdateService(c.Request.Context(), id, &patch)
	respond(c, http.StatusOK, service, err)
}

func (h *Handler) DeleteService(c *gin.Context) {
	remove(c, h.gateway.DeleteService)
}

// Packages

func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.gateway.ListPackages(c.Request.Context())
	respond(c, http.StatusOK, packages, err)
}

func (h *Handler) CreatePackage(c *gin.Context) {
	var req model.CreatePackageRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, err := h.gateway.CreatePackage(c.Request.Context(), &req)
	respond(c, http.StatusCreated, pkg, err)
}

func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var patch model.PackagePatch
	if !bindJSON(c, &patch) {
		return
	}
	pkg, err := h.gateway.UpdatePackage(c.Request.Context(), id, &patch)
	respond(c, http.StatusOK, pkg, err)
}

func (h *Handler) DeletePackage(c *gin.Context) {
	remove(c, h.gateway.DeletePackage)
}

// Therapists

func (h *Handler) ListTherapists(c *gin.Context) {
	therapists, err := h.gateway.ListTherapists(c.Request.Context())
	respond(c, http.StatusOK, therapists, err)
}

func (h *Handler) CreateTherapist(c *gin.Context) {
	var req model.CreateTherapistRequest
	if !bindJSON(c, &req) {
		return
	}
	therapist, err := h.gateway.CreateTherapist(c.Request.Context(), &req)
	respond(c, http.StatusCreated, therapist, err)
}

func (h *Handler) UpdateTherapist(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var patch model.TherapistPatch
	if !bindJSON(c, &patch) {
		return
	}
	therapist, err := h.gateway.UpdateTherapist(c.Request.Context(), id, &patch)
	respond(c, http.StatusOK, therapist, err)
}

func (h *Handler) DeleteTherapist(c *gin.Context) {
	remove(c, h.gateway.DeleteTherapist)
}

// Testimonials

func (h *Handler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.gateway.ListTestimonials(c.Request.Context())
	respond(c, http.StatusOK, testimonials, err)
}

func (h *Handler) CreateTestimonial(c *gin.Context) {
	var req model.CreateTestimonialRequest
	if !bindJSON(c, &req) {
		return
	}
	testimonial, err := h.gateway.CreateTestimonial(c.Request.Context(), &req)
	respond(c, http.StatusCreated, testimonial, err)
}

func (h *Handler) UpdateTestimonial(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	var patch model.TestimonialPatch
	if !bindJSON(c, &patch) {
		return
	}
	testimonial, err := h.gateway.UpdateTestimonial(c.Request.Context(), id, &patch)
	respond(c, http.StatusOK, testimonial, err)
}

func (h *Handler) DeleteTestimonial(c *gin.Context) {
	remove(c, h.gateway.DeleteTestimonial)
}

// Bookings

func (h *Handler) ListBookings(c *gin.Context) {
	filter := model.BookingFilter{Date: c.Query("date")}
	if raw := c.Query("therapistId"); raw != "" {
		id, err := handler.ParseQueryID("therapistId", raw)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		filter.TherapistID = &id
	}
	bookings, err := h.gateway.ListBookings(c.Request.Context(), filter)
	respond(c, http.StatusOK, bookings, err)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	booking, err := h.gateway.GetBooking(c.Request.Context(), id)
	respond(c, http.StatusOK, booking, err)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	remove(c, h.gateway.DeleteBooking)
}
