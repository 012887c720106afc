package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndyMuloki/zen-spa/internal/handler"
	"github.com/AndyMuloki/zen-spa/internal/model"
)

// Reader is the read side of the catalog exposed to anonymous visitors.
type Reader interface {
	ListServices(ctx context.Context) ([]*model.Service, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	ListPackages(ctx context.Context) ([]*model.Package, error)
	GetPackage(ctx context.Context, id int64) (*model.Package, error)
	ListTherapists(ctx context.Context) ([]*model.Therapist, error)
	GetTherapist(ctx context.Context, id int64) (*model.Therapist, error)
	ListTestimonials(ctx context.Context) ([]*model.Testimonial, error)
}

type Handler struct {
	service Reader
}

func NewHandler(service Reader) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/services", h.ListServices)
	r.GET("/services/:id", h.GetService)
	r.GET("/packages", h.ListPackages)
	r.GET("/packages/:id", h.GetPackage)
	r.GET("/therapists", h.ListTherapists)
	r.GET("/therapists/:id", h.GetTherapist)
	r.GET("/testimonials", h.ListTestimonials)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	service, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(service))
}

func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.service.ListPackages(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(packages))
}

func (h *Handler) GetPackage(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	pkg, err := h.service.GetPackage(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(pkg))
}

func (h *Handler) ListTherapists(c *gin.Context) {
	therapists, err := h.service.ListTherapists(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(therapists))
}

func (h *Handler) GetTherapist(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	therapist, err := h.service.GetTherapist(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(therapist))
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.service.ListTestimonials(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(testimonials))
}
