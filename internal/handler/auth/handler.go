package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndyMuloki/zen-spa/internal/handler"
	"github.com/AndyMuloki/zen-spa/internal/middleware"
	"github.com/AndyMuloki/zen-spa/internal/model"
	authService "github.com/AndyMuloki/zen-spa/internal/service/auth"
	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
	"github.com/AndyMuloki/zen-spa/pkg/validator"
)

type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (*authService.Session, error)
	IsAdmin(token string) bool
	Logout(token string)
}

type Handler struct {
	service      Authenticator
	validate     *validator.Validator
	cookieSecure bool
}

func NewHandler(service Authenticator, validate *validator.Validator, cookieSecure bool) *Handler {
	return &Handler{
		service:      service,
		validate:     validate,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes mounts login, logout and session on r. login carries extra
// middleware for POST /login.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, login ...gin.HandlerFunc) {
	r.POST("/login", append(login, h.Login)...)
	r.POST("/logout", h.Logout)
	r.GET("/session", h.Session)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("Invalid request body", err))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		handler.RespondError(c, err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookie, session.Token, maxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, handler.NewMessageResponse("Login successful"))
}

func (h *Handler) Logout(c *gin.Context) {
	h.service.Logout(middleware.Token(c))

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookie, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, handler.NewMessageResponse("Logout successful"))
}

func (h *Handler) Session(c *gin.Context) {
	status := model.SessionStatus{IsAdmin: h.service.IsAdmin(middleware.Token(c))}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(status))
}
