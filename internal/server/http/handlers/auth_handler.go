package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/dto"
	"github.com/polkiloo/bankportal/internal/server/http/middleware"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// AuthHandler processes sign in, sign up and session endpoints.
type AuthHandler struct {
	facade       SessionFacade
	ttl          time.Duration
	secureCookie bool
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade SessionFacade, ttl time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{facade: facade, ttl: ttl, secureCookie: secureCookie}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.facade.Login(c.Request.Context(), model.Credentials{
		Username: req.Username,
		Password: req.Password,
		MFACode:  req.MFACode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetSessionCookie(c, res.Cookie, h.ttl, h.secureCookie)
	c.Header("Authorization", "Bearer "+res.Cookie)
	c.JSON(http.StatusOK, dto.SessionResponse{User: res.Session.User, Landing: res.Landing})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.facade.Register(c.Request.Context(), model.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{User: res.User, MFAQRCode: res.MFAQRCode})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.facade.Logout(c.Request.Context(), session); err != nil {
		respondError(c, err)
		return
	}
	middleware.ClearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, dto.LandingResponse{Landing: usecase.PathLogin})
}

// Me handles GET /api/auth/me. It is the bootstrap call of the portal: the
// gateway token is validated and refreshed once when the gateway rejects it.
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := h.facade.Restore(c.Request.Context(), c.GetString(middleware.CookieContextKey))
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			middleware.ClearSessionCookie(c, h.secureCookie)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{User: session.User, Landing: usecase.Landing(&session.User)})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	refreshed, err := h.facade.RefreshSession(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			_ = h.facade.Logout(c.Request.Context(), session)
			middleware.ClearSessionCookie(c, h.secureCookie)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{User: refreshed.User, Landing: usecase.Landing(&refreshed.User)})
}

// Landing handles GET /api/session/landing.
func (h *AuthHandler) Landing(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.LandingResponse{Landing: usecase.Landing(user)})
}
