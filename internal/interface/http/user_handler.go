package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/internal/interface/middleware"
	"github.com/oksasatya/go-todo-cards/pkg/response"
	"github.com/oksasatya/go-todo-cards/pkg/validation"
)

type UserHandler struct {
	Svc          *application.UserService
	Logger       *logrus.Logger
	CookieSecure bool
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, CookieSecure: cookieSecure}
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Nickname string `json:"nickname" binding:"required,nickname"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Nickname string `json:"nickname" binding:"required,nickname"`
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.SignUp(c.Request.Context(), application.SignUpRequest{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "signed up", nil)
}

func (h *UserHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.setAccessCookie(c, res.AccessToken, int(time.Until(res.ExpiresAt).Seconds()))
	response.Success(c, http.StatusOK, res, "signed in", nil)
}

func (h *UserHandler) SignOut(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.Svc.SignOut(c.Request.Context(), p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.setAccessCookie(c, "", -1)
	response.Success[any](c, http.StatusOK, map[string]any{"signed_out": true}, "signed out", nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), p.UserID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUserProfile(c.Request.Context(), p, userID, req.Nickname)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

func (h *UserHandler) setAccessCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, token, maxAge, "/", "", h.CookieSecure, true)
}
