package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, dto.ErrorListResponse{Error: err.Error()})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
		default:
			c.Error(err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Message: "verification code sent to your email",
	})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, service.ErrInvalidOTP) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "email verified"})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	if err := h.svc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	// Same response whether or not the address is registered.
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "if the email is registered, a new code was sent"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	user, token, expiresAt, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorListResponse{Error: err.Error()})
		case errors.Is(err, service.ErrNotVerified):
			c.JSON(http.StatusForbidden, dto.ErrorListResponse{Error: err.Error()})
		default:
			c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	})
}
