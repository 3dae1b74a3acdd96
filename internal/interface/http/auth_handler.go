package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/pkg/response"
	"github.com/dforero/ecobarrio-api/pkg/validation"
)

// AuthHandler exposes registration, login, and the credential lifecycle.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Role         int    `json:"role"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		Neighborhood: req.Neighborhood,
		Phone:        req.Phone,
		Address:      req.Address,
		RoleID:       req.Role,
	})
	if err != nil {
		if errors.Is(err, application.ErrConflict) {
			response.Error[any](c, http.StatusConflict, "username or email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to register user", nil)
		return
	}
	response.Success(c, http.StatusCreated, u.Public(), "user registered", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, exp, u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			// Same status and message for unknown email and wrong password.
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to log in", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":     token,
		"user_info": u.Public(),
	}, "login successful", map[string]any{"expires_at": exp})
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ChangePassword PUT /api/auth/users/:id/password (bearer token required).
// Only the account owner may change their password: the token identity must
// match the path parameter.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	targetID := c.Param("id")
	callerID := c.GetString("userID")
	if callerID == "" || callerID != targetID {
		response.Error[any](c, http.StatusForbidden, "cannot change another user's password", nil)
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), targetID, req.Password); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("change password failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to change password", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password updated", nil)
}

type sendResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendResetPasswordEmail POST /api/auth/send-reset-password-email
func (h *AuthHandler) SendResetPasswordEmail(c *gin.Context) {
	var req sendResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "reset email sent", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrDelivery):
		response.Error[any](c, http.StatusInternalServerError, "failed to deliver reset email", nil)
	default:
		h.Logger.WithError(err).Error("reset request failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to process reset request", nil)
	}
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword POST /api/auth/reset-password redeems a reset token exactly
// once and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, application.ErrInvalidResetToken) {
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
			return
		}
		h.Logger.WithError(err).Error("reset password failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to reset password", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}

// GetProfile GET /api/auth/profile (bearer token required)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile", nil)
}

type updateProfileRequest struct {
	Neighborhood string `json:"neighborhood"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// UpdateProfile PUT /api/auth/profile (bearer token required)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Neighborhood: req.Neighborhood,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update profile failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile updated", nil)
}
