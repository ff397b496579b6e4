package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aiowedding/internal/models"
	"aiowedding/internal/services"
)

type PasswordResetHandler struct {
	resetService services.PasswordResetService
}

func NewPasswordResetHandler(resetService services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

type sendCodeRequest struct {
	Email    string `json:"email" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
}

type verifyCodeRequest struct {
	Email            string `json:"email" binding:"required"`
	UserType         string `json:"user_type" binding:"required"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	UserType    string `json:"user_type" binding:"required"`
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// @Summary      Send a password reset code
// @Description  Emails a 6-digit verification code to the account address
// @Tags         PasswordReset
// @Accept       json
// @Produce      json
// @Param        request  body      sendCodeRequest  true  "Account address and role"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /password-reset/send-code [post]
func (h *PasswordResetHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please enter your email address.")
		return
	}
	role, err := models.ParseRole(req.UserType)
	if err != nil {
		fail(c, http.StatusBadRequest, "Please select a valid user type.")
		return
	}

	err = h.resetService.RequestCode(req.Email, role)
	switch {
	case err == nil:
		ok(c, "A verification code has been sent to your email address. Please check your inbox (and spam folder).")
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, "No account found with that email address.")
	case errors.Is(err, services.ErrNotificationFailed):
		// the code is persisted; a resend issues a fresh one
		fail(c, http.StatusBadGateway, "Could not send the verification email. Please try again.")
	default:
		fail(c, http.StatusInternalServerError, "Server error occurred. Please try again later.")
	}
}

// @Summary      Verify a password reset code
// @Description  Exchanges a valid code for a single-use reset token
// @Tags         PasswordReset
// @Accept       json
// @Produce      json
// @Param        request  body      verifyCodeRequest  true  "Code to verify"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /password-reset/verify-code [post]
func (h *PasswordResetHandler) VerifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please enter the verification code.")
		return
	}
	role, err := models.ParseRole(req.UserType)
	if err != nil {
		fail(c, http.StatusBadRequest, "Please select a valid user type.")
		return
	}

	token, err := h.resetService.VerifyCode(req.Email, role, req.VerificationCode)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Code verified. You can now set a new password.",
			"reset_token": token,
		})
	case errors.Is(err, services.ErrInvalidOrExpiredCode):
		fail(c, http.StatusBadRequest, "Invalid or expired verification code.")
	default:
		fail(c, http.StatusInternalServerError, "Server error occurred. Please try again later.")
	}
}

// @Summary      Reset the password
// @Description  Consumes the reset token and stores the new password
// @Tags         PasswordReset
// @Accept       json
// @Produce      json
// @Param        request  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /password-reset/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all required fields.")
		return
	}
	role, err := models.ParseRole(req.UserType)
	if err != nil {
		fail(c, http.StatusBadRequest, "Please select a valid user type.")
		return
	}

	err = h.resetService.ResetPassword(req.Email, role, req.ResetToken, req.NewPassword)
	switch {
	case err == nil:
		ok(c, "Your password has been reset. You can now log in with your new password.")
	case errors.Is(err, services.ErrWeakPassword):
		fail(c, http.StatusBadRequest, "Password must be at least 8 characters and contain uppercase, lowercase, and numbers.")
	case errors.Is(err, services.ErrInvalidOrExpiredToken):
		fail(c, http.StatusBadRequest, "Invalid or expired reset token.")
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, "No account found with that email address.")
	default:
		fail(c, http.StatusInternalServerError, "Server error occurred. Please try again later.")
	}
}

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
