package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aiowedding/internal/models"
	"aiowedding/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary      Register an account
// @Description  Creates a couple or vendor account and emails a verification link
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        registration  body      services.RegisterInput  true  "Registration data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(in)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	case errors.Is(err, services.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters and contain uppercase, lowercase, and numbers"})
		return
	case errors.Is(err, services.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully! Please check your email to verify your account.",
		"user":    user,
	})
}

// @Summary      Verify email address
// @Tags         Users
// @Produce      json
// @Param        token      query  string  true  "Verification token"
// @Param        user_type  query  string  true  "Account role"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /verify-email [get]
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	role, err := models.ParseRole(c.Query("user_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid user type"})
		return
	}
	ok, err := h.userService.VerifyEmail(role, c.Query("token"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or already used verification link"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// @Summary      Current account
// @Tags         Users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, role := currentUser(c)
	user, err := h.userService.GetByID(userID, role)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
