package controllers

import (
	"net/http"

	"hotelhub-backend/middleware"
	"hotelhub-backend/services"
	"hotelhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Register creates a regular user account. Staff/admin roles are only
// assigned out-of-band by an existing admin.
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := ctrl.Users.Register(services.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := ctrl.Users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	pair, err := utils.CreateTokenPair(user.ID, user.Role)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Refresh rotates a refresh token into a fresh pair. The role is re-read from
// the database so a role change takes effect on the next rotation.
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "refreshToken is required")
		return
	}

	userID, err := utils.ConsumeRefreshToken(payload.RefreshToken)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	user, err := ctrl.Users.GetByID(userID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	pair, err := utils.CreateTokenPair(user.ID, user.Role)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (ctrl *AuthController) Profile(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authorization token required")
		return
	}

	user, err := ctrl.Users.GetByID(p.ID)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, user)
}
