package handlers

import (
	"errors"
	"net/http"

	"ontheway-api/identity"
	"ontheway-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RegisterRequest struct {
	Uname      string `json:"uname" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	ProfilePic string `json:"profilepic"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new (non-admin) account.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := identitySvc().Register(identity.RegisterParams{
		Uname:      req.Uname,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
		Phone:      req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Uname, email and password are required."})
		case errors.Is(err, identity.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists..."})
		default:
			log.Error().Err(err).Msg("register failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating account."})
		}
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating account."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Success", "token": token})
}

// Login verifies credentials and returns the account plus a session token.
// An unknown email and a wrong password differ in status code only.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := identitySvc().Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found..."})
		case errors.Is(err, identity.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Credentials.."})
		default:
			log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in."})
		}
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token, "message": "Success"})
}

type UpdateProfileRequest struct {
	CurrentEmail string  `json:"currentEmail"`
	Uname        *string `json:"uname"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Pic          *string `json:"pic"`
}

// UpdateProfile applies a partial profile update keyed by current email.
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := identitySvc().UpdateProfile(identity.ProfileUpdate{
		CurrentEmail: req.CurrentEmail,
		Uname:        req.Uname,
		Email:        req.Email,
		Phone:        req.Phone,
		Pic:          req.Pic,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current email is required."})
		case errors.Is(err, identity.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "This email is already in use by another account."})
		case errors.Is(err, identity.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		default:
			log.Error().Err(err).Msg("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating profile."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully.", "user": user})
}

type ChangePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword rotates a password after checking the current one.
func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := identitySvc().ChangePassword(req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email, current password and new password are required."})
		case errors.Is(err, identity.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect."})
		case errors.Is(err, identity.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		default:
			log.Error().Err(err).Msg("password change failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error changing password."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}
