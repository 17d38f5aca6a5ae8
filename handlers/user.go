package handlers

import (
	"errors"
	"net/http"

	"pulsefolio/middleware"
	"pulsefolio/models"
	userSvc "pulsefolio/services/user"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
)

// GetMeHandler returns the caller's own profile.
func GetMeHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)
		u, err := bundle.UserService.GetUserByID(sess.UserID)
		if err != nil {
			if errors.Is(err, userSvc.ErrUserNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Profile not found", "")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load profile", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// UpdateMeHandler applies a partial profile update for the caller.
func UpdateMeHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		var input struct {
			InvestmentBracket string `json:"investmentBracket"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		u, err := bundle.UserService.UpdateUser(models.User{
			ID:                sess.UserID,
			InvestmentBracket: input.InvestmentBracket,
		})
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// UpdatePasswordHandler changes the caller's password after verifying the
// current one.
func UpdatePasswordHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		var input struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		err := bundle.UserService.UpdateUserPassword(sess.UserID, input.CurrentPassword, input.NewPassword)
		if err != nil {
			if errors.Is(err, userSvc.ErrIncorrectPassword) {
				utils.JSONError(c, http.StatusForbidden, "Password update failed", err.Error())
				return
			}
			utils.JSONError(c, http.StatusBadRequest, "Password update failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
