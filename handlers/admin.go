package handlers

import (
	"errors"
	"net/http"

	"pulsefolio/models"
	userSvc "pulsefolio/services/user"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
)

// ListUsersHandler serves every profile (admin surface).
func ListUsersHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := bundle.UserService.GetAllUsers()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list users", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// UpdateUserRoleHandler assigns a new role. The role change is broadcast so
// every active session of the target user re-evaluates immediately.
func UpdateUserRoleHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Role models.Role `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		u, err := bundle.UserService.UpdateUserRole(c.Param("id"), input.Role)
		if err != nil {
			if errors.Is(err, userSvc.ErrUserNotFound) {
				utils.JSONError(c, http.StatusNotFound, "User not found", "")
				return
			}
			utils.JSONError(c, http.StatusBadRequest, "Failed to update role", err.Error())
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// DeleteUserHandler removes a user account (admin surface).
func DeleteUserHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bundle.UserService.DeleteUser(c.Param("id")); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete user", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
