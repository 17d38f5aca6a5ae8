package handlers

import (
	"errors"
	"net/http"

	"pulsefolio/middleware"
	userSvc "pulsefolio/services/user"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
)

// RegisterHandler creates an account and signs the new user in.
func RegisterHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input userSvc.RegistrationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		resp, err := bundle.UserService.RegisterUser(input)
		if err != nil {
			if errors.Is(err, userSvc.ErrDuplicateEmail) {
				utils.JSONError(c, http.StatusConflict, "Registration failed", err.Error())
				return
			}
			utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
			return
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// LoginHandler verifies credentials and opens a session.
func LoginHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		resp, err := bundle.UserService.AuthenticateUser(input.Email, input.Password)
		if err != nil {
			if errors.Is(err, userSvc.ErrInvalidCredentials) {
				utils.JSONError(c, http.StatusUnauthorized, "Login failed", err.Error())
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Login failed", "Please try again later.")
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// LogoutHandler closes the caller's session. Watching views observe the
// sign-out and re-evaluate.
func LogoutHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)
		if sess == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
			return
		}

		if err := bundle.UserService.SignOut(sess.ID, sess.UserID); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Logout failed", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}
