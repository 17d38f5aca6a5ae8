package handlers

import (
	"errors"
	"net/http"

	"pulsefolio/middleware"
	"pulsefolio/models"
	analysisSvc "pulsefolio/services/analysis"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
)

// DashboardSignalsHandler serves the active signals matching the caller's
// risk tier.
func DashboardSignalsHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		signals, err := bundle.AnalysisService.DashboardSignals(sess.UserID)
		if err != nil {
			if errors.Is(err, analysisSvc.ErrAssessmentRequired) {
				utils.JSONError(c, http.StatusConflict, "Assessment required", err.Error())
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load signals", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"signals": signals})
	}
}

// ListSignalsHandler serves every signal regardless of status (analyst view).
func ListSignalsHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		signals, err := bundle.AnalysisService.ListAllSignals()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load signals", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"signals": signals})
	}
}

// CreateSignalHandler stores a new trading signal.
func CreateSignalHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input analysisSvc.SignalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		sig, err := bundle.AnalysisService.CreateSignal(input)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Failed to create signal", err.Error())
			return
		}
		c.JSON(http.StatusCreated, sig)
	}
}

// UpdateSignalHandler rewrites a signal's authored fields.
func UpdateSignalHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input analysisSvc.SignalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		sig, err := bundle.AnalysisService.UpdateSignal(c.Param("id"), input)
		if err != nil {
			if errors.Is(err, analysisSvc.ErrNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Signal not found", "")
				return
			}
			utils.JSONError(c, http.StatusBadRequest, "Failed to update signal", err.Error())
			return
		}
		c.JSON(http.StatusOK, sig)
	}
}

// UpdateSignalStatusHandler moves a signal through its lifecycle.
func UpdateSignalStatusHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status models.SignalStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		sig, err := bundle.AnalysisService.UpdateSignalStatus(c.Param("id"), input.Status)
		if err != nil {
			if errors.Is(err, analysisSvc.ErrNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Signal not found", "")
				return
			}
			utils.JSONError(c, http.StatusBadRequest, "Failed to update signal status", err.Error())
			return
		}
		c.JSON(http.StatusOK, sig)
	}
}

// DeleteSignalHandler removes a signal.
func DeleteSignalHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bundle.AnalysisService.DeleteSignal(c.Param("id")); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete signal", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Signal deleted"})
	}
}
