package handlers

import (
	"errors"
	"net/http"

	"pulsefolio/middleware"
	analysisSvc "pulsefolio/services/analysis"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
)

// DashboardAnalysesHandler serves the published posts matching the caller's
// risk tier.
func DashboardAnalysesHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		analyses, err := bundle.AnalysisService.DashboardAnalyses(sess.UserID)
		if err != nil {
			if errors.Is(err, analysisSvc.ErrAssessmentRequired) {
				utils.JSONError(c, http.StatusConflict, "Assessment required", err.Error())
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load analyses", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"analyses": analyses})
	}
}

// AnalysesByDayHandler serves published posts for one calendar day
// (the shared calendar view).
func AnalysesByDayHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		analyses, err := bundle.AnalysisService.AnalysesForDay(c.Param("date"))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"analyses": analyses})
	}
}

// GetAnalysisHandler serves one post by ID (analyst surface).
func GetAnalysisHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := bundle.AnalysisService.GetAnalysis(c.Param("id"))
		if err != nil {
			if errors.Is(err, analysisSvc.ErrNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Analysis not found", "")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load analysis", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// ListAnalysesHandler serves every post including scheduled ones (analyst
// calendar).
func ListAnalysesHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		analyses, err := bundle.AnalysisService.ListAllAnalyses()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load analyses", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"analyses": analyses})
	}
}

// CreateAnalysisHandler stores a new analyst post.
func CreateAnalysisHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		var input analysisSvc.AnalysisInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		a, err := bundle.AnalysisService.CreateAnalysis(sess.UserID, input)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Failed to create analysis", err.Error())
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

// UpdateAnalysisHandler rewrites an existing post.
func UpdateAnalysisHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input analysisSvc.AnalysisInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		a, err := bundle.AnalysisService.UpdateAnalysis(c.Param("id"), input)
		if err != nil {
			if errors.Is(err, analysisSvc.ErrNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Analysis not found", "")
				return
			}
			utils.JSONError(c, http.StatusBadRequest, "Failed to update analysis", err.Error())
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// DeleteAnalysisHandler removes a post.
func DeleteAnalysisHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bundle.AnalysisService.DeleteAnalysis(c.Param("id")); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete analysis", "Please try again later.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted"})
	}
}
