package handlers

import (
	"errors"
	"net/http"

	"pulsefolio/middleware"
	"pulsefolio/models"
	"pulsefolio/services/assessment"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
)

// GetQuestionsHandler serves the fixed risk questionnaire.
func GetQuestionsHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"questions": bundle.AssessmentService.Questions()})
	}
}

// SubmitAssessmentHandler scores a completed questionnaire and stamps the
// resulting risk level on the caller's profile.
func SubmitAssessmentHandler(bundle *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFromContext(c)

		var input struct {
			Answers models.QuestionnaireAnswers `json:"answers"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		level, err := bundle.AssessmentService.Submit(sess.UserID, input.Answers)
		if err != nil {
			var incomplete assessment.IncompleteAnswersError
			if errors.As(err, &incomplete) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": "Questionnaire incomplete",
					"missing": incomplete.Missing,
				})
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Assessment failed", "Please try again later.")
			return
		}

		c.JSON(http.StatusOK, gin.H{"riskLevel": level})
	}
}
