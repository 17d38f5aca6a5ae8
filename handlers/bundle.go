package handlers

import (
	"pulsefolio/services/access"
	analysisSvc "pulsefolio/services/analysis"
	"pulsefolio/services/assessment"
	"pulsefolio/services/session"
	userSvc "pulsefolio/services/user"
)

// HandlerBundle wires every service the HTTP layer depends on. Built once in
// main and handed to route registration.
type HandlerBundle struct {
	UserService       userSvc.UserService
	AssessmentService assessment.AssessmentService
	AnalysisService   analysisSvc.AnalysisService
	Sessions          *session.Manager
	Gate              *access.Gate
}
