package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulsefolio/config"
	"pulsefolio/cron"
	"pulsefolio/database"
	analysisRepo "pulsefolio/database/repository/analysis"
	signalRepo "pulsefolio/database/repository/signal"
	userRepo "pulsefolio/database/repository/user"
	"pulsefolio/handlers"
	"pulsefolio/routes"
	"pulsefolio/services/access"
	analysisSvc "pulsefolio/services/analysis"
	"pulsefolio/services/assessment"
	"pulsefolio/services/session"
	userSvc "pulsefolio/services/user"
	"pulsefolio/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitSessionCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories.
	users := userRepo.NewMongoUserRepo()
	analyses := analysisRepo.NewMongoAnalysisRepo()
	signals := signalRepo.NewMongoSignalRepo()

	// Session state and the event broker every protected view listens on.
	broker := access.NewBroker()
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
	sessions := session.NewManager(utils.GetSessionCacheClient(), sessionTTL, broker)
	gate := access.NewGate(users)

	// Task queue for scheduled publishing.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()

	// Services.
	analysisService := &analysisSvc.DefaultAnalysisService{
		Analyses: analyses,
		Signals:  signals,
		Users:    users,
		Queue:    queueClient,
	}
	bundle := &handlers.HandlerBundle{
		UserService:       &userSvc.DefaultUserService{Repo: users, Sessions: sessions},
		AssessmentService: &assessment.DefaultAssessmentService{Repo: users, Notifier: sessions},
		AnalysisService:   analysisService,
		Sessions:          sessions,
		Gate:              gate,
	}

	worker := cron.StartWorker(analysisService)
	utils.StartHealthMonitor(map[string]utils.HealthCheck{
		"mongo": func(ctx context.Context) error {
			return database.MongoClient.Ping(ctx, nil)
		},
		"sessions": func(ctx context.Context) error {
			return utils.GetSessionCacheClient().Ping(ctx).Err()
		},
	})

	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, bundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
