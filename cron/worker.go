package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"pulsefolio/config"
	analysisSvc "pulsefolio/services/analysis"
	"pulsefolio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt returns the Redis connection the task queue runs on. It is a
// separate DB from session storage.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartWorker runs the queue server that publishes scheduled posts at their
// publish date. Shutdown stops it gracefully.
func StartWorker(svc analysisSvc.AnalysisService) *asynq.Server {
	srv := asynq.NewServer(QueueRedisOpt(), asynq.Config{
		Concurrency: 5,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(analysisSvc.TypeAnalysisPublish, func(ctx context.Context, t *asynq.Task) error {
		var payload analysisSvc.PublishPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid publish payload: %v: %w", err, asynq.SkipRetry)
		}
		return svc.PublishScheduled(payload.AnalysisID)
	})

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Fatal("queue worker failed", zap.Error(err))
		}
	}()

	utils.GetLogger().Info("publish worker started")
	return srv
}
