package cron

import (
	"context"
	"errors"
	"log"
	"time"

	"staybook/config"
	"staybook/services/storage"
	"staybook/services/tasks"
	"staybook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt returns the asynq connection for the purge queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitPurgeWorker runs the storage purge worker in background. The returned
// server must be shut down by the caller.
func InitPurgeWorker(store storage.StorageService) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeListingPurgeImages, handlePurgeTask(store))
	mux.HandleFunc(tasks.TypeUserPurgePhoto, handlePurgeTask(store))

	go func() {
		log.Println("[PurgeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			log.Printf("[PurgeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
			if attempts == maxAttempts {
				log.Println("[PurgeWorker] Max retry attempts reached; image purges will not run.")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handlePurgeTask(store storage.StorageService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParsePurgePayload(task)
		if err != nil {
			logger.Error("Dropping malformed purge task", zap.String("type", task.Type()), zap.Error(err))
			return errors.Join(err, asynq.SkipRetry)
		}

		var failed []error
		for _, id := range p.PublicIDs {
			if err := store.Delete(ctx, id); err != nil {
				logger.Warn("Failed to purge image",
					zap.String("type", task.Type()),
					zap.String("owner", p.OwnerID),
					zap.String("publicId", id),
					zap.Error(err),
				)
				failed = append(failed, err)
			}
		}
		if len(failed) > 0 {
			return errors.Join(failed...)
		}

		logger.Info("Purged images",
			zap.String("type", task.Type()),
			zap.String("owner", p.OwnerID),
			zap.Int("count", len(p.PublicIDs)),
			zap.String("reason", p.Reason),
		)
		return nil
	}
}
