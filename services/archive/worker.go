package archive

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hospitalpanel/config"
	billrecordRepo "hospitalpanel/database/repository/billrecord"
	"hospitalpanel/models"
	"hospitalpanel/services/storage"
	"hospitalpanel/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitArchiveWorker runs the async worker in background. A nil image store
// archives receipts only.
func InitArchiveWorker(repo billrecordRepo.BillRecordRepository, images storage.BillImageStore) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBillArchive, handleBillArchiveTask(repo, images))

	go func() {
		log.Println("[ArchiveWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ArchiveWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ArchiveWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBillArchiveTask(repo billrecordRepo.BillRecordRepository, images storage.BillImageStore) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload billArchivePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			utils.GetLogger().Error("ArchiveWorker: bad payload", zap.Error(err))
			// Malformed payloads never succeed; drop instead of retrying.
			return nil
		}

		record := models.BillRecord{
			RecordID:   payload.RecordID,
			PatientID:  payload.PatientID,
			Amount:     payload.Amount,
			LineCount:  payload.LineCount,
			UploadedAt: payload.UploadedAt,
		}

		if images != nil && len(payload.Image) > 0 {
			ref, err := images.UploadBillImage(ctx, payload.Image, payload.RecordID)
			if err != nil {
				utils.GetLogger().Warn("ArchiveWorker: image archive failed", zap.Error(err))
				return err
			}
			record.ImageRef = ref
		}

		if _, err := repo.Create(ctx, record); err != nil {
			utils.GetLogger().Error("ArchiveWorker: failed to store receipt", zap.Error(err))
			return err
		}
		return nil
	}
}
