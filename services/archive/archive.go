// Package archive keeps upload receipts. Every bill that leaves the panel is
// recorded asynchronously: the upload response never waits on the archive.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hospitalpanel/config"
	"hospitalpanel/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeBillArchive = "bill:archive"

type billArchivePayload struct {
	RecordID   string    `json:"recordId"`
	PatientID  string    `json:"patientId"`
	Amount     float64   `json:"amount"`
	LineCount  int       `json:"lineCount"`
	Image      []byte    `json:"image,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Enqueuer schedules archive tasks on the queue. It satisfies the bill
// engine's Archiver interface.
type Enqueuer struct {
	client        *asynq.Client
	archiveImages bool
}

// NewEnqueuer connects an asynq client to the queue Redis DB.
func NewEnqueuer() *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
		archiveImages: config.AppConfig.ArchiveImages,
	}
}

// BillUploaded enqueues a receipt for the just-uploaded bill. The rendered
// image rides along only when image archiving is enabled.
func (e *Enqueuer) BillUploaded(ctx context.Context, draft models.BillDraft, image []byte, amount float64) error {
	payload := billArchivePayload{
		RecordID:   uuid.NewString(),
		PatientID:  draft.Patient.PatientID,
		Amount:     amount,
		LineCount:  len(draft.LineItems),
		UploadedAt: time.Now(),
	}
	if e.archiveImages {
		payload.Image = image
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("archive: failed to marshal payload: %w", err)
	}
	task := asynq.NewTask(TypeBillArchive, data)
	if _, err := e.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("archive: failed to enqueue: %w", err)
	}
	return nil
}

// Close releases the queue connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
