// Package billrecordRepo archives upload receipts: one record per bill that
// left the panel. The records are bookkeeping for the accounts area and are
// never read back into bill computation.
package billrecordRepo

import (
	"context"
	"time"

	"hospitalpanel/database"
	"hospitalpanel/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BillRecordRepository persists and lists upload receipts.
type BillRecordRepository interface {
	Create(ctx context.Context, record models.BillRecord) (string, error)
	GetByID(ctx context.Context, recordID string) (*models.BillRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]models.BillRecord, error)
	ListByPatientID(ctx context.Context, patientID string) ([]models.BillRecord, error)
}

type mongoBillRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoBillRecordRepo returns a repository backed by the panel database.
func NewMongoBillRecordRepo() BillRecordRepository {
	coll := database.MongoClient.Database("hospitalpanel").Collection("bill_records")
	return &mongoBillRecordRepo{coll: coll}
}

func (r *mongoBillRecordRepo) Create(ctx context.Context, record models.BillRecord) (string, error) {
	if record.RecordID == "" {
		record.RecordID = uuid.New().String()
	}
	if record.UploadedAt.IsZero() {
		record.UploadedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.RecordID, nil
}

func (r *mongoBillRecordRepo) GetByID(ctx context.Context, recordID string) (*models.BillRecord, error) {
	var record models.BillRecord
	if err := r.coll.FindOne(ctx, bson.M{"record_id": recordID}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *mongoBillRecordRepo) ListRecent(ctx context.Context, limit int64) ([]models.BillRecord, error) {
	opts := options.Find().SetSort(bson.M{"uploaded_at": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BillRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoBillRecordRepo) ListByPatientID(ctx context.Context, patientID string) ([]models.BillRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BillRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
