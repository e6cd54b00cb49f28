// Package bill is the workflow engine behind the accounts area: an editable
// line-item draft, derived CGST/SGST totals, a confirm/edit lock, and the
// render-and-upload step that turns a confirmed draft into a submitted bill.
package bill

import (
	"context"
	"fmt"
	"time"

	"hospitalpanel/models"
	"hospitalpanel/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field names a mutable line item field.
type Field string

const (
	FieldService     Field = "service"
	FieldQuantity    Field = "quantity"
	FieldUnitCharges Field = "unitCharges"
)

// BillingAPI is the slice of the upstream client the engine needs.
type BillingAPI interface {
	UploadPatientBill(ctx context.Context, image []byte, patientID, billAmount string) error
}

// Renderer captures the bill view as a raster image. Treated as a black box:
// it returns PNG bytes or fails with a capture error.
type Renderer interface {
	Render(draft models.BillDraft) ([]byte, error)
}

// Archiver is notified after a successful upload. Best effort; a nil Archiver
// disables archiving.
type Archiver interface {
	BillUploaded(ctx context.Context, draft models.BillDraft, image []byte, amount float64) error
}

// Engine owns bill drafts from creation to upload.
type Engine struct {
	Store    DraftStore
	API      BillingAPI
	Renderer Renderer
	Archiver Archiver
}

// CreateDraft starts a new unconfirmed draft with one blank line item, seeded
// with the patient and hospital blocks from the preceding patient lookup.
func (e *Engine) CreateDraft(ctx context.Context, patient models.BillPatient, hospital models.BillHospital) (*models.BillDraft, error) {
	draft := models.BillDraft{
		ID:        uuid.NewString(),
		Patient:   patient,
		Hospital:  hospital,
		LineItems: []models.LineItem{{}},
		CreatedAt: time.Now(),
	}
	if err := e.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetDraft loads a draft by ID.
func (e *Engine) GetDraft(ctx context.Context, draftID string) (*models.BillDraft, error) {
	draft, err := e.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNoDraft
	}
	return draft, nil
}

// AddLineItem appends one blank line item. Draft state only.
func (e *Engine) AddLineItem(ctx context.Context, draftID string) (*models.BillDraft, error) {
	return e.mutate(ctx, draftID, func(draft *models.BillDraft) error {
		draft.LineItems = append(draft.LineItems, models.LineItem{})
		return nil
	})
}

// RemoveLineItem removes the item at index. Draft state only.
func (e *Engine) RemoveLineItem(ctx context.Context, draftID string, index int) (*models.BillDraft, error) {
	return e.mutate(ctx, draftID, func(draft *models.BillDraft) error {
		if index < 0 || index >= len(draft.LineItems) {
			return ErrIndexOutOfRange
		}
		draft.LineItems = append(draft.LineItems[:index], draft.LineItems[index+1:]...)
		return nil
	})
}

// UpdateLineItem replaces one field of the item at index, leaving the others
// unchanged. The value is stored verbatim; numeric coercion happens only when
// amounts are computed.
func (e *Engine) UpdateLineItem(ctx context.Context, draftID string, index int, field Field, value string) (*models.BillDraft, error) {
	return e.mutate(ctx, draftID, func(draft *models.BillDraft) error {
		if index < 0 || index >= len(draft.LineItems) {
			return ErrIndexOutOfRange
		}
		switch field {
		case FieldService:
			draft.LineItems[index].Service = value
		case FieldQuantity:
			draft.LineItems[index].Quantity = value
		case FieldUnitCharges:
			draft.LineItems[index].UnitCharges = value
		default:
			return ErrUnknownField
		}
		return nil
	})
}

// mutate applies fn to an unconfirmed draft and persists the result.
func (e *Engine) mutate(ctx context.Context, draftID string, fn func(*models.BillDraft) error) (*models.BillDraft, error) {
	draft, err := e.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Confirmed {
		return nil, ErrBillConfirmed
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := e.Store.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Confirm locks the draft. No data transformation and no snapshot: totals
// keep being recomputed from the line items as they stand.
func (e *Engine) Confirm(ctx context.Context, draftID string) (*models.BillDraft, error) {
	draft, err := e.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	draft.Confirmed = true
	if err := e.Store.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Edit unlocks a confirmed draft. Nothing is reverted; edits made before
// confirming are retained.
func (e *Engine) Edit(ctx context.Context, draftID string) (*models.BillDraft, error) {
	draft, err := e.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	draft.Confirmed = false
	if err := e.Store.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Upload renders the confirmed bill to a PNG, posts it with the patient
// identifier and computed total, and discards the draft on success. On any
// failure the draft stays confirmed and unaltered so the operator can retry.
func (e *Engine) Upload(ctx context.Context, draftID string) error {
	draft, err := e.GetDraft(ctx, draftID)
	if err != nil {
		return err
	}
	if !draft.Confirmed {
		return ErrBillNotConfirmed
	}

	image, err := e.Renderer.Render(*draft)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	amount := Total(draft.LineItems)
	if err := e.API.UploadPatientBill(ctx, image, draft.Patient.PatientID, FormatAmount(amount)); err != nil {
		return err
	}

	if e.Archiver != nil {
		if err := e.Archiver.BillUploaded(ctx, *draft, image, amount); err != nil {
			utils.GetLogger().Warn("Upload: archive enqueue failed", zap.Error(err))
		}
	}

	if err := e.Store.Delete(ctx, draftID); err != nil {
		utils.GetLogger().Warn("Upload: failed to discard draft", zap.Error(err))
	}
	return nil
}
