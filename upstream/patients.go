package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"hospitalpanel/models"
)

// GetPatientDetails fetches a patient's profile and appointment history by
// phone number. The result seeds the hospital and patient blocks of a bill.
func (c *Client) GetPatientDetails(ctx context.Context, phoneNumber string) (*models.PatientLookup, error) {
	var resp struct {
		Success bool                 `json:"success"`
		Message string               `json:"message"`
		Data    models.PatientLookup `json:"data"`
	}
	query := url.Values{"phoneNumber": {phoneNumber}}
	if err := c.getJSON(ctx, "/hospital/patients/getPatientDetails", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: 200, Message: resp.Message, Status: "error"}
	}
	return &resp.Data, nil
}

// UploadPatientBill submits a rendered bill image for a patient as a
// multipart form with the computed bill amount.
func (c *Client) UploadPatientBill(ctx context.Context, image []byte, patientID, billAmount string) error {
	return c.postMultipart(ctx, "/hospital/patients/uploadPatientBill", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("billFile", "bill.png")
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, bytes.NewReader(image)); err != nil {
			return err
		}
		if err := w.WriteField("patientId", patientID); err != nil {
			return err
		}
		if err := w.WriteField("billAmount", billAmount); err != nil {
			return fmt.Errorf("writing billAmount: %w", err)
		}
		return nil
	}, nil)
}
