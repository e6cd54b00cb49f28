package models

import "time"

// LineItem is one billed service on a draft. Quantity and unit charges are
// kept as the strings the operator typed; blank or unparsable values count as
// zero at the point of computation only, the stored value is never coerced.
type LineItem struct {
	Service     string `json:"service"`
	Quantity    string `json:"quantity"`
	UnitCharges string `json:"unitCharges"`
}

// BillDraft is an in-progress bill for one patient. While Confirmed is false
// every line item is editable; confirming locks the items until Edit. Totals
// are always derived from the current line items, never stored.
type BillDraft struct {
	ID        string       `json:"id"`
	Patient   BillPatient  `json:"patient"`
	Hospital  BillHospital `json:"hospital"`
	LineItems []LineItem   `json:"lineItems"`
	Confirmed bool         `json:"confirmed"`
	CreatedAt time.Time    `json:"createdAt"`
}

// BillPatient is the patient block printed on the bill, carried from the
// patient lookup that preceded the draft.
type BillPatient struct {
	PatientID   string `json:"patientId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender,omitempty"`
	Age         string `json:"age,omitempty"`
}

// BillHospital is the issuing hospital block printed on the bill.
type BillHospital struct {
	Name     string `json:"hospitalName"`
	Location string `json:"location"`
}

// BillRecord is the upload receipt archived after a bill leaves the panel.
// It is bookkeeping only: nothing reads it back into a computation.
type BillRecord struct {
	RecordID   string    `bson:"record_id" json:"record_id"`
	PatientID  string    `bson:"patient_id" json:"patient_id"`
	Amount     float64   `bson:"amount" json:"amount"`
	LineCount  int       `bson:"line_count" json:"line_count"`
	ImageRef   string    `bson:"image_ref,omitempty" json:"image_ref,omitempty"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
