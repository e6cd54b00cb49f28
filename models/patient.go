package models

// PatientDetails is the patient slice of the upstream lookup response. The
// panel reads it once, seeds the bill's display blocks from it, and never
// refetches it for the draft's lifetime.
type PatientDetails struct {
	PatientID   string `json:"patientId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	Gender      string `json:"gender,omitempty"`
	BloodGroup  string `json:"bloodGroup,omitempty"`
	Age         string `json:"age,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// HospitalDetails is the issuing hospital as reported by the upstream,
// nested under the treating doctor in the patient history.
type HospitalDetails struct {
	HospitalName string `json:"hospitalName"`
	Location     string `json:"location"`
}

// PatientHistoryEntry pairs a visit's patient and doctor/hospital blocks.
type PatientHistoryEntry struct {
	PatientDetails PatientDetails `json:"patientDetails"`
	DoctorDetails  struct {
		Hospital HospitalDetails `json:"hospital"`
	} `json:"doctorDetails"`
}

// PatientLookup is the full payload of the patient details endpoint.
type PatientLookup struct {
	PatientHistory []PatientHistoryEntry `json:"patientHistory"`
}
