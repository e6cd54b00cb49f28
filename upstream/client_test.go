package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginReturnsOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hospital/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+919876543210", body["hospitalPhoneNumber"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"OTP sent","data":{"orderId":"ord_1"}}`))
	}))
	defer srv.Close()

	orderID, err := NewClient(srv.URL).Login(context.Background(), "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "ord_1", orderID)
}

func TestLoginMissingOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"OTP sent","data":{}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "+919876543210")
	assert.Error(t, err)
}

func TestVerifyOTPReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hospital/verifyOtp", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "123456", body["otp"])
		assert.Equal(t, "ord_1", body["orderId"])
		assert.Equal(t, "+919876543210", body["hospitalPhoneNumber"])

		w.Write([]byte(`{"data":{"token":"tok_1"}}`))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).VerifyOTP(context.Background(), "123456", "+919876543210", "ord_1")
	require.NoError(t, err)
	assert.Equal(t, "tok_1", token)
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid OTP"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).VerifyOTP(context.Background(), "000000", "+919876543210", "ord_1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid OTP", apiErr.Message)
}

func TestNonJSONErrorBodyStillAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "+919876543210")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestBearerTokenFromContext(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"patientHistory":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := WithToken(context.Background(), "tok_1")
	_, err := client.GetPatientDetails(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok_1", gotAuth)

	// No token on the context means no header.
	_, err = client.GetPatientDetails(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestGetPatientDetailsSuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "9876543210", r.URL.Query().Get("phoneNumber"))
		w.Write([]byte(`{"success":false,"message":"Patient not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetPatientDetails(context.Background(), "9876543210")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "error", apiErr.Status)
	assert.Equal(t, "Patient not found", apiErr.Message)
}

func TestUploadPatientBillMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hospital/patients/uploadPatientBill", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "pat_1", r.FormValue("patientId"))
		assert.Equal(t, "1180.00", r.FormValue("billAmount"))

		file, header, err := r.FormFile("billFile")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bill.png", header.Filename)

		w.Write([]byte(`{"message":"uploaded"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UploadPatientBill(context.Background(), []byte("png-bytes"), "pat_1", "1180.00")
	assert.NoError(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status error with error field", &APIError{Status: "error", ErrField: "Patient not found"}, "Patient not found"},
		{"status error with message", &APIError{Status: "error", Message: "Patient not found"}, "Patient not found"},
		{"status error empty", &APIError{Status: "error"}, "An unexpected error occurred."},
		{"plain message", &APIError{StatusCode: 400, Message: "Invalid OTP"}, "Invalid OTP"},
		{"empty body", &APIError{StatusCode: 502}, "An unexpected error occurred."},
		{"transport failure", errors.New("dial tcp: connection refused"), "Network error. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.err))
		})
	}
}
