package session

import (
	"context"
	"errors"
	"testing"

	"hospitalpanel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memAttemptStore is an in-memory AttemptStore for tests.
type memAttemptStore struct {
	attempts map[string]models.LoginAttempt
}

func newMemAttemptStore() *memAttemptStore {
	return &memAttemptStore{attempts: make(map[string]models.LoginAttempt)}
}

func (s *memAttemptStore) Get(_ context.Context, attemptID string) (*models.LoginAttempt, error) {
	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, nil
	}
	return &attempt, nil
}

func (s *memAttemptStore) Save(_ context.Context, attemptID string, attempt models.LoginAttempt) error {
	s.attempts[attemptID] = attempt
	return nil
}

func (s *memAttemptStore) Delete(_ context.Context, attemptID string) error {
	delete(s.attempts, attemptID)
	return nil
}

type fakeAuthAPI struct {
	loginCalls  int
	resendCalls int
	verifyCalls int

	lastPhone   string
	lastOTP     string
	lastOrderID string

	orderID   string
	token     string
	loginErr  error
	resendErr error
	verifyErr error
}

func (f *fakeAuthAPI) Login(_ context.Context, hospitalPhoneNumber string) (string, error) {
	f.loginCalls++
	f.lastPhone = hospitalPhoneNumber
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.orderID, nil
}

func (f *fakeAuthAPI) ResendOTP(_ context.Context, phoneNumber string) error {
	f.resendCalls++
	f.lastPhone = phoneNumber
	return f.resendErr
}

func (f *fakeAuthAPI) VerifyOTP(_ context.Context, otp, hospitalPhoneNumber, orderID string) (string, error) {
	f.verifyCalls++
	f.lastOTP = otp
	f.lastPhone = hospitalPhoneNumber
	f.lastOrderID = orderID
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.token, nil
}

func newTestManager() (*Manager, *memAttemptStore, *fakeAuthAPI) {
	store := newMemAttemptStore()
	api := &fakeAuthAPI{orderID: "ord_1", token: "tok_1"}
	return &Manager{API: api, Attempts: store}, store, api
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"ten digits", "9876543210", true},
		{"with dial code", "+919876543210", true},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432100", false},
		{"letters", "98765abcde", false},
		{"empty", "", false},
		{"dial code only", "+91", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhoneNumber(tt.phone)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
			}
		})
	}
}

func TestRequestCodeRejectsBadNumberBeforeNetwork(t *testing.T) {
	mgr, _, api := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "12345"))
	err := mgr.RequestCode(ctx, "att_1")
	assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
	assert.Zero(t, api.loginCalls)
}

func TestRequestCodeStoresOrderID(t *testing.T) {
	mgr, store, api := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "+919876543210"))
	require.NoError(t, mgr.RequestCode(ctx, "att_1"))

	assert.Equal(t, 1, api.loginCalls)
	assert.Equal(t, "+919876543210", api.lastPhone)

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, "ord_1", attempt.OrderID)
}

func TestRequestCodeFailureKeepsPreviousOrderID(t *testing.T) {
	mgr, store, api := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "9876543210"))
	require.NoError(t, mgr.RequestCode(ctx, "att_1"))

	api.loginErr = errors.New("upstream down")
	err := mgr.RequestCode(ctx, "att_1")
	require.Error(t, err)

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, "ord_1", attempt.OrderID)
}

func TestResendCodeFailureKeepsAttempt(t *testing.T) {
	mgr, store, api := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "9876543210"))
	require.NoError(t, mgr.RequestCode(ctx, "att_1"))

	api.resendErr = errors.New("upstream down")
	err := mgr.ResendCode(ctx, "att_1")
	require.Error(t, err)
	assert.Equal(t, 1, api.resendCalls)

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, "ord_1", attempt.OrderID)
}

func TestVerifyCodeWithoutOrderIDFailsFast(t *testing.T) {
	mgr, store, api := newTestManager()
	ctx := context.Background()

	// Phone number set but no code was ever requested.
	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "9876543210"))

	user, err := mgr.VerifyCode(ctx, "att_1", "123456")
	assert.ErrorIs(t, err, ErrOrderMissing)
	assert.Nil(t, user)
	assert.Zero(t, api.verifyCalls)

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	assert.Nil(t, attempt)
}

func TestVerifyCodeUnknownAttempt(t *testing.T) {
	mgr, _, api := newTestManager()

	user, err := mgr.VerifyCode(context.Background(), "missing", "123456")
	assert.ErrorIs(t, err, ErrOrderMissing)
	assert.Nil(t, user)
	assert.Zero(t, api.verifyCalls)
}

func TestVerifyCodeFailureClearsAttempt(t *testing.T) {
	mgr, store, api := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "9876543210"))
	require.NoError(t, mgr.RequestCode(ctx, "att_1"))

	api.verifyErr = errors.New("invalid OTP")
	user, err := mgr.VerifyCode(ctx, "att_1", "000000")
	require.Error(t, err)
	assert.Nil(t, user)

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	assert.Nil(t, attempt)

	// The next verify has no order identifier to work with.
	_, err = mgr.VerifyCode(ctx, "att_1", "123456")
	assert.ErrorIs(t, err, ErrOrderMissing)
	assert.Equal(t, 1, api.verifyCalls)
}

func TestVerifyCodeSuccessConsumesAttempt(t *testing.T) {
	mgr, store, api := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "9876543210"))
	require.NoError(t, mgr.RequestCode(ctx, "att_1"))

	user, err := mgr.VerifyCode(ctx, "att_1", "123456")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "tok_1", user.Token)

	assert.Equal(t, "123456", api.lastOTP)
	assert.Equal(t, "9876543210", api.lastPhone)
	assert.Equal(t, "ord_1", api.lastOrderID)

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	assert.Nil(t, attempt)
}

func TestLogoutIsIdempotent(t *testing.T) {
	mgr, store, _ := newTestManager()
	ctx := context.Background()

	require.NoError(t, mgr.SetPhoneNumber(ctx, "att_1", "9876543210"))
	mgr.Logout(ctx, "att_1")
	mgr.Logout(ctx, "att_1")
	mgr.Logout(ctx, "")

	attempt, err := store.Get(ctx, "att_1")
	require.NoError(t, err)
	assert.Nil(t, attempt)
}
