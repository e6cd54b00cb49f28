// Package session converts a phone number into an authenticated, persisted
// session through the backend's two-step OTP challenge, and owns every read
// and write of that session. No other component writes session state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospitalpanel/models"
	"hospitalpanel/utils"

	"go.uber.org/zap"
)

var (
	// ErrInvalidPhoneNumber rejects numbers before any network call is made.
	ErrInvalidPhoneNumber = errors.New("phone number must be exactly 10 digits")
	// ErrNoAttempt means the attempt expired or never existed.
	ErrNoAttempt = errors.New("no login attempt in progress, please request OTP again")
	// ErrOrderMissing means VerifyCode was called before a successful RequestCode.
	ErrOrderMissing = errors.New("order ID is missing, please request OTP again")
)

// AuthAPI is the slice of the upstream client the session manager needs.
type AuthAPI interface {
	Login(ctx context.Context, hospitalPhoneNumber string) (orderID string, err error)
	ResendOTP(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, otp, hospitalPhoneNumber, orderID string) (token string, err error)
}

// Manager drives the OTP login flow. Attempt state (phone number, order
// identifier) lives in the attempt store under an opaque attempt ID; the
// issued token is handed back to the caller for cookie persistence.
type Manager struct {
	API      AuthAPI
	Attempts AttemptStore
}

// ValidatePhoneNumber checks the national part of the number: exactly ten
// digits, nothing else. An optional +91 dial code prefix is tolerated since
// the stored number always carries it.
func ValidatePhoneNumber(phoneNumber string) error {
	national := strings.TrimPrefix(phoneNumber, "+91")
	if len(national) != 10 {
		return ErrInvalidPhoneNumber
	}
	for _, r := range national {
		if r < '0' || r > '9' {
			return ErrInvalidPhoneNumber
		}
	}
	return nil
}

// SetPhoneNumber records the full phone number (including dial code) for the
// attempt, verbatim. No network effect.
func (m *Manager) SetPhoneNumber(ctx context.Context, attemptID, phoneNumber string) error {
	attempt, err := m.Attempts.Get(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt == nil {
		attempt = &models.LoginAttempt{CreatedAt: time.Now()}
	}
	attempt.PhoneNumber = phoneNumber
	return m.Attempts.Save(ctx, attemptID, *attempt)
}

// RequestCode asks the backend for a one-time code. On success the returned
// order identifier is stored for verification; on failure the previous order
// identifier is left untouched and the error is returned for the caller to
// surface.
func (m *Manager) RequestCode(ctx context.Context, attemptID string) error {
	attempt, err := m.Attempts.Get(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt == nil {
		return ErrNoAttempt
	}
	if err := ValidatePhoneNumber(attempt.PhoneNumber); err != nil {
		return err
	}

	orderID, err := m.API.Login(ctx, attempt.PhoneNumber)
	if err != nil {
		utils.GetLogger().Warn("RequestCode: upstream login failed", zap.Error(err))
		return err
	}

	attempt.OrderID = orderID
	if err := m.Attempts.Save(ctx, attemptID, *attempt); err != nil {
		return fmt.Errorf("failed to store order ID: %w", err)
	}
	return nil
}

// ResendCode re-requests a code for the same phone number. Failure is
// surfaced but does not clear any attempt state.
func (m *Manager) ResendCode(ctx context.Context, attemptID string) error {
	attempt, err := m.Attempts.Get(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt == nil {
		return ErrNoAttempt
	}
	if err := m.API.ResendOTP(ctx, attempt.PhoneNumber); err != nil {
		utils.GetLogger().Warn("ResendCode: upstream resend failed", zap.Error(err))
		return err
	}
	return nil
}

// VerifyCode submits the entered code. This is the only operation that
// persists or destroys session state based on network outcome: on success the
// attempt is consumed and the issued session returned; on any failure the
// order identifier is cleared and (nil, err) returned so the caller also
// drops the persisted token.
func (m *Manager) VerifyCode(ctx context.Context, attemptID, code string) (*models.AuthUser, error) {
	attempt, err := m.Attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil || attempt.OrderID == "" {
		// No order identifier: fail fast, no network call.
		_ = m.Attempts.Delete(ctx, attemptID)
		return nil, ErrOrderMissing
	}

	token, err := m.API.VerifyOTP(ctx, code, attempt.PhoneNumber, attempt.OrderID)
	if err != nil {
		utils.GetLogger().Warn("VerifyCode: upstream verify failed", zap.Error(err))
		if delErr := m.Attempts.Delete(ctx, attemptID); delErr != nil {
			utils.GetLogger().Error("VerifyCode: failed to clear attempt", zap.Error(delErr))
		}
		return nil, err
	}

	_ = m.Attempts.Delete(ctx, attemptID)

	user := &models.AuthUser{Token: token}
	if claims, err := utils.DecodeTokenClaims(token); err == nil {
		user.Role = claims.Role
	}
	return user, nil
}

// Logout clears any transient attempt state. Cookie removal is the caller's
// side; both halves are idempotent and neither touches the network.
func (m *Manager) Logout(ctx context.Context, attemptID string) {
	if attemptID == "" {
		return
	}
	if err := m.Attempts.Delete(ctx, attemptID); err != nil {
		utils.GetLogger().Warn("Logout: failed to clear attempt", zap.Error(err))
	}
}
