package handlers

import (
	"errors"
	"net/http"

	"hospitalpanel/services/session"
	"hospitalpanel/upstream"
	"hospitalpanel/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler exposes the OTP login flow over HTTP.
type SessionHandler struct {
	Mgr   *session.Manager
	Codec session.CookieCodec
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(mgr *session.Manager, codec session.CookieCodec) *SessionHandler {
	return &SessionHandler{Mgr: mgr, Codec: codec}
}

// upstreamStatus maps a session/upstream failure to an HTTP status.
func upstreamStatus(err error) int {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}
	return http.StatusBadGateway
}

// RequestOTPHandler stores the phone number and asks the backend for a code.
func (h *SessionHandler) RequestOTPHandler(c *gin.Context) {
	var req struct {
		HospitalPhoneNumber string `json:"hospitalPhoneNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Pre-network validation: bad numbers never reach the backend.
	if err := session.ValidatePhoneNumber(req.HospitalPhoneNumber); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	attemptID := h.Codec.ReadAttempt(c.Request)
	if attemptID == "" {
		attemptID = uuid.NewString()
	}

	ctx := c.Request.Context()
	if err := h.Mgr.SetPhoneNumber(ctx, attemptID, req.HospitalPhoneNumber); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start login", err.Error())
		return
	}
	if err := h.Mgr.RequestCode(ctx, attemptID); err != nil {
		utils.JSONError(c, upstreamStatus(err), upstream.Normalize(err), "")
		return
	}

	h.Codec.WriteAttempt(c.Writer, attemptID)
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// ResendOTPHandler re-requests a code for the phone number already on file.
func (h *SessionHandler) ResendOTPHandler(c *gin.Context) {
	attemptID := h.Codec.ReadAttempt(c.Request)
	if attemptID == "" {
		utils.JSONError(c, http.StatusBadRequest, session.ErrNoAttempt.Error(), "")
		return
	}
	if err := h.Mgr.ResendCode(c.Request.Context(), attemptID); err != nil {
		if errors.Is(err, session.ErrNoAttempt) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		utils.JSONError(c, upstreamStatus(err), upstream.Normalize(err), "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent again successfully"})
}

// VerifyOTPHandler verifies the entered code and persists the session cookie.
func (h *SessionHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		OTP string `json:"otp" binding:"required,len=6,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attemptID := h.Codec.ReadAttempt(c.Request)
	user, err := h.Mgr.VerifyCode(c.Request.Context(), attemptID, req.OTP)
	if err != nil {
		// Verification failure destroys any persisted session.
		h.Codec.Clear(c.Writer)
		if errors.Is(err, session.ErrOrderMissing) || errors.Is(err, session.ErrNoAttempt) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusUnauthorized, upstream.Normalize(err), "")
		return
	}

	h.Codec.Write(c.Writer, *user)
	h.Codec.ClearAttempt(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

// LogoutHandler destroys the session. Idempotent, no upstream call.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	h.Mgr.Logout(c.Request.Context(), h.Codec.ReadAttempt(c.Request))
	h.Codec.Clear(c.Writer)
	h.Codec.ClearAttempt(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler returns the session with its decoded claims for header/profile UI.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	user := h.Codec.Read(c.Request)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
