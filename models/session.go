package models

import "time"

// AuthUser is the persisted session: the raw bearer token plus the claims
// decoded from it on read. Only the token (and role) are ever written to the
// cookie; everything else is derived.
type AuthUser struct {
	Token       string `json:"token"`
	Role        string `json:"role,omitempty"`
	AdminID     string `json:"adminId,omitempty"`
	AdminName   string `json:"adminName,omitempty"`
	AdminEmail  string `json:"adminEmail,omitempty"`
	AdminMobile string `json:"adminMobileNumber,omitempty"`
}

// LoginAttempt tracks the progress of one OTP login flow. It lives in the
// attempt cache with a short TTL and is keyed by an opaque attempt ID.
type LoginAttempt struct {
	PhoneNumber   string    `json:"phoneNumber"` // full number, including dial code
	OrderID       string    `json:"orderId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
