package session

import (
	"encoding/json"
	"net/http"
	"net/url"

	"hospitalpanel/models"
	"hospitalpanel/utils"
)

// CookieName is the persisted session cookie.
const CookieName = "auth"

// AttemptCookieName carries the login attempt ID between the phone-entry and
// OTP steps.
const AttemptCookieName = "loginAttempt"

const cookieMaxAge = 7 * 24 * 60 * 60 // 7 days, in seconds

// CookieCodec reads and writes the JSON session cookie. The value holds only
// the raw token (plus role); the admin claims are decoded from the token on
// every read, never persisted separately.
type CookieCodec struct {
	// Secure is enabled outside local development.
	Secure bool
}

// Write persists the session for seven days, same-site strict.
func (cc CookieCodec) Write(w http.ResponseWriter, user models.AuthUser) {
	payload, err := json.Marshal(models.AuthUser{Token: user.Token, Role: user.Role})
	if err != nil {
		utils.GetLogger().Error("failed to encode auth cookie: " + err.Error())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear removes the session cookie. Idempotent.
func (cc CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Read returns the session with its decoded claims merged in, or nil when the
// cookie is absent or the token undecodable.
func (cc CookieCodec) Read(r *http.Request) *models.AuthUser {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	var user models.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.Token == "" {
		return nil
	}

	claims, err := utils.DecodeTokenClaims(user.Token)
	if err != nil {
		return nil
	}
	user.AdminID = claims.AdminID
	user.AdminName = claims.AdminName
	user.AdminEmail = claims.AdminEmail
	user.AdminMobile = claims.AdminMobile
	user.Role = claims.Role
	return &user
}

// WriteAttempt stores the attempt ID for the duration of the login flow.
func (cc CookieCodec) WriteAttempt(w http.ResponseWriter, attemptID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AttemptCookieName,
		Value:    attemptID,
		Path:     "/",
		MaxAge:   int(AttemptTTL.Seconds()),
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ReadAttempt returns the current attempt ID, or "".
func (cc CookieCodec) ReadAttempt(r *http.Request) string {
	cookie, err := r.Cookie(AttemptCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ClearAttempt removes the attempt cookie.
func (cc CookieCodec) ClearAttempt(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AttemptCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
