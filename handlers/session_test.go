package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospitalpanel/models"
	"hospitalpanel/services/session"
	"hospitalpanel/upstream"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
	loginCalls int
	token      string
	verifyErr  error
}

func (f *fakeAuthAPI) Login(_ context.Context, _ string) (string, error) {
	f.loginCalls++
	return "ord_1", nil
}

func (f *fakeAuthAPI) ResendOTP(_ context.Context, _ string) error { return nil }

func (f *fakeAuthAPI) VerifyOTP(_ context.Context, _, _, _ string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.token, nil
}

func signedTestToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"adminId":      "adm_1",
		"hospitalName": "City Care",
		"role":         "hospital",
	})
	signed, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return signed
}

func sessionRouter(api *fakeAuthAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	codec := session.CookieCodec{}
	h := NewSessionHandler(&session.Manager{API: api, Attempts: newMemAttemptStore()}, codec)

	r := gin.New()
	r.POST("/api/session/request-otp", h.RequestOTPHandler)
	r.POST("/api/session/resend-otp", h.ResendOTPHandler)
	r.POST("/api/session/verify-otp", h.VerifyOTPHandler)
	r.POST("/api/session/logout", h.LogoutHandler)
	r.GET("/api/session/me", h.MeHandler)
	return r
}

func postJSON(r *gin.Engine, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}

func TestRequestOTPRejectsInvalidNumber(t *testing.T) {
	api := &fakeAuthAPI{}
	r := sessionRouter(api)

	rec := postJSON(r, "/api/session/request-otp", `{"hospitalPhoneNumber":"12345"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, api.loginCalls)
}

func TestLoginFlowIssuesSessionCookie(t *testing.T) {
	api := &fakeAuthAPI{token: signedTestToken(t)}
	r := sessionRouter(api)

	rec := postJSON(r, "/api/session/request-otp", `{"hospitalPhoneNumber":"9876543210"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	attemptCookie := cookieByName(rec, session.AttemptCookieName)
	require.NotNil(t, attemptCookie)

	rec = postJSON(r, "/api/session/verify-otp", `{"otp":"123456"}`, []*http.Cookie{attemptCookie})
	require.Equal(t, http.StatusOK, rec.Code)
	authCookie := cookieByName(rec, session.CookieName)
	require.NotNil(t, authCookie)

	// The session now answers /me with the decoded claims.
	req := httptest.NewRequest(http.MethodGet, "/api/session/me", nil)
	req.AddCookie(authCookie)
	meRec := httptest.NewRecorder()
	r.ServeHTTP(meRec, req)
	assert.Equal(t, http.StatusOK, meRec.Code)
	assert.Contains(t, meRec.Body.String(), "City Care")
}

func TestVerifyOTPWithoutAttemptFailsFast(t *testing.T) {
	api := &fakeAuthAPI{token: signedTestToken(t)}
	r := sessionRouter(api)

	rec := postJSON(r, "/api/session/verify-otp", `{"otp":"123456"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTPRejectsMalformedCode(t *testing.T) {
	api := &fakeAuthAPI{token: signedTestToken(t)}
	r := sessionRouter(api)

	for _, body := range []string{`{"otp":"12345"}`, `{"otp":"abcdef"}`, `{}`} {
		rec := postJSON(r, "/api/session/verify-otp", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestVerifyOTPFailureClearsSession(t *testing.T) {
	api := &fakeAuthAPI{verifyErr: &upstream.APIError{StatusCode: 400, Message: "Invalid OTP"}}
	r := sessionRouter(api)

	rec := postJSON(r, "/api/session/request-otp", `{"hospitalPhoneNumber":"9876543210"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	attemptCookie := cookieByName(rec, session.AttemptCookieName)
	require.NotNil(t, attemptCookie)

	rec = postJSON(r, "/api/session/verify-otp", `{"otp":"000000"}`, []*http.Cookie{attemptCookie})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid OTP")

	// The auth cookie is expired, not set.
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			assert.Equal(t, -1, c.MaxAge)
		}
	}

	// The consumed attempt cannot be retried.
	rec = postJSON(r, "/api/session/verify-otp", `{"otp":"123456"}`, []*http.Cookie{attemptCookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	api := &fakeAuthAPI{token: signedTestToken(t)}
	r := sessionRouter(api)

	rec := postJSON(r, "/api/session/logout", ``, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var cleared []string
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared = append(cleared, c.Name)
		}
	}
	assert.Contains(t, cleared, session.CookieName)
	assert.Contains(t, cleared, session.AttemptCookieName)
}

func TestMeWithoutSession(t *testing.T) {
	r := sessionRouter(&fakeAuthAPI{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
