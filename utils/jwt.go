package utils

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

// TokenClaims is the admin profile embedded in the upstream session token.
type TokenClaims struct {
	AdminID     string `json:"adminId"`
	AdminName   string `json:"adminName"`
	AdminEmail  string `json:"adminEmail"`
	AdminMobile string `json:"adminMobileNumber"`
	Role        string `json:"role"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
}

// DecodeTokenClaims extracts the embedded claims from a session token.
// The upstream signs the token with its own secret, so the signature is not
// checked here; the claims are a derived view for header/profile display and
// are recomputed on every read, never stored.
func DecodeTokenClaims(tokenString string) (*TokenClaims, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token does not carry map claims")
	}

	tc := &TokenClaims{
		AdminID:     stringClaim(claims, "adminId"),
		AdminEmail:  stringClaim(claims, "adminEmail"),
		AdminMobile: stringClaim(claims, "adminMobileNumber"),
		// The upstream stores the display name under "hospitalName".
		AdminName: stringClaim(claims, "hospitalName"),
		Role:      stringClaim(claims, "role"),
	}
	if iat, ok := claims["iat"].(float64); ok {
		tc.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		tc.ExpiresAt = int64(exp)
	}
	return tc, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
