package upstream

import (
	"context"
	"fmt"
)

// Login asks the backend to send a one-time code to the hospital's phone
// number and returns the order identifier required to verify it.
func (c *Client) Login(ctx context.Context, hospitalPhoneNumber string) (string, error) {
	var resp struct {
		Message string `json:"message"`
		Data    struct {
			OrderID string `json:"orderId"`
		} `json:"data"`
	}
	err := c.postJSON(ctx, "/hospital/login", map[string]string{
		"hospitalPhoneNumber": hospitalPhoneNumber,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Data.OrderID == "" {
		return "", fmt.Errorf("upstream: login response missing orderId")
	}
	return resp.Data.OrderID, nil
}

// ResendOTP requests a fresh one-time code for the same phone number.
func (c *Client) ResendOTP(ctx context.Context, phoneNumber string) error {
	return c.postJSON(ctx, "/auth/resendOTP", map[string]string{
		"phoneNumber": phoneNumber,
	}, nil)
}

// VerifyOTP submits the user-entered code with its order identifier and
// returns the session token issued on success.
func (c *Client) VerifyOTP(ctx context.Context, otp, hospitalPhoneNumber, orderID string) (string, error) {
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	err := c.postJSON(ctx, "/hospital/verifyOtp", map[string]string{
		"otp":                 otp,
		"hospitalPhoneNumber": hospitalPhoneNumber,
		"orderId":             orderID,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Data.Token == "" {
		return "", fmt.Errorf("upstream: verify response missing token")
	}
	return resp.Data.Token, nil
}
