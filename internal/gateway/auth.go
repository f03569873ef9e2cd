package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hongminglow/bank-console/internal/models/dto"
)

// RequestOTP asks the backend to issue a passcode for email.
func (c *Client) RequestOTP(ctx context.Context, email string) (dto.OTPResponse, error) {
	var out dto.OTPResponse
	err := c.call(ctx, "request otp", request{
		method: http.MethodPost,
		path:   "/api/auth/request-otp",
		query:  url.Values{"email": {email}},
	}, &out)
	return out, err
}

// LoginOTP exchanges an email and passcode for an identity and token.
func (c *Client) LoginOTP(ctx context.Context, email, otp string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.call(ctx, "login otp", request{
		method: http.MethodPost,
		path:   "/api/auth/login-otp",
		body:   dto.LoginRequest{Email: email, OTP: otp},
	}, &out)
	return out, err
}
