package dto

import "github.com/hongminglow/bank-console/internal/models"

// OTPResponse is returned by the backend when an OTP is issued. This
// deployment has no delivery channel, so the code itself is included.
type OTPResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp"`
}

type LoginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginResponse struct {
	Message  string          `json:"message"`
	Customer models.Customer `json:"customer"`
	Token    string          `json:"token"`
}

// ConsoleOTPRequest is the browser payload asking for a passcode.
type ConsoleOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConsoleLoginRequest is the browser payload completing an OTP login.
type ConsoleLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}
