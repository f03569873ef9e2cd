package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a structured rejection returned by the banking backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}

// NetworkError means no response was received from the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsAPIError unwraps a backend rejection from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// Message returns the text a user should see for a gateway failure.
func Message(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if IsNetwork(err) {
		return NetworkMessage
	}
	return fallback
}

// NetworkMessage is shown whenever the backend could not be reached.
const NetworkMessage = "Network error: Unable to connect to server. Please check if backend is running."

// extractMessage pulls a human readable reason out of an error body. The
// backend answers with a bare string, {"error": ...} or {"message": ...},
// tried in that order.
func extractMessage(body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 {
		var asString string
		if err := json.Unmarshal(trimmed, &asString); err == nil && strings.TrimSpace(asString) != "" {
			return asString
		}
		var asObject struct {
			Error   any `json:"error"`
			Message any `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &asObject); err == nil {
			if s, ok := asObject.Error.(string); ok && s != "" {
				return s
			}
			if s, ok := asObject.Message.(string); ok && s != "" {
				return s
			}
		} else if !strings.ContainsRune(`{["`, rune(trimmed[0])) {
			return string(trimmed)
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}
