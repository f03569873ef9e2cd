package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
)

// SubmitProfileUpdate files a change request for customerID.
func (c *Client) SubmitProfileUpdate(ctx context.Context, token string, customerID int64, payload dto.ProfileUpdatePayload) (models.ProfileUpdateRequest, error) {
	var out models.ProfileUpdateRequest
	err := c.call(ctx, "submit profile update", request{
		method: http.MethodPost,
		path:   "/api/profile/update-request",
		query:  url.Values{"customerId": {strconv.FormatInt(customerID, 10)}},
		body:   payload,
		token:  token,
	}, &out)
	return out, err
}

// MyProfileRequests lists every request for a customer in backend order.
func (c *Client) MyProfileRequests(ctx context.Context, token string, customerID int64) ([]models.ProfileUpdateRequest, error) {
	var out []models.ProfileUpdateRequest
	err := c.call(ctx, "my profile requests", request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/profile/update-requests/%d", customerID),
		token:  token,
	}, &out)
	return out, err
}

func (c *Client) PendingProfileRequests(ctx context.Context, token string) ([]models.ProfileUpdateRequest, error) {
	var out []models.ProfileUpdateRequest
	err := c.call(ctx, "pending profile requests", request{
		method: http.MethodGet,
		path:   "/api/profile/admin/pending-requests",
		token:  token,
	}, &out)
	return out, err
}

func (c *Client) ApproveProfileRequest(ctx context.Context, token string, requestID int64, adminEmail string) (models.ProfileUpdateRequest, error) {
	return c.review(ctx, "approve", token, requestID, adminEmail)
}

func (c *Client) RejectProfileRequest(ctx context.Context, token string, requestID int64, adminEmail string) (models.ProfileUpdateRequest, error) {
	return c.review(ctx, "reject", token, requestID, adminEmail)
}

func (c *Client) review(ctx context.Context, action, token string, requestID int64, adminEmail string) (models.ProfileUpdateRequest, error) {
	var out models.ProfileUpdateRequest
	err := c.call(ctx, action+" profile request", request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/profile/admin/%s/%d", action, requestID),
		query:  url.Values{"adminEmail": {adminEmail}},
		token:  token,
	}, &out)
	return out, err
}
