package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hongminglow/bank-console/internal/models"
)

// ListAccounts returns every account the backend exposes. Callers filter by
// owner for non-admin identities.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]models.Account, error) {
	var out []models.Account
	err := c.call(ctx, "list accounts", request{method: http.MethodGet, path: "/api/accounts", token: token}, &out)
	return out, err
}

func (c *Client) GetAccount(ctx context.Context, token string, id int64) (models.Account, error) {
	var out models.Account
	err := c.call(ctx, "get account", request{method: http.MethodGet, path: fmt.Sprintf("/api/accounts/%d", id), token: token}, &out)
	return out, err
}
