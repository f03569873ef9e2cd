package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
)

func (c *Client) ListCustomers(ctx context.Context, token string) ([]models.Customer, error) {
	var out []models.Customer
	err := c.call(ctx, "list customers", request{method: http.MethodGet, path: "/api/customers", token: token}, &out)
	return out, err
}

func (c *Client) GetCustomer(ctx context.Context, token string, id int64) (models.Customer, error) {
	var out models.Customer
	err := c.call(ctx, "get customer", request{method: http.MethodGet, path: fmt.Sprintf("/api/customers/%d", id), token: token}, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, token string, customer dto.CustomerForm) (models.Customer, error) {
	var out models.Customer
	err := c.call(ctx, "create customer", request{method: http.MethodPost, path: "/api/customers", body: customer, token: token}, &out)
	return out, err
}

// UpdateCustomer applies the non-empty fields of customer to the live
// record immediately.
func (c *Client) UpdateCustomer(ctx context.Context, token string, id int64, customer dto.CustomerForm) (models.Customer, error) {
	var out models.Customer
	err := c.call(ctx, "update customer", request{method: http.MethodPut, path: fmt.Sprintf("/api/customers/%d", id), body: customer, token: token}, &out)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, token string, id int64) (string, error) {
	return c.text(ctx, "delete customer", request{method: http.MethodDelete, path: fmt.Sprintf("/api/customers/%d", id), token: token})
}

// AdminCustomers lists customers through the admin endpoint.
func (c *Client) AdminCustomers(ctx context.Context, token string) ([]models.Customer, error) {
	var out []models.Customer
	err := c.call(ctx, "admin customers", request{method: http.MethodGet, path: "/api/admin/customers", token: token}, &out)
	return out, err
}

func (c *Client) LockCustomer(ctx context.Context, token string, id int64) (string, error) {
	return c.text(ctx, "lock customer", request{method: http.MethodPost, path: fmt.Sprintf("/api/admin/customers/%d/lock", id), token: token})
}

func (c *Client) UnlockCustomer(ctx context.Context, token string, id int64) (string, error) {
	return c.text(ctx, "unlock customer", request{method: http.MethodPost, path: fmt.Sprintf("/api/admin/customers/%d/unlock", id), token: token})
}
