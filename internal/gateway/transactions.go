package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/models/dto"
)

// Deposit credits amount to accountNumber.
func (c *Client) Deposit(ctx context.Context, token, accountNumber string, amount decimal.Decimal) error {
	return c.ledger(ctx, "deposit", request{
		method: http.MethodPost,
		path:   "/api/transaction/deposit",
		body:   dto.DepositRequest{AccountNumber: accountNumber, Amount: amount.InexactFloat64()},
		token:  token,
	})
}

// Withdraw debits amount from accountNumber.
func (c *Client) Withdraw(ctx context.Context, token, accountNumber string, amount decimal.Decimal) error {
	return c.ledger(ctx, "withdraw", request{
		method: http.MethodPost,
		path:   "/api/transaction/withdraw",
		body:   dto.WithdrawRequest{AccountNumber: accountNumber, Amount: amount.InexactFloat64()},
		token:  token,
	})
}

// Transfer moves amount between two accounts. Only the backend knows
// whether the destination exists.
func (c *Client) Transfer(ctx context.Context, token, from, to string, amount decimal.Decimal) error {
	return c.ledger(ctx, "transfer", request{
		method: http.MethodPost,
		path:   "/api/transaction/transfer",
		body:   dto.TransferRequest{FromAccount: from, ToAccount: to, Amount: amount.InexactFloat64()},
		token:  token,
	})
}

// ledger posts a transaction and treats a literal false body as a decline.
func (c *Client) ledger(ctx context.Context, op string, r request) error {
	resp, err := c.send(ctx, op, r)
	if err != nil {
		return err
	}
	var accepted bool
	if err := json.Unmarshal(resp.body, &accepted); err == nil && !accepted {
		return &APIError{Status: resp.status, Message: declinedMessage(op)}
	}
	return nil
}

func declinedMessage(op string) string {
	return fmt.Sprintf("%s%s was declined. Please verify the account and balance.", strings.ToUpper(op[:1]), op[1:])
}

func (c *Client) CustomerTransactions(ctx context.Context, token string, customerID int64, page, size int) (models.Page[models.Transaction], error) {
	var out models.Page[models.Transaction]
	err := c.call(ctx, "customer transactions", request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/transactions/customer/%d", customerID),
		query:  pageQuery(page, size),
		token:  token,
	}, &out)
	return out, err
}

func (c *Client) AllTransactions(ctx context.Context, token string, page, size int) (models.Page[models.Transaction], error) {
	var out models.Page[models.Transaction]
	err := c.call(ctx, "all transactions", request{
		method: http.MethodGet,
		path:   "/api/transactions",
		query:  pageQuery(page, size),
		token:  token,
	}, &out)
	return out, err
}

func (c *Client) AccountTransactions(ctx context.Context, token string, accountID int64, page, size int) (models.Page[models.Transaction], error) {
	var out models.Page[models.Transaction]
	err := c.call(ctx, "account transactions", request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/statements/account/%d/transactions", accountID),
		query:  pageQuery(page, size),
		token:  token,
	}, &out)
	return out, err
}
