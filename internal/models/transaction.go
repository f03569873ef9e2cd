package models

import "github.com/shopspring/decimal"

// TransactionType enumerates ledger entry kinds produced by the backend.
type TransactionType string

const (
	TxDeposit  TransactionType = "DEPOSIT"
	TxWithdraw TransactionType = "WITHDRAW"
	TxTransfer TransactionType = "TRANSFER"
	TxInterest TransactionType = "INTEREST"
)

// Transaction is an immutable ledger entry as listed by the backend.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	FromAccount *Account        `json:"fromAccount,omitempty"`
	ToAccount   *Account        `json:"toAccount,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   *Timestamp      `json:"createdAt,omitempty"`
}

// Page is the pagination envelope echoed by the backend.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}
