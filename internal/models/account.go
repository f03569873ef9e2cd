package models

import "github.com/shopspring/decimal"

// AccountType enumerates the backend account products.
type AccountType string

const (
	AccountSavings      AccountType = "SAVINGS"
	AccountCurrent      AccountType = "CURRENT"
	AccountFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// Account mirrors the backend account record. Balance is read-only here:
// it is refreshed from the backend, never computed.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	SortCode      string          `json:"sortCode"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	Customer      *Customer       `json:"customer,omitempty"`
}

// OwnedBy reports whether the account belongs to the given customer.
func (a Account) OwnedBy(customerID int64) bool {
	return a.Customer != nil && a.Customer.ID == customerID
}

// AccountsOwnedBy filters accounts down to a single owner.
func AccountsOwnedBy(accounts []Account, customerID int64) []Account {
	out := make([]Account, 0, len(accounts))
	for _, acc := range accounts {
		if acc.OwnedBy(customerID) {
			out = append(out, acc)
		}
	}
	return out
}

// FindAccount looks up an account by its number.
func FindAccount(accounts []Account, number string) (Account, bool) {
	for _, acc := range accounts {
		if acc.AccountNumber == number {
			return acc, true
		}
	}
	return Account{}, false
}
