// Package intake checks deposit, withdraw and transfer forms before they
// reach the backend ledger and submits the ones that pass.
package intake

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/models"
)

// Kind is the transaction a form asks for.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// ParseKind recognises a transaction kind from a route segment.
func ParseKind(raw string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindDeposit, KindWithdraw, KindTransfer:
		return k, true
	}
	return "", false
}

// Title returns the kind capitalised for messages.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// MinimumAmount is the smallest currency unit accepted.
var MinimumAmount = decimal.New(1, -2)

// Form is the raw user input.
type Form struct {
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
	ToAccount     string `json:"toAccount,omitempty"`
}

// Order is a validated request ready for the backend.
type Order struct {
	Kind   Kind
	From   string
	To     string
	Amount decimal.Decimal
}

// ValidationError is a local rejection; no request was sent.
type ValidationError struct {
	Slot    alerts.Slot
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func general(msg string) error {
	return &ValidationError{Slot: alerts.SlotGeneral, Message: msg}
}

func destination(msg string) error {
	return &ValidationError{Slot: alerts.SlotDestination, Message: msg}
}

// Validator applies the intake rules in order; the first failure wins.
type Validator struct {
	Currency string
}

// Validate checks form against the rules for kind. known is the account
// list the user is looking at; it supplies the balance for withdrawals.
func (v Validator) Validate(kind Kind, form Form, known []models.Account) (Order, error) {
	from := strings.TrimSpace(form.AccountNumber)
	if from == "" {
		return Order{}, general("Please select an account to proceed.")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil || !amount.IsPositive() {
		return Order{}, general("Please enter a valid amount greater than 0.")
	}
	if amount.LessThan(MinimumAmount) {
		return Order{}, general(fmt.Sprintf("Minimum transaction amount is %s%s.", v.Currency, MinimumAmount.StringFixed(2)))
	}

	order := Order{Kind: kind, From: from, Amount: amount}
	switch kind {
	case KindTransfer:
		to := strings.TrimSpace(form.ToAccount)
		if to == "" {
			return Order{}, destination("Please enter a recipient account number.")
		}
		if to == from {
			return Order{}, destination("Cannot transfer to the same account.")
		}
		order.To = to
	case KindWithdraw:
		if acc, ok := models.FindAccount(known, from); ok && amount.GreaterThan(acc.Balance) {
			return Order{}, general(fmt.Sprintf("Insufficient balance. Your account balance is %s%s.", v.Currency, acc.Balance.StringFixed(2)))
		}
	}
	return order, nil
}
