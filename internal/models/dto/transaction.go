package dto

import (
	"bytes"
	"encoding/json"
)

type DepositRequest struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
}

type WithdrawRequest struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
}

type TransferRequest struct {
	FromAccount string  `json:"fromAccount"`
	ToAccount   string  `json:"toAccount"`
	Amount      float64 `json:"amount"`
}

// TransactionForm is the raw form posted by the browser. Fields are kept as
// text so that validation can report missing or non-numeric amounts itself.
type TransactionForm struct {
	AccountNumber string    `json:"accountNumber"`
	Amount        FormValue `json:"amount"`
	ToAccount     string    `json:"toAccount"`
}

// FormValue accepts a JSON string, number or null and keeps its text.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(data)
	return nil
}
