package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoleIsCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"ADMIN", "admin", " Admin "} {
		assert.Equal(t, RoleAdmin, ParseRole(raw), raw)
	}
	for _, raw := range []string{"USER", "CUSTOMER", "", "administrator"} {
		assert.Equal(t, RoleCustomer, ParseRole(raw), raw)
	}
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, StatusNone.CanTransition(StatusPending))
	assert.True(t, StatusPending.CanTransition(StatusApproved))
	assert.True(t, StatusPending.CanTransition(StatusRejected))
	assert.False(t, StatusApproved.CanTransition(StatusRejected))
	assert.False(t, StatusRejected.CanTransition(StatusPending))
	assert.False(t, StatusApproved.CanTransition(StatusApproved))
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPending.Terminal())
}

func TestTimestampLayouts(t *testing.T) {
	var out struct {
		A *Timestamp `json:"a"`
		B *Timestamp `json:"b"`
		C *Timestamp `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-05-01T09:30:00","b":"2024-05-01T09:30:00.123456Z","c":null}`), &out))
	require.NotNil(t, out.A)
	assert.Equal(t, 9, out.A.Hour())
	require.NotNil(t, out.B)
	assert.Equal(t, 123456000, out.B.Nanosecond())
	assert.Nil(t, out.C)

	var bad Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestAccountsOwnedBy(t *testing.T) {
	accounts := []Account{
		{AccountNumber: "A", Customer: &Customer{ID: 1}},
		{AccountNumber: "B", Customer: &Customer{ID: 2}},
		{AccountNumber: "C"},
	}
	mine := AccountsOwnedBy(accounts, 1)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].AccountNumber)
}
