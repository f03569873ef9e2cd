package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bank-console/internal/models"
)

func TestProfileFormKeepsOmittedFields(t *testing.T) {
	current := models.Profile{FullName: "Ann Lee", Email: "ann@example.com", PhoneNumber: "555", Address: "1 Road"}

	var form ProfileForm
	require.NoError(t, json.Unmarshal([]byte(`{"address":"2 Street"}`), &form))
	got := form.Apply(current)
	assert.Equal(t, "555", got.PhoneNumber)
	assert.Equal(t, "Ann Lee", got.FullName)
	assert.Equal(t, "2 Street", got.Address)

	// an explicit empty value is still a change
	require.NoError(t, json.Unmarshal([]byte(`{"phoneNumber":""}`), &form))
	assert.Equal(t, "", form.Apply(current).PhoneNumber)
}
