package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingOneAlertClearsOthers(t *testing.T) {
	b := NewBoard(5 * time.Second)

	b.Fail(SlotDestination, KindValidation, "Cannot transfer to the same account.")
	b.Fail(SlotGeneral, KindBackend, "Insufficient balance.")

	got, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, SlotGeneral, got.Slot)
	assert.Equal(t, KindBackend, got.Kind)

	b.Warn("No changes detected.")
	got, _ = b.Current()
	assert.Equal(t, SlotWarning, got.Slot)
}

func TestSuccessExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBoard(5 * time.Second)
	b.now = func() time.Time { return now }

	b.Success("Deposit of ₹10.00 completed successfully!")
	_, ok := b.Current()
	require.True(t, ok)

	now = now.Add(4999 * time.Millisecond)
	_, ok = b.Current()
	assert.True(t, ok)

	now = now.Add(time.Millisecond)
	_, ok = b.Current()
	assert.False(t, ok)
}

func TestErrorsDoNotExpire(t *testing.T) {
	now := time.Now()
	b := NewBoard(time.Second)
	b.now = func() time.Time { return now }
	b.Fail(SlotGeneral, KindNetwork, "down")

	now = now.Add(time.Hour)
	_, ok := b.Current()
	assert.True(t, ok)
}

func TestRegistryScopesBoards(t *testing.T) {
	r := NewRegistry(time.Second)
	r.For("s1", "transactions").Warn("w")

	_, ok := r.For("s1", "profile").Current()
	assert.False(t, ok)
	_, ok = r.For("s2", "transactions").Current()
	assert.False(t, ok)

	assert.Same(t, r.For("s1", "transactions"), r.For("s1", "transactions"))
	r.Forget("s1")
	_, ok = r.For("s1", "transactions").Current()
	assert.False(t, ok)
}
