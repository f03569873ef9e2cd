package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hongminglow/bank-console/internal/models"
	"github.com/hongminglow/bank-console/internal/paging"
)

func TestWithBounds(t *testing.T) {
	page := models.Page[models.Transaction]{TotalPages: 3, HasNext: false, HasPrevious: true}

	first := withBounds(page, paging.Request{Page: 0, Size: 10})
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	last := withBounds(page, paging.Request{Page: 2, Size: 10})
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
	assert.Equal(t, 2, last.CurrentPage)

	empty := withBounds(models.Page[models.Transaction]{}, paging.Request{Page: 0, Size: 10})
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}
