package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Filter
		want Filter
	}{
		{"zero value gets defaults", Filter{}, Filter{Page: 1, PageSize: 20}},
		{"negative page", Filter{Page: -3, PageSize: 10}, Filter{Page: 1, PageSize: 10}},
		{"page size clamped", Filter{Page: 2, PageSize: 500}, Filter{Page: 2, PageSize: 100}},
		{"valid untouched", Filter{Page: 4, PageSize: 50}, Filter{Page: 4, PageSize: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{}.Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 3, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Total)

	empty := NewPaginated([]int{}, 0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestAsDomainError(t *testing.T) {
	wrapped := fmt.Errorf("load order: %w", ErrNotFound)

	domainErr, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, domainErr.Kind)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	_, ok = AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}

func TestNewDomainError_DefaultsToValidation(t *testing.T) {
	err := NewDomainError("EMPTY_CART", "Cart must contain at least one item")
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Cart must contain at least one item", err.Error())
}

func TestBaseEntity(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e := NewBaseEntityAt(at)
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, at, e.CreatedAt)

	later := at.Add(time.Hour)
	e.Touch(later)
	assert.Equal(t, later, e.UpdatedAt)
	assert.Equal(t, at, e.CreatedAt)
}
