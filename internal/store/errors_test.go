package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "generic not found", err: ErrNotFound, want: true},
		{name: "deck not found", err: ErrDeckNotFound, want: true},
		{name: "card not found", err: ErrCardNotFound, want: true},
		{name: "session not found", err: ErrSessionNotFound, want: true},
		{name: "wrapped in store error", err: NewStoreError("deck", "get", "missing", ErrDeckNotFound), want: true},
		{name: "duplicate", err: ErrDuplicate, want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("message includes wrapped cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection reset")
		err := NewStoreError("save", "create", "failed to insert save", cause)

		assert.Equal(t, "create operation on save failed: failed to insert save: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("message without cause", func(t *testing.T) {
		t.Parallel()
		err := NewStoreError("card", "update", "no rows affected", nil)

		assert.Equal(t, "update operation on card failed: no rows affected", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("errors.As recovers the typed error", func(t *testing.T) {
		t.Parallel()
		wrapped := NewStoreError("deck", "create", "deck already exists", ErrDuplicate)

		var storeErr *StoreError
		assert.ErrorAs(t, wrapped, &storeErr)
		assert.Equal(t, "deck", storeErr.Entity)
		assert.Equal(t, "create", storeErr.Operation)
	})
}
