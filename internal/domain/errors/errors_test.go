package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"homestay/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "predefined not found", err: ErrHomestayNotFound, want: KindNotFound},
		{name: "wrapped unauthorized", err: ErrNotParticipant.WrapMessage("send message"), want: KindUnauthorized},
		{name: "fmt wrapped invalid operation", err: fmt.Errorf("create booking: %w", ErrDatesUnavailable), want: KindInvalidOperation},
		{name: "validation", err: NewValidationError("checkOut must be after checkIn"), want: KindValidation},
		{name: "database error", err: NewDatabaseExecuteError(stderrors.New("boom"), "insert"), want: KindInternal},
		{name: "plain error", err: stderrors.New("boom"), want: KindInternal},
		{name: "nil", err: nil, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrUserHasDependents.WithDetails("2 bookings")

	assert.Equal(t, "2 bookings", detailed.Details())
	assert.True(t, errors.Is(detailed, ErrUserHasDependents))
	assert.False(t, errors.Is(detailed, ErrUserNotFound))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "invalid_operation", KindInvalidOperation.String())
	assert.Equal(t, "internal", KindInternal.String())
}
