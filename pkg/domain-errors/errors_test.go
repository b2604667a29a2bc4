package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("direct coded error", func(t *testing.T) {
		err := New(CodeNotFound, "contract not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("wrapped coded error", func(t *testing.T) {
		inner := New(CodeConflict, "reference already exists")
		err := fmt.Errorf("recording transaction: %w", inner)
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("uncoded error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInsufficientBalance, CodeOf(New(CodeInsufficientBalance, "balance too low")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("disk on fire")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to record transaction")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
