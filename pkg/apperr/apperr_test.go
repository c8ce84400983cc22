package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeValidation, TypeOf(NewValidation("age", "out of range")))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(NewUserNotFound("u1")))
	assert.Equal(t, ErrorTypeConflict, TypeOf(NewConflict("edge exists")))
	assert.Equal(t, ErrorTypeStore, TypeOf(NewStore("save", errors.New("boom"))))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestTypeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewUserNotFound("u1"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestStoreError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStore("findAll", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "findAll")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("username", "empty")))
	assert.True(t, IsConflict(NewConflict("linked")))
	assert.False(t, IsValidation(NewConflict("linked")))
}
