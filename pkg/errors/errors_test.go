package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneMatchesSentinel(t *testing.T) {
	err := Clone(ErrRequestAlreadyResolved, "request 7 already resolved")
	require.True(t, errors.Is(err, ErrRequestAlreadyResolved))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "request 7 already resolved", err.Message)
	assert.Equal(t, "role request already resolved", ErrRequestAlreadyResolved.Message)
}

func TestWrapMatchesThroughChain(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := fmt.Errorf("login: %w", Wrap(cause, ErrRemoteUnavailable.Code, ErrRemoteUnavailable.Status, "remote store is unreachable"))

	require.True(t, errors.Is(wrapped, ErrRemoteUnavailable))
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := FromError(Clone(ErrValidation, "reason is required"))
	assert.Equal(t, http.StatusBadRequest, typed.Status)
	assert.Equal(t, "reason is required", typed.Message)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}
