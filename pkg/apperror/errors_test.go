package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesKind(t *testing.T) {
	err := New(ErrDuplicateSubmission, "already applied", nil).WithMeta("existing_status", "rejected")
	wrapped := fmt.Errorf("submit: %w", err)

	assert.True(t, errors.Is(wrapped, ErrDuplicateSubmission))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "already applied", err.Error())
	assert.Equal(t, map[string]any{"existing_status": "rejected"}, MetaOf(wrapped))
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StorageFailure(cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrStorageFailure))
	assert.Equal(t, "connection reset", err.Error())
}

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{NotFound("posting not found"), http.StatusNotFound, KindNotFound},
		{New(ErrDuplicateSubmission, "dup", nil), http.StatusConflict, KindDuplicateSubmission},
		{InvalidAttachment("cv must be a pdf"), http.StatusBadRequest, KindInvalidAttachment},
		{New(ErrInvalidTargetStatus, "bad", nil), http.StatusBadRequest, KindInvalidTargetStatus},
		{InvalidInput("name is required"), http.StatusBadRequest, KindInvalidInput},
		{ErrUnauthorized, http.StatusUnauthorized, KindUnauthorized},
		{ErrForbidden, http.StatusForbidden, KindForbidden},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, KindRateLimited},
		{errors.New("boom"), http.StatusInternalServerError, KindStorageFailure},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, MapErrorToStatus(tc.err), tc.err.Error())
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
	}
}
