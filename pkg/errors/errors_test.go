package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")

	assert.Equal(t, "student not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrFinalized))
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.ErrorIs(t, plain, sql.ErrConnDone)

	wrapped := fmt.Errorf("service: %w", ErrFinalized)
	assert.Equal(t, ErrFinalized.Code, FromError(wrapped).Code)
}

func TestErrorString(t *testing.T) {
	err := Wrap(sql.ErrNoRows, ErrInternal.Code, ErrInternal.Status, "failed to load settings")
	assert.Equal(t, "failed to load settings: sql: no rows in result set", err.Error())
	assert.Equal(t, "cache miss", ErrCacheMiss.Error())
}
