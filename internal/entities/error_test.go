package entities

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindError_Is(t *testing.T) {
	err := errors.Wrap(NetworkError("latest request failed", context.DeadlineExceeded), "frankfurter.FetchConversion")

	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, ErrData))
	assert.Contains(t, err.Error(), "latest request failed")
}

func TestKindError_Message(t *testing.T) {
	assert.Equal(t, "bad code", ValidationError("bad code").Error())
	assert.Equal(t, "no rates: boom", DataError("no rates", errors.New("boom")).Error())
}
