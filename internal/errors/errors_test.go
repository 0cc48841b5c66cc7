package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InvalidInput("n must be > 0")
	wrapped := Wrap(base, "sample failed")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "sample failed: n must be > 0", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(fs.ErrPermission, "open %s", "trajectory.xyz")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, fs.ErrPermission))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestResourceUnavailable(t *testing.T) {
	err := ResourceUnavailable("trajectory.xyz", fs.ErrNotExist)

	assert.Equal(t, CodeResourceUnavailable, GetCode(err))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "trajectory.xyz unavailable")
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeConfigInvalid, stderrors.New("bad seed"))
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
