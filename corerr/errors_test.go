package corerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatsKindAndMessage(t *testing.T) {
	err := NewInvalidCallback("function \"bogus\" not found")
	assert.Equal(t, `InvalidCallback: function "bogus" not found`, err.Error())
}

func TestPlainMessageStripsKindPrefix(t *testing.T) {
	err := NewVisibilityError("cannot access private method Foo::bar")
	assert.Equal(t, "cannot access private method Foo::bar", PlainMessage(err))
}

func TestPlainMessageFallsBackForForeignErrors(t *testing.T) {
	foreign := errors.New("not a CoreError")
	assert.Equal(t, "not a CoreError", PlainMessage(foreign))
}

func TestIsInvalidCallback(t *testing.T) {
	assert.True(t, IsInvalidCallback(NewInvalidCallback("x")))
	assert.False(t, IsInvalidCallback(NewVisibilityError("x")))
	assert.False(t, IsInvalidCallback(errors.New("x")))
}

func TestIsVisibilityError(t *testing.T) {
	assert.True(t, IsVisibilityError(NewVisibilityError("x")))
	assert.False(t, IsVisibilityError(NewInvalidCallback("x")))
	assert.False(t, IsVisibilityError(errors.New("x")))
}

func TestErrInlineObjectComparisonIsDistinctKind(t *testing.T) {
	assert.Equal(t, KindInlineObjectComparison, ErrInlineObjectComparison.Kind)
	assert.False(t, IsInvalidCallback(ErrInlineObjectComparison))
	assert.False(t, IsVisibilityError(ErrInlineObjectComparison))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidCallback", KindInvalidCallback.String())
	assert.Equal(t, "VisibilityError", KindVisibilityError.String())
	assert.Equal(t, "InlineObjectComparison", KindInlineObjectComparison.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
