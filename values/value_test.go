package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerefIdempotent(t *testing.T) {
	v := NewInt(42)
	assert.Same(t, v, Deref(v))
	assert.Same(t, v, Deref(Deref(v)))
}

func TestWrapReferenceDerefs(t *testing.T) {
	cell := NewCell(NewString("hi"))
	ref := WrapReference(cell)
	assert.True(t, ref.IsReference())
	assert.Equal(t, "hi", Deref(ref).StrVal())

	cell.Slot = NewString("bye")
	assert.Equal(t, "bye", Deref(ref).StrVal())
}

func TestDerefUniqueClonesSharedArray(t *testing.T) {
	original := NewArray()
	original.ArrayVal().SetDirect(IntKey(0), NewInt(1))

	a := DerefUnique(original)
	b := DerefUnique(original)
	assert.NotEqual(t, a.Token(), b.Token(), "two independent DerefUnique calls on the same shared array must not yield the same token")

	a.ArrayVal().SetDirect(IntKey(0), NewInt(99))
	assert.Equal(t, int64(1), original.ArrayVal().Get(IntKey(0)).IntVal(), "mutating a's clone must not reach back into the original")
}

func TestDerefUniqueScalarIsIdentity(t *testing.T) {
	v := NewInt(7)
	assert.Same(t, v, DerefUnique(v))
}

func TestWrapArrayMintsFreshToken(t *testing.T) {
	a := newArray()
	a.SetDirect(IntKey(0), NewInt(1))
	w1 := WrapArray(a)
	w2 := WrapArray(a)
	assert.NotEqual(t, w1.Token(), w2.Token())
}

func TestIsUnique(t *testing.T) {
	v := NewArray()
	assert.True(t, v.IsUnique(v.Token()))
	assert.False(t, v.IsUnique(newToken()))
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "Int", TagInt.String())
	assert.Equal(t, "DelayedClassConstant", TagDelayedClassConstant.String())
	assert.Equal(t, "Unknown", Tag(255).String())
}
