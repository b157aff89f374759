package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTrue(t *testing.T) {
	cases := []struct {
		name string
		v    *Value
		want bool
	}{
		{"null", NewNull(), false},
		{"bool false", NewBool(false), false},
		{"bool true", NewBool(true), true},
		{"int zero", NewInt(0), false},
		{"int nonzero", NewInt(-1), true},
		{"float zero", NewFloat(0.0), false},
		{"float nan", NewFloat(nan()), false},
		{"empty string", NewString(""), false},
		{"string zero", NewString("0"), false},
		{"string zero point zero", NewString("0.0"), true},
		{"nonempty string", NewString("0.0 "), true},
		{"empty array", NewArray(), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsTrue(c.v))
		})
	}

	withOne := NewArray()
	withOne.ArrayVal().AppendDirect(NewInt(1))
	assert.True(t, IsTrue(withOne))

	obj := NewObject("stdClass")
	assert.True(t, IsTrue(obj), "every object is truthy regardless of attributes")
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestAsStringScalars(t *testing.T) {
	assert.Equal(t, "", AsString(nil, NewNull()))
	assert.Equal(t, "1", AsString(nil, NewBool(true)))
	assert.Equal(t, "", AsString(nil, NewBool(false)))
	assert.Equal(t, "42", AsString(nil, NewInt(42)))
	assert.Equal(t, "-42", AsString(nil, NewInt(-42)))
	assert.Equal(t, "hello", AsString(nil, NewString("hello")))
}

func TestAsNumberScalars(t *testing.T) {
	assert.Equal(t, int64(0), AsNumber(nil, NewNull()).IntVal())
	assert.Equal(t, int64(1), AsNumber(nil, NewBool(true)).IntVal())
	assert.Equal(t, int64(0), AsNumber(nil, NewBool(false)).IntVal())
	assert.Equal(t, int64(0), AsNumber(nil, NewArray()).IntVal())

	withItem := NewArray()
	withItem.ArrayVal().AppendDirect(NewInt(5))
	assert.Equal(t, int64(1), AsNumber(nil, withItem).IntVal())

	n := AsNumber(nil, NewString("3.5abc"))
	assert.True(t, n.IsFloat())
	assert.Equal(t, 3.5, n.FloatVal())
}

func TestAsArrayWrapsScalar(t *testing.T) {
	wrapped := AsArray(nil, NewInt(9))
	assert.True(t, wrapped.IsArray())
	assert.Equal(t, 1, wrapped.ArrayVal().Len())
	assert.Equal(t, int64(9), wrapped.ArrayVal().Get(IntKey(0)).IntVal())

	empty := AsArray(nil, NewNull())
	assert.Equal(t, 0, empty.ArrayVal().Len())
}
