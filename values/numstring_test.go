package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumericPrefix(t *testing.T) {
	cases := []struct {
		in            string
		wantFloat     bool
		wantI         int64
		wantF         float64
		fullyConsumed bool
	}{
		{"42", false, 42, 0, true},
		{"  42", false, 42, 0, true},
		{"-42", false, -42, 0, true},
		{"3.5", true, 0, 3.5, true},
		{"3.5abc", true, 0, 3.5, false},
		{"1e3", true, 0, 1000, true},
		{"abc", false, 0, 0, false},
		{"", false, 0, 0, true},
		{"  ", false, 0, 0, false},
	}
	for _, c := range cases {
		got := ParseNumericPrefix(c.in)
		assert.Equal(t, c.wantFloat, got.IsFloat, "input %q", c.in)
		assert.Equal(t, c.fullyConsumed, got.FullyConsumed, "input %q", c.in)
		if c.wantFloat {
			assert.Equal(t, c.wantF, got.F, "input %q", c.in)
		} else {
			assert.Equal(t, c.wantI, got.I, "input %q", c.in)
		}
	}
}

func TestParseNumericPrefixOverflowPromotesToFloat(t *testing.T) {
	got := ParseNumericPrefix("99999999999999999999")
	assert.True(t, got.IsFloat, "an int literal too large for int64 must promote to float rather than truncate")
}

func TestIsNumericPrefix(t *testing.T) {
	assert.True(t, IsNumericPrefix("42"))
	assert.True(t, IsNumericPrefix(" 3.5 "))
	assert.False(t, IsNumericPrefix("42abc"))
	assert.False(t, IsNumericPrefix(""))
	assert.False(t, IsNumericPrefix("   "))
}

func TestForceInt(t *testing.T) {
	assert.Equal(t, int64(42), ForceInt(nil, NewString("42.9")))
	assert.Equal(t, int64(-7), ForceInt(nil, NewString("-7abc")))
	assert.Equal(t, int64(0), ForceInt(nil, NewString("abc")))
	assert.Equal(t, int64(5), ForceInt(nil, NewInt(5)))
	assert.Equal(t, int64(5), ForceInt(nil, NewFloat(5.9)))
}
