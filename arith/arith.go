// Package arith implements PHP's binary arithmetic, modulo, shift, and
// bitwise/string-bitwise operators.
package arith

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/wudi/heycore/values"
)

// Host is the slice of the host-interpreter seam arithmetic needs:
// value coercion (via the embedded values.Host) plus the two severities
// arithmetic can raise: a fatal for unsupported operands, a warning
// for division by zero.
type Host interface {
	values.Host
	Warn(format string, args ...interface{})
	Fatal(format string, args ...interface{})
}

func supportsArithmetic(v *values.Value) bool {
	v = values.Deref(v)
	switch v.Tag {
	case values.TagInt, values.TagFloat, values.TagString, values.TagNull, values.TagBool, values.TagArray:
		return true
	default:
		return false
	}
}

// widen normalizes both operands to the same numeric kind: Float if
// either side is a Float, Int otherwise.
func widen(host Host, a, b *values.Value) (af, bf float64, ai, bi int64, isFloat bool) {
	na, nb := values.AsNumber(host, a), values.AsNumber(host, b)
	isFloat = na.Tag == values.TagFloat || nb.Tag == values.TagFloat
	if isFloat {
		af = toFloat(na)
		bf = toFloat(nb)
		return
	}
	ai = na.IntVal()
	bi = nb.IntVal()
	return
}

func toFloat(v *values.Value) float64 {
	if v.Tag == values.TagFloat {
		return v.FloatVal()
	}
	return float64(v.IntVal())
}

// addIntOverflows reports whether a+b overflows int64, per Invariant
// "integer overflow promotes to Float".
func addIntOverflows(a, b int64) bool {
	sum := a + b
	return ((a ^ sum) & (b ^ sum)) < 0
}

func mulIntOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	p := a * b
	return p/b != a
}

// Add implements `+`. Array + Array is the left-biased union;
// everything else goes through the shared numeric path.
func Add(host Host, left, right *values.Value) *values.Value {
	l, r := values.Deref(left), values.Deref(right)
	if l.Tag == values.TagArray && r.Tag == values.TagArray {
		return arrayUnion(l, r)
	}
	if !supportsArithmetic(l) || !supportsArithmetic(r) {
		host.Fatal("Unsupported operand types: %s + %s", l.Tag, r.Tag)
		return values.NewNull()
	}
	af, bf, ai, bi, isFloat := widen(host, l, r)
	if isFloat {
		return values.NewFloat(af + bf)
	}
	if addIntOverflows(ai, bi) {
		return values.NewFloat(float64(ai) + float64(bi))
	}
	return values.NewInt(ai + bi)
}

// arrayUnion implements `array + array`: the left-biased union where
// the left operand's keys win on conflict.
func arrayUnion(l, r *values.Value) *values.Value {
	result := values.NewArray()
	resultArr := result.ArrayVal()
	for _, p := range l.ArrayVal().Pairs() {
		resultArr.SetDirect(p.Key, p.Value)
	}
	for _, p := range r.ArrayVal().Pairs() {
		if !resultArr.HasKey(p.Key) {
			resultArr.SetDirect(p.Key, p.Value)
		}
	}
	return result
}

func Sub(host Host, left, right *values.Value) *values.Value {
	if !supportsArithmetic(left) || !supportsArithmetic(right) {
		host.Fatal("Unsupported operand types: %s - %s", left.Tag, right.Tag)
		return values.NewNull()
	}
	af, bf, ai, bi, isFloat := widen(host, left, right)
	if isFloat {
		return values.NewFloat(af - bf)
	}
	diff := ai - bi
	if ((ai ^ bi) & (ai ^ diff)) < 0 {
		return values.NewFloat(float64(ai) - float64(bi))
	}
	return values.NewInt(diff)
}

func Mul(host Host, left, right *values.Value) *values.Value {
	if !supportsArithmetic(left) || !supportsArithmetic(right) {
		host.Fatal("Unsupported operand types: %s * %s", left.Tag, right.Tag)
		return values.NewNull()
	}
	af, bf, ai, bi, isFloat := widen(host, left, right)
	if isFloat {
		return values.NewFloat(af * bf)
	}
	if mulIntOverflows(ai, bi) {
		return values.NewFloat(float64(ai) * float64(bi))
	}
	return values.NewInt(ai * bi)
}

func Div(host Host, left, right *values.Value) *values.Value {
	if !supportsArithmetic(left) || !supportsArithmetic(right) {
		host.Fatal("Unsupported operand types: %s / %s", left.Tag, right.Tag)
		return values.NewNull()
	}
	af, bf, ai, bi, isFloat := widen(host, left, right)
	if isFloat {
		if bf == 0 {
			host.Warn("Division by zero")
			return values.NewBool(false)
		}
		return values.NewFloat(af / bf)
	}
	if bi == 0 {
		host.Warn("Division by zero")
		return values.NewBool(false)
	}
	if ai%bi == 0 {
		return values.NewInt(ai / bi)
	}
	return values.NewFloat(float64(ai) / float64(bi))
}

// Pow implements `**`.
func Pow(host Host, left, right *values.Value) *values.Value {
	if !supportsArithmetic(left) || !supportsArithmetic(right) {
		host.Fatal("Unsupported operand types: %s ** %s", left.Tag, right.Tag)
		return values.NewNull()
	}
	af, bf, ai, bi, isFloat := widen(host, left, right)
	if !isFloat && bi >= 0 {
		result := int64(1)
		base := ai
		exp := bi
		overflow := false
		for exp > 0 {
			if exp&1 == 1 {
				if mulIntOverflows(result, base) {
					overflow = true
					break
				}
				result *= base
			}
			exp >>= 1
			if exp > 0 {
				if mulIntOverflows(base, base) {
					overflow = true
					break
				}
				base *= base
			}
		}
		if !overflow {
			return values.NewInt(result)
		}
	}
	if !isFloat {
		af, bf = float64(ai), float64(bi)
	}
	return values.NewFloat(math.Pow(af, bf))
}

// Mod implements PHP's modulo: truncation toward zero, the same rule
// Go's own `%` already uses (remainder takes the dividend's sign).
// Right operand 0 warns and yields false; -1 yields 0.
func Mod(host Host, left, right *values.Value) *values.Value {
	l := values.ForceInt(host, left)
	r := values.ForceInt(host, right)
	if r == 0 {
		host.Warn("Division by zero")
		return values.NewBool(false)
	}
	if r == -1 {
		return values.NewInt(0)
	}
	return values.NewInt(l % r)
}

// WordWidth is the machine word width shifts mask against (32 or 64).
const WordWidth = 64

// maskShift implements the testable property "lshift(x,n) == lshift(x, n
// mod W)": any signed integer shift count is reduced modulo width before
// use, generically over the shift-count's integer type so callers can
// pass either the raw ForceInt result or a smaller counter type.
func maskShift[T constraints.Integer](n T, width T) uint {
	return uint(n) & uint(width-1)
}

// Shl implements `<<`, masking the shift count by 31 on 32-bit or 63 on
// 64-bit word machines.
func Shl(host Host, left, right *values.Value) *values.Value {
	l := values.ForceInt(host, left)
	n := values.ForceInt(host, right)
	return values.NewInt(l << maskShift(n, int64(WordWidth)))
}

func Shr(host Host, left, right *values.Value) *values.Value {
	l := values.ForceInt(host, left)
	n := values.ForceInt(host, right)
	return values.NewInt(l >> maskShift(n, int64(WordWidth)))
}

// BitAnd implements `&`, including the string-bitwise AND variant: when
// both sides are strings, a byte-wise operation whose length is the
// shorter side.
func BitAnd(host Host, left, right *values.Value) *values.Value {
	l, r := values.Deref(left), values.Deref(right)
	if l.Tag == values.TagString && r.Tag == values.TagString {
		return values.NewString(stringBitwise(l.StrVal(), r.StrVal(), func(a, b byte) byte { return a & b }, false))
	}
	return values.NewInt(values.ForceInt(host, l) & values.ForceInt(host, r))
}

// BitOr implements `|`: the string variant preserves the longer side's
// tail.
func BitOr(host Host, left, right *values.Value) *values.Value {
	l, r := values.Deref(left), values.Deref(right)
	if l.Tag == values.TagString && r.Tag == values.TagString {
		return values.NewString(stringBitwise(l.StrVal(), r.StrVal(), func(a, b byte) byte { return a | b }, true))
	}
	return values.NewInt(values.ForceInt(host, l) | values.ForceInt(host, r))
}

func BitXor(host Host, left, right *values.Value) *values.Value {
	l, r := values.Deref(left), values.Deref(right)
	if l.Tag == values.TagString && r.Tag == values.TagString {
		return values.NewString(stringBitwise(l.StrVal(), r.StrVal(), func(a, b byte) byte { return a ^ b }, false))
	}
	return values.NewInt(values.ForceInt(host, l) ^ values.ForceInt(host, r))
}

func stringBitwise(a, b string, op func(byte, byte) byte, keepTail bool) string {
	short, long := a, b
	if len(a) > len(b) {
		short, long = b, a
	}
	out := make([]byte, len(short))
	for i := range short {
		out[i] = op(a[i], b[i])
	}
	if keepTail && len(long) > len(short) {
		out = append(out, long[len(short):]...)
	}
	return string(out)
}

// Concat implements `.`.
func Concat(host Host, left, right *values.Value) *values.Value {
	return values.NewString(values.AsString(host, left) + values.AsString(host, right))
}
