// Package compare implements PHP's loose and strict comparison
// semantics, including the iterative, cycle-safe aggregate comparator
// for arrays and objects.
package compare

import (
	"math"

	"github.com/wudi/heycore/values"
)

// Compare is the comparator's single entry point. strict short-circuits
// to 1 whenever tags differ. ignoreOrder is a hint that the caller only
// needs zero-vs-non-zero; in that mode the comparator may return -1 for
// "unequal" instead of a true ordering.
func Compare(host values.Host, left, right *values.Value, strict, ignoreOrder bool) int {
	left, right = values.Deref(left), values.Deref(right)

	if strict && left.Tag != right.Tag {
		return 1
	}

	if isAggregateTag(left.Tag) && isAggregateTag(right.Tag) && left.Tag == right.Tag {
		return compareAggregateRoot(host, left, right, strict, ignoreOrder)
	}

	return compareScalar(host, left, right, strict)
}

// LooseEqual is PHP's `==`.
func LooseEqual(host values.Host, left, right *values.Value) bool {
	return Compare(host, left, right, false, true) == 0
}

// StrictEqual is PHP's `===`.
func StrictEqual(host values.Host, left, right *values.Value) bool {
	return Compare(host, left, right, true, true) == 0
}

// IdentityCompare implements `is_w`: compare(...strict=true,
// ignore_order=true) == 0.
func IdentityCompare(host values.Host, left, right *values.Value) bool {
	return StrictEqual(host, left, right)
}

func isAggregateTag(t values.Tag) bool {
	return t == values.TagArray || t == values.TagObject
}

// compareScalar implements PHP's non-aggregate pairwise comparison rules.
func compareScalar(host values.Host, l, r *values.Value, strict bool) int {
	if strict && l.Tag != r.Tag {
		return 1
	}
	switch {
	case l.Tag == values.TagFloat || r.Tag == values.TagFloat:
		if (l.Tag == values.TagFloat || l.Tag == values.TagInt) && (r.Tag == values.TagFloat || r.Tag == values.TagInt) {
			return cmpFloat(toF(l), toF(r))
		}
	case l.Tag == values.TagInt && r.Tag == values.TagInt:
		return cmpInt(l.IntVal(), r.IntVal())
	}

	if l.Tag == values.TagNull && r.Tag == values.TagNull {
		return 0
	}
	if (l.Tag == values.TagNull && r.Tag == values.TagBool) || (l.Tag == values.TagBool && r.Tag == values.TagNull) {
		return cmpBool(values.IsTrue(l), values.IsTrue(r))
	}
	if l.Tag == values.TagBool && r.Tag == values.TagBool {
		return cmpBool(l.BoolVal(), r.BoolVal())
	}

	if l.Tag == values.TagString && r.Tag == values.TagString {
		return compareStrings(l.StrVal(), r.StrVal(), strict)
	}

	if (l.Tag == values.TagNull && r.Tag == values.TagString) || (l.Tag == values.TagString && r.Tag == values.TagNull) {
		ls, rs := "", ""
		if l.Tag == values.TagString {
			ls = l.StrVal()
		}
		if r.Tag == values.TagString {
			rs = r.StrVal()
		}
		return compareStrings(ls, rs, strict)
	}

	if l.Tag == values.TagObject && r.Tag == values.TagNull {
		return 1
	}
	if l.Tag == values.TagNull && r.Tag == values.TagObject {
		return -1
	}

	// Any other pair.
	if l.Tag == values.TagNull {
		return cmpBool(false, values.IsTrue(r))
	}
	if r.Tag == values.TagNull {
		return cmpBool(values.IsTrue(l), false)
	}
	if l.Tag == values.TagBool || r.Tag == values.TagBool {
		return cmpBool(values.IsTrue(l), values.IsTrue(r))
	}
	if l.Tag == values.TagArray && r.Tag != values.TagArray {
		return 1
	}
	if r.Tag == values.TagArray && l.Tag != values.TagArray {
		return -1
	}
	if l.Tag == values.TagObject && r.Tag != values.TagObject {
		return 1
	}
	if r.Tag == values.TagObject && l.Tag != values.TagObject {
		return -1
	}
	return Compare(host, values.AsNumber(host, l), values.AsNumber(host, r), false, false)
}

// compareStrings implements the String×String rule: numeric promotion
// when loose and both sides fully parse as numbers, bytewise
// lexicographic otherwise. A single-character fast path short-circuits
// the common case.
func compareStrings(a, b string, strict bool) int {
	if len(a) == 1 && len(b) == 1 {
		return cmpByte(a[0], b[0])
	}
	if !strict {
		pa, pb := values.ParseNumericPrefix(a), values.ParseNumericPrefix(b)
		if pa.FullyConsumed && pb.FullyConsumed && hasDigits(a) && hasDigits(b) {
			return Compare(nil, pa.ToValue(), pb.ToValue(), false, false)
		}
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func hasDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

func toF(v *values.Value) float64 {
	if v.Tag == values.TagFloat {
		return v.FloatVal()
	}
	return float64(v.IntVal())
}

func cmpFloat(a, b float64) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 1
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	ai, bi := 0, 0
	if a {
		ai = 1
	}
	if b {
		bi = 1
	}
	return cmpInt(int64(ai), int64(bi))
}

func cmpByte(a, b byte) int {
	return cmpInt(int64(a), int64(b))
}
