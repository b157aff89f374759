package values

import (
	"math"
	"strconv"
)

// Host is the slice of the host-interpreter seam the coercion
// kernel needs: a diagnostic sink for the one coercion that must emit a
// notice (array → string) and the host-defined projections for objects
// and resources. The full seam lives in package host; this
// narrower interface lets values stay free of a dependency on it. A nil
// Host is accepted everywhere below and simply skips diagnostics and
// uses fixed defaults (an object's number is Int 1 and its string is "",
// a resource's number is Int 0, and as_object boxes a scalar into a
// class-less object), which keeps the coercion kernel usable in
// tests that don't need a host.
type Host interface {
	Notice(format string, args ...interface{})
	ObjectAsNumber(obj *Object) *Value
	ObjectAsString(obj *Object) string
	ResourceAsNumber(v *Value) *Value
	DefaultObjectFromScalar(v *Value) *Object
}

// AsNumber implements PHP's as_number coercion: coerce v to an Int or Float.
func AsNumber(host Host, v *Value) *Value {
	v = Deref(v)
	switch v.Tag {
	case TagNull:
		return NewInt(0)
	case TagBool:
		if v.BoolVal() {
			return NewInt(1)
		}
		return NewInt(0)
	case TagInt, TagFloat:
		return v
	case TagString:
		return ParseNumericPrefix(v.StrVal()).ToValue()
	case TagArray:
		if v.ArrayVal().Len() == 0 {
			return NewInt(0)
		}
		return NewInt(1)
	case TagObject:
		if host != nil {
			return host.ObjectAsNumber(v.ObjectVal())
		}
		return NewInt(1)
	default:
		if v.IsResource() && host != nil {
			return host.ResourceAsNumber(v)
		}
		return NewInt(0)
	}
}

// AsString implements PHP's as_string coercion.
func AsString(host Host, v *Value) string {
	v = Deref(v)
	switch v.Tag {
	case TagNull:
		return ""
	case TagBool:
		if v.BoolVal() {
			return "1"
		}
		return ""
	case TagInt:
		return strconv.FormatInt(v.IntVal(), 10)
	case TagFloat:
		return formatPHPFloat(v.FloatVal())
	case TagString:
		return v.StrVal()
	case TagArray:
		if host != nil {
			host.Notice("Array to string conversion")
		}
		return "Array"
	case TagObject:
		if host != nil {
			return host.ObjectAsString(v.ObjectVal())
		}
		return ""
	default:
		return ""
	}
}

func formatPHPFloat(f float64) string {
	if math.IsNaN(f) {
		return "NAN"
	}
	if math.IsInf(f, 1) {
		return "INF"
	}
	if math.IsInf(f, -1) {
		return "-INF"
	}
	return strconv.FormatFloat(f, 'G', 14, 64)
}

// AsArray implements PHP's as_array coercion.
func AsArray(host Host, v *Value) *Value {
	v = Deref(v)
	switch v.Tag {
	case TagArray:
		return v
	case TagObject:
		result := NewArray()
		arr := result.ArrayVal()
		obj := v.ObjectVal()
		for i := 0; ; i++ {
			name, val, ok := obj.Attributes.at(i)
			if !ok {
				break
			}
			arr.set(StringKey(name), val)
		}
		return result
	case TagNull:
		return NewArray()
	default:
		result := NewArray()
		result.ArrayVal().append(v)
		return result
	}
}

// AsObject implements PHP's as_object coercion.
func AsObject(host Host, v *Value) *Value {
	v = Deref(v)
	if v.Tag == TagObject {
		return v
	}
	if host != nil {
		obj := host.DefaultObjectFromScalar(v)
		return &Value{Tag: TagObject, Data: obj, token: newToken()}
	}
	result := NewObject(nil)
	result.ObjectSet("scalar", v)
	return result
}

// IsTrue implements PHP's is_true truthiness rule.
func IsTrue(v *Value) bool {
	v = Deref(v)
	switch v.Tag {
	case TagBool:
		return v.BoolVal()
	case TagNull:
		return false
	case TagInt:
		return v.IntVal() != 0
	case TagFloat:
		f := v.FloatVal()
		return f != 0.0 && !math.IsNaN(f)
	case TagString:
		s := v.StrVal()
		return s != "" && s != "0"
	case TagArray:
		return v.ArrayVal().Len() > 0
	case TagObject:
		return true
	default:
		return v.IsResource()
	}
}
