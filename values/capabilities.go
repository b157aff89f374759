package values

// StrLen implements the `strlen` capability: the byte length of a string
// value (0 for anything else — callers are expected to check IsString
// first where the distinction matters).
func StrLen(v *Value) int {
	v = Deref(v)
	if v.Tag != TagString {
		return 0
	}
	return len(v.StrVal())
}

// ArrayLen implements the `arraylen` capability.
func ArrayLen(v *Value) int {
	v = Deref(v)
	if v.Tag != TagArray {
		return 0
	}
	return v.ArrayVal().Len()
}

// GetItem implements the `getitem` capability used by generic code that
// needs to read one element without caring whether give_notice fires —
// see arrayops.GetItem for the full contract including the
// diagnostic.
func GetItem(v *Value, key Key) *Value {
	v = Deref(v)
	if v.Tag != TagArray {
		return NewNull()
	}
	if val := v.ArrayVal().Get(key); val != nil {
		return val
	}
	return NewNull()
}

// IssetIndex implements the `isset_index` capability.
func IssetIndex(v *Value, key Key) bool {
	v = Deref(v)
	if v.Tag != TagArray {
		return false
	}
	return v.ArrayVal().IssetIndex(key)
}
