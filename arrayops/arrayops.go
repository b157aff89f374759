// Package arrayops implements PHP's array construction, access, and
// iteration surface: constructors, get/set, the maybe_inplace
// copy-on-write variants, slicing, and scoped iteration.
package arrayops

import "github.com/wudi/heycore/values"

// Host is the diagnostic slice arrayops needs: the `notice` emitted by
// GetItem's give_notice mode, plus the fatal CreateIterRef raises when
// asked to iterate a non-reference by reference.
type Host interface {
	values.Host
	Notice(format string, args ...interface{})
	Fatal(format string, args ...interface{})
}

// FromList builds an array from a slice of values under successive
// integer keys 0..n-1.
func FromList(items []*values.Value) *values.Value {
	result := values.NewArray()
	arr := result.ArrayVal()
	for _, v := range items {
		arr.AppendDirect(v)
	}
	return result
}

// FromPairs builds an array from explicit (key,value) pairs in order.
// When allowBogus is false, a key that is not a scalar (Int, String,
// Float, Bool or Null) is stringified via AsString with host, so host
// diagnostics fire (e.g. the array-to-string notice); when allowBogus is
// true such a key goes through KeyFromValue, which stringifies it without
// a host.
func FromPairs(host Host, keys, vals []*values.Value, allowBogus bool) *values.Value {
	result := values.NewArray()
	arr := result.ArrayVal()
	n := len(keys)
	if len(vals) < n {
		n = len(vals)
	}
	for i := 0; i < n; i++ {
		k := values.KeyFromValue(keys[i])
		if !allowBogus {
			dv := values.Deref(keys[i])
			if dv.Tag != values.TagInt && dv.Tag != values.TagString && dv.Tag != values.TagNull && dv.Tag != values.TagBool && dv.Tag != values.TagFloat {
				k = values.StringKey(values.AsString(host, keys[i]))
			}
		}
		arr.SetDirect(k, vals[i])
	}
	return result
}

// FromRdict builds an array directly from an ordered key->value mapping
// already expressed in this module's own types.
func FromRdict(pairs []values.Pair) *values.Value {
	result := values.NewArray()
	arr := result.ArrayVal()
	for _, p := range pairs {
		arr.SetDirect(p.Key, p.Value)
	}
	return result
}

// GetItem reads arr[key]; an undefined index yields Null, optionally
// emitting a notice.
func GetItem(host Host, arr *values.Value, key values.Key, giveNotice bool) *values.Value {
	a := values.Deref(arr)
	if a.Tag != values.TagArray {
		return values.NewNull()
	}
	if v := a.ArrayVal().Get(key); v != nil {
		return v
	}
	if giveNotice && host != nil {
		host.Notice("Undefined array key %s", keyLabel(key))
	}
	return values.NewNull()
}

func keyLabel(k values.Key) string {
	if k.IsInt {
		return intToString(k.I)
	}
	return "\"" + k.S + "\""
}

func intToString(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// SetItem returns a possibly-new array with key set to value,
// copy-on-write: arr itself is never mutated.
func SetItem(arr *values.Value, key values.Key, value *values.Value) *values.Value {
	a := values.Deref(arr)
	if a.Tag != values.TagArray {
		return arr
	}
	clone := a.ArrayVal().Clone()
	clone.SetDirect(key, value)
	return values.WrapArray(clone)
}

// SetItemMaybeInplace mutates arr in place. It does not check uniqueness
// itself and never falls back to SetItem's copy: the contract is that
// callers pass the DerefUnique'd value here.
func SetItemMaybeInplace(unique *values.Value, key values.Key, value *values.Value) *values.Value {
	a := values.Deref(unique)
	if a.Tag != values.TagArray {
		return unique
	}
	a.ArrayVal().SetDirect(key, value)
	return a
}

// AppendItemMaybeInplace appends to a provably-unique array in place.
func AppendItemMaybeInplace(unique *values.Value, value *values.Value) *values.Value {
	a := values.Deref(unique)
	if a.Tag != values.TagArray {
		return unique
	}
	a.ArrayVal().AppendDirect(value)
	return a
}

// PackItemMaybeInplace promotes integer-valued keys to an append: if key
// is an Int (or a numeric-looking string key normalizing to Int), or is
// nil/Null, value is appended under the next integer key; any other key
// is written verbatim.
func PackItemMaybeInplace(unique *values.Value, key *values.Value, value *values.Value) *values.Value {
	a := values.Deref(unique)
	if a.Tag != values.TagArray {
		return unique
	}
	if key == nil || values.Deref(key).IsNull() {
		a.ArrayVal().AppendDirect(value)
		return a
	}
	k := values.KeyFromValue(key)
	if k.IsInt {
		a.ArrayVal().AppendDirect(value)
	} else {
		a.ArrayVal().SetDirect(k, value)
	}
	return a
}

// normalizeSliceBounds applies PHP's negative-index rules for slice: a
// negative start counts from the end; a negative length encodes "until
// |length| before the end."
func normalizeSliceBounds(n, start, length int, hasLength bool) (s, l int) {
	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if !hasLength {
		return start, n - start
	}
	if length < 0 {
		end := n + length
		if end < start {
			end = start
		}
		return start, end - start
	}
	if start+length > n {
		length = n - start
	}
	return start, length
}

// Slice implements PHP's array_slice: negative start/length handling,
// key-preservation policy, order-respecting result.
func Slice(arr *values.Value, start, length int, hasLength bool, keepKeys bool, keepStrKeys bool) *values.Value {
	a := values.Deref(arr)
	if a.Tag != values.TagArray {
		return values.NewArray()
	}
	pairs := a.ArrayVal().Pairs()
	s, l := normalizeSliceBounds(len(pairs), start, length, hasLength)
	if l < 0 {
		l = 0
	}

	result := values.NewArray()
	out := result.ArrayVal()
	for i := s; i < s+l && i < len(pairs); i++ {
		p := pairs[i]
		if keepKeys || (keepStrKeys && !p.Key.IsInt) {
			out.SetDirect(p.Key, p.Value)
		} else {
			out.AppendDirect(p.Value)
		}
	}
	return result
}

// Iter is a scoped iterator over an array's (key,value) pairs in
// insertion order. Release must be called on every exit path (including
// a panic recovery in the caller); while the iterator is alive,
// structural mutation of the underlying array is undefined: release is
// guaranteed, but behavior under concurrent mutation is not.
type Iter struct {
	pairs    []values.Pair
	pos      int
	arr      *values.Array
	byRef    bool
	released bool
}

// NewIter opens a by-value iteration scope over arr.
func NewIter(arr *values.Value) *Iter {
	a := values.Deref(arr)
	if a.Tag != values.TagArray {
		return &Iter{}
	}
	return &Iter{pairs: a.ArrayVal().Pairs(), arr: a.ArrayVal()}
}

// CreateIterRef opens a by-reference iteration scope: ref must itself be
// a reference handle (values.Value.IsReference()); after each Next, the
// caller's WriteBack stores its mutation into the underlying array slot.
// Requesting by-ref iteration over a non-reference value is a fatal,
// matching PHP's "foreach by-ref on non-variable" error.
func CreateIterRef(host Host, ref *values.Value) *Iter {
	if ref == nil || !ref.IsReference() {
		if host != nil {
			host.Fatal("Only variables should be passed by reference")
		}
		return &Iter{}
	}
	target := values.Deref(ref)
	if target.Tag != values.TagArray {
		if host != nil {
			host.Fatal("Only variables should be passed by reference")
		}
		return &Iter{}
	}
	a := target.ArrayVal()
	return &Iter{pairs: a.Pairs(), arr: a, byRef: true}
}

// Next advances the iterator, returning (pair, true) or (zero, false)
// when exhausted.
func (it *Iter) Next() (values.Pair, bool) {
	if it.pos >= len(it.pairs) {
		return values.Pair{}, false
	}
	p := it.pairs[it.pos]
	it.pos++
	return p, true
}

// WriteBack stores newValue at the last-yielded pair's key, used by
// by-reference foreach to push mutations back into the underlying array.
func (it *Iter) WriteBack(newValue *values.Value) {
	if it.arr == nil || it.pos == 0 {
		return
	}
	it.arr.SetDirect(it.pairs[it.pos-1].Key, newValue)
}

// Release ends the iteration scope. Safe to call multiple times.
func (it *Iter) Release() {
	it.released = true
	it.pairs = nil
	it.arr = nil
}

// Released reports whether Release has already run, so callers can
// assert the scoped-resource contract in tests.
func (it *Iter) Released() bool { return it.released }
