package values

// Key is an array key: always an Int or a String. A string key that
// parses exactly as a decimal integer fitting int64 is normalized to
// Int by NormalizeKey, so Key itself never needs to carry ambiguity
// about which form is canonical.
type Key struct {
	IsInt bool
	I     int64
	S     string
}

func IntKey(i int64) Key    { return Key{IsInt: true, I: i} }
func StringKey(s string) Key { return Key{S: s} }

// entry is one (key, value) slot. value is a *Cell so that by-reference
// iteration (CreateIterRef) can write back through the same slot a
// plain getitem reads. A non-referenced element's Cell simply holds one
// owner: the array itself.
type entry struct {
	key   Key
	value *Cell
}

// Array is an ordered mapping from Key to Value. Keys preserve insertion
// order; duplicate insertion overwrites in place (the existing entry's
// Cell is rewritten, its position in the order unchanged). NextIntKey
// provides the key used by append.
type Array struct {
	entries    []*entry
	index      map[Key]int
	NextIntKey int64
}

func newArray() *Array {
	return &Array{index: make(map[Key]int)}
}

// clone produces a deep-enough copy for the copy-on-write contract: a new
// entries slice and index, with fresh Cells so that mutating the clone
// never reaches back into the original's slots. Values held in those
// cells are NOT deep-copied (PHP arrays share immutable scalars and
// object handles by value/identity respectively).
func (a *Array) clone() *Array {
	c := &Array{
		entries:    make([]*entry, len(a.entries)),
		index:      make(map[Key]int, len(a.entries)),
		NextIntKey: a.NextIntKey,
	}
	for i, e := range a.entries {
		c.entries[i] = &entry{key: e.key, value: NewCell(e.value.Slot)}
		c.index[e.key] = i
	}
	return c
}

// Len returns the number of (key,value) pairs.
func (a *Array) Len() int { return len(a.entries) }

// NormalizeKey enforces PHP's array key canonicalization rule: a string
// key that parses exactly as a decimal integer fitting int64 is stored
// as Int.
func NormalizeKey(k Key) Key {
	if k.IsInt {
		return k
	}
	if i, ok := parseCanonicalIntKey(k.S); ok {
		return IntKey(i)
	}
	return k
}

// parseCanonicalIntKey accepts exactly the decimal forms PHP treats as
// integer-like array keys: an optional leading '-', then digits with no
// leading zero (other than the literal "0" itself).
func parseCanonicalIntKey(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	i := 0
	neg := false
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i >= len(s) {
		return 0, false
	}
	if s[i] == '0' && len(s)-i > 1 {
		return 0, false // "00", "-01" etc. are not canonical
	}
	if neg && s[i] == '0' {
		return 0, false // "-0" is not canonical
	}
	var n int64
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int64(c - '0')
		if n > (9223372036854775807-d)/10 {
			return 0, false // overflow: not representable, keep as string
		}
		n = n*10 + d
	}
	if neg {
		n = -n
	}
	return n, true
}

// KeyFromValue derives an array key from a (dereferenced) Value following
// PHP's key-coercion rules used by every array-indexing operation.
func KeyFromValue(v *Value) Key {
	v = Deref(v)
	switch v.Tag {
	case TagNull:
		return StringKey("")
	case TagBool:
		if v.BoolVal() {
			return IntKey(1)
		}
		return IntKey(0)
	case TagInt:
		return IntKey(v.IntVal())
	case TagFloat:
		return IntKey(int64(v.FloatVal()))
	case TagString:
		return NormalizeKey(StringKey(v.StrVal()))
	default:
		return StringKey(AsString(nil, v))
	}
}

// getEntry returns the entry for k, or nil.
func (a *Array) getEntry(k Key) *entry {
	k = NormalizeKey(k)
	if i, ok := a.index[k]; ok {
		return a.entries[i]
	}
	return nil
}

// Get returns the value stored at k, or nil if unset.
func (a *Array) Get(k Key) *Value {
	if e := a.getEntry(k); e != nil {
		return e.value.Slot
	}
	return nil
}

// IssetIndex reports whether k is set to a non-null value, matching
// PHP's isset() semantics for array indices.
func (a *Array) IssetIndex(k Key) bool {
	e := a.getEntry(k)
	return e != nil && !Deref(e.value.Slot).IsNull()
}

// set stores value at k in place, overwriting an existing slot or
// appending a new one while preserving insertion order. Call only on an
// array already proven unique (see the *maybe_inplace entry points).
func (a *Array) set(k Key, value *Value) {
	k = NormalizeKey(k)
	if e := a.getEntry(k); e != nil {
		e.value.Slot = value
	} else {
		a.entries = append(a.entries, &entry{key: k, value: NewCell(value)})
		a.index[k] = len(a.entries) - 1
	}
	if k.IsInt && k.I >= a.NextIntKey {
		a.NextIntKey = k.I + 1
	}
}

// setCell binds k directly to an existing Cell, used when the caller
// wants the array slot and some external reference to share storage.
func (a *Array) setCell(k Key, cell *Cell) {
	k = NormalizeKey(k)
	if e := a.getEntry(k); e != nil {
		e.value = cell
	} else {
		a.entries = append(a.entries, &entry{key: k, value: cell})
		a.index[k] = len(a.entries) - 1
	}
	if k.IsInt && k.I >= a.NextIntKey {
		a.NextIntKey = k.I + 1
	}
}

// unset removes k if present, shifting later entries' index positions.
func (a *Array) unset(k Key) {
	k = NormalizeKey(k)
	i, ok := a.index[k]
	if !ok {
		return
	}
	a.entries = append(a.entries[:i], a.entries[i+1:]...)
	delete(a.index, k)
	for j := i; j < len(a.entries); j++ {
		a.index[a.entries[j].key] = j
	}
}

// append stores value under the next integer key and advances the
// counter, PHP's `$a[] = value` semantics.
func (a *Array) append(value *Value) Key {
	k := IntKey(a.NextIntKey)
	a.set(k, value)
	return k
}

// Pair is one (key, value) observation from iteration.
type Pair struct {
	Key   Key
	Value *Value
}

// Pairs returns a snapshot of (key,value) pairs in insertion order. The
// snapshot is safe to range over even if the array is mutated afterward.
func (a *Array) Pairs() []Pair {
	out := make([]Pair, len(a.entries))
	for i, e := range a.entries {
		out[i] = Pair{Key: e.key, Value: e.value.Slot}
	}
	return out
}

// EntryAt returns the key and value at position i in insertion order, used
// by the aggregate comparator's parallel-iteration fast path.
func (a *Array) EntryAt(i int) (Key, *Value, bool) {
	if i < 0 || i >= len(a.entries) {
		return Key{}, nil, false
	}
	return a.entries[i].key, a.entries[i].value.Slot, true
}

// SetDirect stores value at k in place, exported for other packages in
// this module (arith's array union, arrayops' surface) that operate on
// an array already proven unique.
func (a *Array) SetDirect(k Key, value *Value) { a.set(k, value) }

// SetCellDirect binds k directly to an existing Cell (by-reference
// element assignment).
func (a *Array) SetCellDirect(k Key, cell *Cell) { a.setCell(k, cell) }

// AppendDirect stores value under the next integer key.
func (a *Array) AppendDirect(value *Value) Key { return a.append(value) }

// UnsetDirect removes k if present.
func (a *Array) UnsetDirect(k Key) { a.unset(k) }

// HasKey reports whether k is present, regardless of whether its value
// is null (unlike IssetIndex).
func (a *Array) HasKey(k Key) bool {
	_, ok := a.index[NormalizeKey(k)]
	return ok
}

// Clone exposes the copy-on-write clone operation.
func (a *Array) Clone() *Array { return a.clone() }
