package values

// attr is one ordered (name, cell) slot of an Object's attribute map.
type attr struct {
	name string
	cell *Cell
}

// orderedAttrs is a name -> Cell map that remembers insertion order, the
// same ordering contract Array gives its keys.
type orderedAttrs struct {
	entries []*attr
	index   map[string]int
}

func newOrderedAttrs() *orderedAttrs {
	return &orderedAttrs{index: make(map[string]int)}
}

func (o *orderedAttrs) clone() *orderedAttrs {
	c := &orderedAttrs{
		entries: make([]*attr, len(o.entries)),
		index:   make(map[string]int, len(o.entries)),
	}
	for i, e := range o.entries {
		c.entries[i] = &attr{name: e.name, cell: NewCell(e.cell.Slot)}
		c.index[e.name] = i
	}
	return c
}

func (o *orderedAttrs) get(name string) *Value {
	if i, ok := o.index[name]; ok {
		return o.entries[i].cell.Slot
	}
	return nil
}

func (o *orderedAttrs) set(name string, v *Value) {
	if i, ok := o.index[name]; ok {
		o.entries[i].cell.Slot = v
		return
	}
	o.entries = append(o.entries, &attr{name: name, cell: NewCell(v)})
	o.index[name] = len(o.entries) - 1
}

func (o *orderedAttrs) unset(name string) {
	i, ok := o.index[name]
	if !ok {
		return
	}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	delete(o.index, name)
	for j := i; j < len(o.entries); j++ {
		o.index[o.entries[j].name] = j
	}
}

func (o *orderedAttrs) len() int { return len(o.entries) }

func (o *orderedAttrs) at(i int) (string, *Value, bool) {
	if i < 0 || i >= len(o.entries) {
		return "", nil, false
	}
	return o.entries[i].name, o.entries[i].cell.Slot, true
}

// Object is a class identity plus an ordered attribute map.
// Class identity is opaque to the core: the host supplies whatever value
// its class lookup returns and the core only ever compares it for
// equality (GetClass, the comparator's class-identity check).
type Object struct {
	Class      interface{}
	Attributes *orderedAttrs

	// Comparer, when non-nil, is the object's custom comparator: called
	// by the aggregate comparator before falling back to attribute
	// comparison. Returning ok=false signals InlineObjectComparison: the
	// caller falls through to default attribute-by-attribute comparison.
	Comparer func(other *Object) (result int, ok bool)

	// Invokable, when non-nil, makes the object resolvable as a
	// callback through its __invoke-style shape.
	Invokable func() (BoundInvocable, bool)
}

func (o *Object) clone() *Object {
	return &Object{
		Class:      o.Class,
		Attributes: o.Attributes.clone(),
		Comparer:   o.Comparer,
		Invokable:  o.Invokable,
	}
}

// ObjectGet returns a named attribute, or Null if unset.
func (v *Value) ObjectGet(name string) *Value {
	if v.Tag != TagObject {
		return NewNull()
	}
	if val := v.ObjectVal().Attributes.get(name); val != nil {
		return val
	}
	return NewNull()
}

// ObjectSet assigns a named attribute in place. Callers must ensure v is
// unique (DerefUnique) before calling, matching the maybe_inplace
// contract used throughout the array surface.
func (v *Value) ObjectSet(name string, val *Value) {
	if v.Tag != TagObject {
		return
	}
	v.ObjectVal().Attributes.set(name, val)
}

func (v *Value) ObjectUnset(name string) {
	if v.Tag != TagObject {
		return
	}
	v.ObjectVal().Attributes.unset(name)
}

// GetClass returns the object's opaque class identity, or nil for
// non-objects.
func GetClass(v *Value) interface{} {
	v = Deref(v)
	if v.Tag != TagObject {
		return nil
	}
	return v.ObjectVal().Class
}
