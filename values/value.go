// Package values implements the PHP value core: the tagged value union,
// reference cells, and the copy-on-write contract every other package in
// this module builds on.
package values

import (
	"fmt"

	"github.com/google/uuid"
)

// Tag identifies the kind of a Value. The sixteen kinds mirror PHP's own
// runtime type union, not Go's.
type Tag byte

const (
	TagInt Tag = iota
	TagFloat
	TagString
	TagArray
	TagNull
	TagBool
	TagObject
	TagFileRes
	TagDirRes
	TagStreamContext
	TagMysqlLink
	TagMysqlResult
	TagConstant
	TagDelayedClassConstant
	TagXmlParserRes
	TagMcryptRes
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "Int"
	case TagFloat:
		return "Float"
	case TagString:
		return "String"
	case TagArray:
		return "Array"
	case TagNull:
		return "Null"
	case TagBool:
		return "Bool"
	case TagObject:
		return "Object"
	case TagFileRes:
		return "FileRes"
	case TagDirRes:
		return "DirRes"
	case TagStreamContext:
		return "StreamContext"
	case TagMysqlLink:
		return "MysqlLink"
	case TagMysqlResult:
		return "MysqlResult"
	case TagConstant:
		return "Constant"
	case TagDelayedClassConstant:
		return "DelayedClassConstant"
	case TagXmlParserRes:
		return "XmlParserRes"
	case TagMcryptRes:
		return "McryptRes"
	default:
		return "Unknown"
	}
}

// Value is the tagged union every operation in this module reads and
// writes. Data holds the tag-specific payload; which concrete type it
// holds is fully determined by Tag. Reference cells are NOT one of the
// sixteen PHP-visible tags (gettype() never reports "reference"); a
// referenced value instead carries a non-nil ref, orthogonal to
// Tag/Data. A reference cell never itself contains another reference
// cell, so reference is modeled as a separate orthogonal dimension
// rather than as one more Tag.
type Value struct {
	Tag  Tag
	Data interface{}
	ref  *Cell

	// token proves uniqueness: a fresh constructor result mints a new
	// token, and DerefUnique clones (minting a new token) whenever the
	// held token isn't provably exclusive to the caller. Only Array and
	// Object payloads carry a meaningful token; scalars are always
	// unique because Go copies them by value.
	token uuid.UUID
}

func newToken() uuid.UUID {
	return uuid.New()
}

// The scalar constructors below allocate a new *Value wrapper per call,
// so that callers can use pointer identity freely.

func NewNull() *Value                  { return &Value{Tag: TagNull} }
func NewBool(b bool) *Value            { return &Value{Tag: TagBool, Data: b} }
func NewInt(i int64) *Value            { return &Value{Tag: TagInt, Data: i} }
func NewFloat(f float64) *Value        { return &Value{Tag: TagFloat, Data: f} }
func NewString(s string) *Value        { return &Value{Tag: TagString, Data: s} }

// NewArray constructs a fresh, empty, unique array.
func NewArray() *Value {
	return &Value{Tag: TagArray, Data: newArray(), token: newToken()}
}

// WrapArray builds a Value around an already-constructed Array, minting
// a fresh uniqueness token. Used by callers outside this package (e.g.
// arrayops' copy-on-write SetItem) that clone an Array via Array.Clone
// and need to hand back a properly-tokened Value.
func WrapArray(a *Array) *Value {
	return &Value{Tag: TagArray, Data: a, token: newToken()}
}

// WrapObject mirrors WrapArray for a pre-built Object.
func WrapObject(o *Object) *Value {
	return &Value{Tag: TagObject, Data: o, token: newToken()}
}

// NewObject constructs a fresh object of the given class identity. The
// class identity itself is opaque to the core: it is whatever
// comparable value the host's class lookup hands back.
func NewObject(class interface{}) *Value {
	return &Value{
		Tag: TagObject,
		Data: &Object{
			Class:      class,
			Attributes: newOrderedAttrs(),
		},
		token: newToken(),
	}
}

// Cell is a single-slot indirection holding exactly one Value. Writing
// through a Cell mutates the slot every reference shares.
type Cell struct {
	Slot *Value
}

func NewCell(v *Value) *Cell {
	return &Cell{Slot: v}
}

// WrapReference returns a Value that derefs to cell's current contents.
// cell.Slot must never itself be a reference; callers that bind a
// reference to an already-referenced value must deref first.
func WrapReference(cell *Cell) *Value {
	return &Value{ref: cell}
}

// IsReference reports whether v is a reference handle rather than a
// direct value.
func (v *Value) IsReference() bool {
	return v != nil && v.ref != nil
}

// RefCell returns the underlying cell of a reference handle, or nil.
func (v *Value) RefCell() *Cell {
	if v == nil {
		return nil
	}
	return v.ref
}

// Deref unwraps one step of reference indirection. It is idempotent on
// non-reference values.
func Deref(v *Value) *Value {
	if v == nil {
		return NewNull()
	}
	if v.ref != nil {
		return Deref(v.ref.Slot)
	}
	return v
}

// IsUnique reports whether v's payload is provably not shared with any
// other holder. Scalars are always unique; arrays/objects carry a token
// minted fresh by their constructors and rotated by DerefUnique.
func (v *Value) IsUnique(lastSeen uuid.UUID) bool {
	switch v.Tag {
	case TagArray, TagObject:
		return v.token == lastSeen
	default:
		return true
	}
}

// Token exposes the current uniqueness token of an aggregate value; the
// zero UUID for non-aggregates (which are always unique).
func (v *Value) Token() uuid.UUID {
	return v.token
}

// DerefUnique returns a value provably unique to the caller: if v is a
// scalar, v itself (scalars are copied by value in Go); if v is an
// aggregate, always a shallow clone carrying a freshly minted token,
// even when v was already unique to the caller (it does not consult
// Token to skip the copy). This is the capability-token half of the
// copy-on-write contract.
func DerefUnique(v *Value) *Value {
	v = Deref(v)
	switch v.Tag {
	case TagArray:
		return &Value{Tag: TagArray, Data: v.Data.(*Array).clone(), token: newToken()}
	case TagObject:
		obj := v.Data.(*Object)
		return &Value{Tag: TagObject, Data: obj.clone(), token: newToken()}
	default:
		return v
	}
}

func (v *Value) String() string {
	return fmt.Sprintf("Value(%s)", v.Tag)
}

// Type predicates used throughout the comparator and coercion kernel.

func (v *Value) IsNull() bool   { return v.Tag == TagNull }
func (v *Value) IsBool() bool   { return v.Tag == TagBool }
func (v *Value) IsInt() bool    { return v.Tag == TagInt }
func (v *Value) IsFloat() bool  { return v.Tag == TagFloat }
func (v *Value) IsString() bool { return v.Tag == TagString }
func (v *Value) IsArray() bool  { return v.Tag == TagArray }
func (v *Value) IsObject() bool { return v.Tag == TagObject }
func (v *Value) IsNumber() bool { return v.Tag == TagInt || v.Tag == TagFloat }
func (v *Value) IsResource() bool {
	switch v.Tag {
	case TagFileRes, TagDirRes, TagStreamContext, TagMysqlLink, TagMysqlResult, TagXmlParserRes, TagMcryptRes:
		return true
	default:
		return false
	}
}

func (v *Value) BoolVal() bool     { return v.Data.(bool) }
func (v *Value) IntVal() int64     { return v.Data.(int64) }
func (v *Value) FloatVal() float64 { return v.Data.(float64) }
func (v *Value) StrVal() string    { return v.Data.(string) }
func (v *Value) ArrayVal() *Array  { return v.Data.(*Array) }
func (v *Value) ObjectVal() *Object {
	return v.Data.(*Object)
}
