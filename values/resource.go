package values

import (
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql" // registers the "mysql" database/sql driver used by MysqlLink
	"github.com/google/uuid"
)

// ResourceID is the monotonic integer id every resource carries.
// Minting is the host's job; the core only stores and compares the id.
type ResourceID int64

// FileResource backs a TagFileRes value: an open file handle opaque to
// the core beyond its id.
type FileResource struct {
	ID   ResourceID
	File *os.File
}

// DirResource backs a TagDirRes value: an open directory stream.
type DirResource struct {
	ID  ResourceID
	Dir *os.File
}

// StreamContextResource backs a TagStreamContext value: a bag of
// stream-wrapper options opaque to the core.
type StreamContextResource struct {
	ID      ResourceID
	Options map[string]map[string]*Value
}

// MysqlLinkResource backs a TagMysqlLink value. The core never performs
// network I/O itself (the mysql module's implementation is an external
// collaborator); it only carries the *sql.DB the host obtained through
// database/sql with the mysql driver registered, so that the value
// core's resource-id and as_number/as_string projections have a
// concrete, driver-typed payload to operate on.
type MysqlLinkResource struct {
	ID ResourceID
	DB *sql.DB
}

// MysqlResultResource backs a TagMysqlResult value: a buffered result set
// obtained from a MysqlLinkResource query.
type MysqlResultResource struct {
	ID      ResourceID
	Rows    *sql.Rows
	Columns []string
}

// XmlParserResource and McryptResource are opaque handles whose bodies
// live in their respective stdlib modules; the core only needs their
// identity and resource id.
type XmlParserResource struct {
	ID      ResourceID
	Payload interface{}
}

type McryptResource struct {
	ID      ResourceID
	Payload interface{}
}

// ConstantPayload backs a TagConstant value: a name pending resolution
// against the constants registry.
type ConstantPayload struct {
	Name string
}

// DelayedClassConstantPayload backs a TagDelayedClassConstant value: a
// placeholder resolved at first access against a class not yet loaded.
type DelayedClassConstantPayload struct {
	ClassName    string
	ConstantName string
}

func NewFileResource(id ResourceID, f *os.File) *Value {
	return &Value{Tag: TagFileRes, Data: &FileResource{ID: id, File: f}}
}

func NewDirResource(id ResourceID, f *os.File) *Value {
	return &Value{Tag: TagDirRes, Data: &DirResource{ID: id, Dir: f}}
}

func NewStreamContextResource(id ResourceID) *Value {
	return &Value{Tag: TagStreamContext, Data: &StreamContextResource{ID: id, Options: make(map[string]map[string]*Value)}}
}

func NewMysqlLinkResource(id ResourceID, db *sql.DB) *Value {
	return &Value{Tag: TagMysqlLink, Data: &MysqlLinkResource{ID: id, DB: db}}
}

func NewMysqlResultResource(id ResourceID, rows *sql.Rows, columns []string) *Value {
	return &Value{Tag: TagMysqlResult, Data: &MysqlResultResource{ID: id, Rows: rows, Columns: columns}}
}

func NewXmlParserResource(id ResourceID, payload interface{}) *Value {
	return &Value{Tag: TagXmlParserRes, Data: &XmlParserResource{ID: id, Payload: payload}}
}

func NewMcryptResource(id ResourceID, payload interface{}) *Value {
	return &Value{Tag: TagMcryptRes, Data: &McryptResource{ID: id, Payload: payload}}
}

func NewConstant(name string) *Value {
	return &Value{Tag: TagConstant, Data: &ConstantPayload{Name: name}}
}

func NewDelayedClassConstant(class, constant string) *Value {
	return &Value{Tag: TagDelayedClassConstant, Data: &DelayedClassConstantPayload{ClassName: class, ConstantName: constant}}
}

// ResourceIDOf extracts a resource's id uniformly across every resource
// kind, or -1 for a non-resource value.
func ResourceIDOf(v *Value) ResourceID {
	v = Deref(v)
	switch d := v.Data.(type) {
	case *FileResource:
		return d.ID
	case *DirResource:
		return d.ID
	case *StreamContextResource:
		return d.ID
	case *MysqlLinkResource:
		return d.ID
	case *MysqlResultResource:
		return d.ID
	case *XmlParserResource:
		return d.ID
	case *McryptResource:
		return d.ID
	default:
		return -1
	}
}

// InstanceToken mints a fresh uuid.UUID suitable for host-side resource
// registries keyed by identity rather than by the PHP-visible integer
// id (e.g. de-duplicating resource cleanup across multiple Value copies
// pointing at the same underlying os.File).
func InstanceToken() uuid.UUID {
	return uuid.New()
}
