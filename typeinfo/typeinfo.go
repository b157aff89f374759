// Package typeinfo implements the small, fixed-contract type-name
// forwarders and the host errno slot: get_type_name, gettypename, and
// a thin errno convenience wrapper.
package typeinfo

import "github.com/wudi/heycore/values"

// typeNames is indexed by values.Tag in declaration order, matching
// PHP's own get_type/gettype listing: integer, double, string, array,
// NULL, boolean, object, resource x5, constant, delayed constant,
// resource x2.
var typeNames = [...]string{
	values.TagInt:                 "integer",
	values.TagFloat:                "double",
	values.TagString:               "string",
	values.TagArray:                "array",
	values.TagNull:                 "NULL",
	values.TagBool:                 "boolean",
	values.TagObject:               "object",
	values.TagFileRes:              "resource",
	values.TagDirRes:               "resource",
	values.TagStreamContext:        "resource",
	values.TagMysqlLink:            "resource",
	values.TagMysqlResult:          "resource",
	values.TagConstant:             "constant",
	values.TagDelayedClassConstant: "delayed constant",
	values.TagXmlParserRes:         "resource",
	values.TagMcryptRes:            "resource",
}

// GetTypeName returns the fixed, tag-indexed type name.
func GetTypeName(tag values.Tag) string {
	if int(tag) < 0 || int(tag) >= len(typeNames) {
		return "unknown type"
	}
	return typeNames[tag]
}

// ClassNamer resolves an object's opaque class identity to a display
// name, without pulling in the full host seam.
type ClassNamer interface {
	ClassName(identity interface{}) string
}

// GetTypeNameOf mirrors gettypename(v): every tag uses GetTypeName,
// except objects, which render as "instance of <class-name>" via namer.
// A nil namer falls back to GetTypeName for objects too.
func GetTypeNameOf(namer ClassNamer, v *values.Value) string {
	v = values.Deref(v)
	if v.IsObject() && namer != nil {
		return "instance of " + namer.ClassName(values.GetClass(v))
	}
	return GetTypeName(v.Tag)
}

// ErrnoHost is the narrow slice of the host-interpreter seam (the
// last_posix_errno slot) this package's convenience wrapper needs.
type ErrnoHost interface {
	LastPosixErrno() int
	SetLastPosixErrno(n int)
}

// Errno reads the host's last-errno slot.
func Errno(host ErrnoHost) int { return host.LastPosixErrno() }

// SetErrno writes the host's last-errno slot.
func SetErrno(host ErrnoHost, n int) { host.SetLastPosixErrno(n) }
