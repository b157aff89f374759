// Package host defines the host-interpreter seam: the narrow interface
// the value core calls back into for diagnostics, function and class
// lookup, frame/globals access, and resource-id minting. The parser,
// bytecode compiler, and frame-based interpreter loop that implement
// this interface in a full PHP runtime are external collaborators out
// of scope for this module; this package defines only the seam and a
// reference implementation suitable for tests and the demo REPL.
package host

import (
	"github.com/wudi/heycore/registry"
	"github.com/wudi/heycore/values"
)

// Diagnostics exposes the severities the core reports through: the
// core never pretends a message was delivered — callers continue with
// a defined fallback regardless of what a Diagnostics implementation
// does with the message.
type Diagnostics interface {
	Notice(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Deprecated(format string, args ...interface{})
	Strict(format string, args ...interface{})
	Error(format string, args ...interface{})
	Fatal(format string, args ...interface{})
	CatchableFatal(format string, args ...interface{})
	RecoverableFatal(format string, args ...interface{})
	HippyWarn(format string, args ...interface{})
}

// Frame is the opaque current-frame handle; its contents belong
// entirely to the frame-based interpreter loop. The core only ever
// asks for the bound receiver and the lexical class context, both
// needed by the callback resolver.
type Frame interface {
	This() *values.Value
	ContextClass() interface{}
}

// Globals is the host's global variable table.
type Globals interface {
	Get(name string) (*values.Value, bool)
	Set(name string, v *values.Value)
}

// Interpreter is the complete host-interpreter handle the value core is
// built against.
type Interpreter interface {
	Diagnostics

	LookupFunction(name string) (*registry.Function, bool)
	LookupClassOrIntf(name string) (*registry.Class, bool)

	Frame() Frame
	ContextClass() interface{}
	Globals() Globals

	// NextResourceID mints the next id for a newly created resource.
	NextResourceID() values.ResourceID
	LastPosixErrno() int
	SetLastPosixErrno(n int)

	// CompileFile dispatches to the parser/bytecode compiler (an
	// external collaborator); the core treats the result as opaque.
	CompileFile(path string) (interface{}, error)

	// The values.Host projections: host-defined numeric/string
	// coercions for objects and resources, and the default-object
	// construction rule for as_object on a scalar.
	ObjectAsNumber(obj *values.Object) *values.Value
	ObjectAsString(obj *values.Object) string
	ResourceAsNumber(v *values.Value) *values.Value
	DefaultObjectFromScalar(v *values.Value) *values.Object
}

var (
	_ values.Host = Interpreter(nil)
)
