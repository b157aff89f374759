// Package registry implements the three prebuilt, process-wide,
// sealed lookup tables (constants, builtin functions, builtin classes)
// built once at value-space construction.
package registry

import "github.com/wudi/heycore/values"

// BuiltinCallContext exposes the minimal services a builtin function
// implementation needs without creating a dependency back to the
// frame-based interpreter loop (an external collaborator). It is
// intentionally narrower than host.Interpreter: builtins only ever see
// the registry and the already-evaluated argument list.
type BuiltinCallContext interface {
	SymbolRegistry() *Registry
	LookupUserFunction(name string) (*Function, bool)
	LookupUserClass(name string) (*Class, bool)
}

// BuiltinImplementation is the Go-side body of a builtin function.
type BuiltinImplementation func(ctx BuiltinCallContext, args []*values.Value) (*values.Value, error)

// Parameter describes one formal parameter of a builtin or class method.
type Parameter struct {
	Name         string
	Type         string
	IsReference  bool
	IsVariadic   bool
	HasDefault   bool
	DefaultValue *values.Value
}

// Function describes a builtin function. User functions live entirely
// in the host; this type only ever describes builtins, so it carries
// no bytecode.
type Function struct {
	Name       string
	Parameters []*Parameter
	ReturnType string
	MinArgs    int
	MaxArgs    int
	IsVariadic bool
	Builtin    BuiltinImplementation

	// Visibility is only meaningful when Function describes a class
	// method (one of Class.Methods): "public", "private", or
	// "protected". Plain functions leave it empty.
	Visibility string
}

// Property describes a builtin class property.
type Property struct {
	Name         string
	Visibility   string
	IsStatic     bool
	Type         string
	DefaultValue *values.Value
}

// ClassConstant describes a builtin class constant.
type ClassConstant struct {
	Name       string
	Value      *values.Value
	Visibility string
}

// Class describes a builtin class.
type Class struct {
	Name       string
	Parent     string
	Interfaces []string
	Properties map[string]*Property
	Methods    map[string]*Function
	Constants  map[string]*ClassConstant
	IsAbstract bool
	IsFinal    bool
}
