// Package callback implements resolving a PHP callable value (one of
// four shapes, plus invokable objects) to a bound invocable the host
// can call through uniformly.
package callback

import (
	"fmt"

	"github.com/wudi/heycore/corerr"
	"github.com/wudi/heycore/host"
	"github.com/wudi/heycore/registry"
	"github.com/wudi/heycore/values"
)

// Frame aliases host.Frame: the resolver needs the bound receiver and
// lexical class, both already defined on the host-interpreter seam.
// Aliasing (rather than redeclaring a structurally identical interface)
// is required for host.Interpreter implementations to satisfy Host
// below — Go interface satisfaction matches method signatures by exact
// type identity, not structural equivalence of named return types.
type Frame = host.Frame

// Host is the narrow host-interpreter seam this package resolves
// callbacks against. host.DefaultInterpreter satisfies it directly
// (the host.Interpreter interface alone does not, since it lacks the
// registry.BuiltinCallContext methods); the dependency stays one-directional, since
// package host never imports callback.
type Host interface {
	registry.BuiltinCallContext
	Frame() Frame
	Warn(format string, args ...interface{})
}

func call(host Host, fn *registry.Function, name string, receiver *values.Value, class interface{}) values.BoundInvocable {
	return values.BoundInvocable{
		Name:     name,
		Receiver: receiver,
		Class:    class,
		Call: func(args []*values.Value) (*values.Value, error) {
			if fn.Builtin == nil {
				return nil, fmt.Errorf("callback: %s has no callable body", name)
			}
			return fn.Builtin(host, args)
		},
	}
}

func lookupFunction(host Host, name string) (*registry.Function, bool) {
	if fn, ok := host.LookupUserFunction(name); ok {
		return fn, true
	}
	return host.SymbolRegistry().GetFunction(name)
}

func lookupClass(host Host, name string) (*registry.Class, bool) {
	if c, ok := host.LookupUserClass(name); ok {
		return c, true
	}
	return host.SymbolRegistry().GetClass(name)
}

func lookupMethod(class *registry.Class, name string) (*registry.Function, bool) {
	m, ok := class.Methods[name]
	return m, ok
}

// Resolve implements the core callable-resolution logic: it accepts the
// five callable shapes and returns a bound invocable, or raises
// InvalidCallback on failure. Callers needing the PHP-visible warning
// text should use GetCallback instead.
func Resolve(host Host, v *values.Value) (values.BoundInvocable, error) {
	v = values.Deref(v)

	switch {
	case v.IsString():
		return resolveString(host, v.StrVal())
	case v.IsArray():
		return resolveArray(host, v)
	case v.IsObject():
		return resolveInvokableObject(host, v)
	default:
		return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("%s given, expected a string, array or object", classify(v)))
	}
}

func classify(v *values.Value) string {
	if v.IsNull() {
		return "null"
	}
	return v.Tag.String()
}

// resolveString handles shapes 1 ("fn") and 2 ("Cls::meth").
func resolveString(host Host, s string) (values.BoundInvocable, error) {
	if idx := indexOfSeparator(s); idx >= 0 {
		clsName, methName := s[:idx], s[idx+len(classMethodSep):]
		return resolveStaticString(host, clsName, methName)
	}
	if !values.IsValidVarName(s) {
		return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("function %q is not a valid function name", s))
	}
	fn, ok := lookupFunction(host, s)
	if !ok {
		return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("function %q not found or invalid function name", s))
	}
	return call(host, fn, s, nil, nil), nil
}

const classMethodSep = "::"

func indexOfSeparator(s string) int {
	for i := 0; i+len(classMethodSep) <= len(s); i++ {
		if s[i:i+len(classMethodSep)] == classMethodSep {
			return i
		}
	}
	return -1
}

func resolveStaticString(host Host, clsName, methName string) (values.BoundInvocable, error) {
	if !values.IsValidClsName(clsName) {
		return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("class %q is not a valid class name", clsName))
	}
	class, ok := lookupClass(host, clsName)
	if !ok {
		return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("class %q not found", clsName))
	}
	method, ok := lookupMethod(class, methName)
	if !ok {
		return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("class %s does not have a method %q", clsName, methName))
	}
	if err := checkVisibility(host, class, method); err != nil {
		return values.BoundInvocable{}, err
	}
	frame := host.Frame()
	var receiver *values.Value
	if frame != nil {
		receiver = frame.This()
	}
	return call(host, method, clsName+classMethodSep+methName, receiver, class), nil
}

// resolveArray handles shapes 3 ([Instance, name]) and 4 ([ClassName, name]).
func resolveArray(host Host, v *values.Value) (values.BoundInvocable, error) {
	arr := v.ArrayVal()
	if arr.Len() != 2 {
		return values.BoundInvocable{}, corerr.NewInvalidCallback("array must have exactly two elements")
	}
	first := arr.Get(values.IntKey(0))
	if first == nil {
		return values.BoundInvocable{}, corerr.NewInvalidCallback("array callback missing index 0")
	}
	second := arr.Get(values.IntKey(1))
	if second == nil {
		return values.BoundInvocable{}, corerr.NewInvalidCallback("array callback missing index 1")
	}
	second = values.Deref(second)
	if !second.IsString() {
		return values.BoundInvocable{}, corerr.NewInvalidCallback("second array member is not a valid method name")
	}
	methName := second.StrVal()

	first = values.Deref(first)
	switch {
	case first.IsObject():
		class := values.GetClass(first)
		c, ok := classOf(host, class)
		if !ok {
			return values.BoundInvocable{}, corerr.NewInvalidCallback("class of the given object could not be resolved")
		}
		method, ok := lookupMethod(c, methName)
		if !ok {
			return values.BoundInvocable{}, corerr.NewInvalidCallback(fmt.Sprintf("class %s does not have a method %q", c.Name, methName))
		}
		if err := checkVisibility(host, c, method); err != nil {
			return values.BoundInvocable{}, err
		}
		return call(host, method, c.Name+classMethodSep+methName, first, c), nil
	case first.IsString():
		return resolveStaticString(host, first.StrVal(), methName)
	default:
		return values.BoundInvocable{}, corerr.NewInvalidCallback("first array member must be an object or a class name")
	}
}

// classOf adapts an opaque class identity (as returned by values.GetClass)
// back to a *registry.Class by name, when the identity is itself a class
// name string or a *registry.Class already.
func classOf(host Host, identity interface{}) (*registry.Class, bool) {
	switch c := identity.(type) {
	case *registry.Class:
		return c, true
	case string:
		return lookupClass(host, c)
	default:
		return nil, false
	}
}

// resolveInvokableObject handles shape 5.
func resolveInvokableObject(host Host, v *values.Value) (values.BoundInvocable, error) {
	obj := v.ObjectVal()
	if obj.Invokable == nil {
		return values.BoundInvocable{}, corerr.NewInvalidCallback("object does not implement an invoke capability")
	}
	b, ok := obj.Invokable()
	if !ok {
		return values.BoundInvocable{}, corerr.NewInvalidCallback("object's invoke capability declined to bind")
	}
	return b, nil
}

// checkVisibility enforces a minimal, host-agnostic visibility rule: a
// private or protected method may only be resolved from within the same
// class's lexical context (an exact class-name match; subclasses are not
// recognised); any other method is allowed through. Full accessibility
// semantics (protected across subclasses, trait provenance) belong to the host's class
// machinery, an external collaborator — this is the slice of it the
// core needs to reject the common failure case.
func checkVisibility(host Host, class *registry.Class, method *registry.Function) error {
	if method.Visibility != "private" && method.Visibility != "protected" {
		return nil
	}
	frame := host.Frame()
	if frame != nil && frame.ContextClass() == class.Name {
		return nil
	}
	return corerr.NewVisibilityError(fmt.Sprintf("cannot access %s method %s::%s", method.Visibility, class.Name, method.Name))
}

// GetCallback implements the outer resolution wrapper: on resolution
// failure it optionally emits the PHP-style parameter warning and
// returns the null invocable rather than propagating the error.
func GetCallback(host Host, fname string, argNo int, v *values.Value, giveWarning bool) values.BoundInvocable {
	b, err := Resolve(host, v)
	if err == nil {
		return b
	}
	if giveWarning {
		host.Warn("%s() expects parameter %d to be a valid callback, %s", fname, argNo, corerr.PlainMessage(err))
	}
	return values.BoundInvocable{}
}
