package callback

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wudi/heycore/host"
	"github.com/wudi/heycore/registry"
	"github.com/wudi/heycore/values"
)

// fakeHost is a minimal Host fixture: user functions/classes live in plain
// maps rather than the production sealed Registry, since lookupFunction/
// lookupClass already try the user tables first (registry.BuiltinCallContext)
// before falling back to SymbolRegistry, and the sealed registry seals
// itself at construction so it cannot accept ad-hoc test fixtures.
type fakeHost struct {
	funcs   map[string]*registry.Function
	classes map[string]*registry.Class
	reg     *registry.Registry
	frame   Frame
	warned  []string
}

func newFakeHost(t *testing.T) *fakeHost {
	t.Helper()
	reg, err := registry.New(8)
	assert.NoError(t, err)
	return &fakeHost{
		funcs:   map[string]*registry.Function{},
		classes: map[string]*registry.Class{},
		reg:     reg,
	}
}

func (h *fakeHost) SymbolRegistry() *registry.Registry { return h.reg }
func (h *fakeHost) LookupUserFunction(name string) (*registry.Function, bool) {
	fn, ok := h.funcs[name]
	return fn, ok
}
func (h *fakeHost) LookupUserClass(name string) (*registry.Class, bool) {
	c, ok := h.classes[name]
	return c, ok
}
func (h *fakeHost) Frame() Frame { return h.frame }
func (h *fakeHost) Warn(format string, args ...interface{}) {
	h.warned = append(h.warned, fmt.Sprintf(format, args...))
}

type fakeFrame struct {
	this         *values.Value
	contextClass interface{}
}

func (f fakeFrame) This() *values.Value       { return f.this }
func (f fakeFrame) ContextClass() interface{} { return f.contextClass }

func TestResolvePlainFunctionName(t *testing.T) {
	h := newFakeHost(t)
	h.funcs["my_func"] = &registry.Function{
		Name: "my_func",
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			return values.NewInt(1), nil
		},
	}

	b, err := Resolve(h, values.NewString("my_func"))
	assert.NoError(t, err)
	assert.Equal(t, "my_func", b.Name)
	assert.Nil(t, b.Receiver)

	result, err := b.Call(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.IntVal())
}

func TestResolveUnknownFunctionIsInvalidCallback(t *testing.T) {
	h := newFakeHost(t)
	_, err := Resolve(h, values.NewString("does_not_exist"))
	assert.Error(t, err)
}

func TestResolveInvalidFunctionNameShape(t *testing.T) {
	h := newFakeHost(t)
	_, err := Resolve(h, values.NewString("123-not-a-name"))
	assert.Error(t, err)
}

func TestResolveStaticStringShape(t *testing.T) {
	h := newFakeHost(t)
	method := &registry.Function{
		Name:       "doIt",
		Visibility: "public",
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			return values.NewString("called"), nil
		},
	}
	h.classes["MyCls"] = &registry.Class{
		Name:    "MyCls",
		Methods: map[string]*registry.Function{"doIt": method},
	}

	b, err := Resolve(h, values.NewString("MyCls::doIt"))
	assert.NoError(t, err)
	result, err := b.Call(nil)
	assert.NoError(t, err)
	assert.Equal(t, "called", result.StrVal())
}

func TestResolveStaticStringMissingMethodFails(t *testing.T) {
	h := newFakeHost(t)
	h.classes["Other"] = &registry.Class{Name: "Other", Methods: map[string]*registry.Function{}}

	_, err := Resolve(h, values.NewString("Other::missing"))
	assert.Error(t, err)
}

func TestResolvePrivateMethodFromOutsideContextFails(t *testing.T) {
	h := newFakeHost(t)
	method := &registry.Function{Name: "secret", Visibility: "private"}
	h.classes["Secretive"] = &registry.Class{Name: "Secretive", Methods: map[string]*registry.Function{"secret": method}}

	_, err := Resolve(h, values.NewString("Secretive::secret"))
	assert.Error(t, err)
}

func TestResolvePrivateMethodFromMatchingContextSucceeds(t *testing.T) {
	h := newFakeHost(t)
	method := &registry.Function{
		Name:       "secret",
		Visibility: "private",
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			return values.NewInt(1), nil
		},
	}
	h.classes["Secretive"] = &registry.Class{Name: "Secretive", Methods: map[string]*registry.Function{"secret": method}}
	h.frame = fakeFrame{contextClass: "Secretive"}

	_, err := Resolve(h, values.NewString("Secretive::secret"))
	assert.NoError(t, err)
}

func TestResolveArrayInstanceMethodShape(t *testing.T) {
	h := newFakeHost(t)
	method := &registry.Function{
		Name:       "greet",
		Visibility: "public",
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			return values.NewString("hi"), nil
		},
	}
	class := &registry.Class{Name: "Greeter", Methods: map[string]*registry.Function{"greet": method}}
	h.classes["Greeter"] = class

	obj := values.NewObject(class)
	arr := values.NewArray()
	arr.ArrayVal().AppendDirect(obj)
	arr.ArrayVal().AppendDirect(values.NewString("greet"))

	b, err := Resolve(h, arr)
	assert.NoError(t, err)
	assert.Same(t, obj, b.Receiver)
	result, err := b.Call(nil)
	assert.NoError(t, err)
	assert.Equal(t, "hi", result.StrVal())
}

func TestResolveArrayClassNameShape(t *testing.T) {
	h := newFakeHost(t)
	method := &registry.Function{
		Name:       "make",
		Visibility: "public",
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			return values.NewString("made"), nil
		},
	}
	h.classes["Factory"] = &registry.Class{Name: "Factory", Methods: map[string]*registry.Function{"make": method}}

	arr := values.NewArray()
	arr.ArrayVal().AppendDirect(values.NewString("Factory"))
	arr.ArrayVal().AppendDirect(values.NewString("make"))

	b, err := Resolve(h, arr)
	assert.NoError(t, err)
	result, err := b.Call(nil)
	assert.NoError(t, err)
	assert.Equal(t, "made", result.StrVal())
}

func TestResolveArrayWrongLengthFails(t *testing.T) {
	h := newFakeHost(t)
	arr := values.NewArray()
	arr.ArrayVal().AppendDirect(values.NewString("only one"))
	_, err := Resolve(h, arr)
	assert.Error(t, err)
}

func TestResolveInvokableObject(t *testing.T) {
	h := newFakeHost(t)
	obj := values.NewObject("Closure")
	obj.ObjectVal().Invokable = func() (values.BoundInvocable, bool) {
		return values.BoundInvocable{
			Name: "closure",
			Call: func(args []*values.Value) (*values.Value, error) { return values.NewInt(7), nil },
		}, true
	}
	b, err := Resolve(h, obj)
	assert.NoError(t, err)
	result, err := b.Call(nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), result.IntVal())
}

func TestResolveNonInvokableObjectFails(t *testing.T) {
	h := newFakeHost(t)
	obj := values.NewObject("stdClass")
	_, err := Resolve(h, obj)
	assert.Error(t, err)
}

func TestGetCallbackEmitsWarningOnFailure(t *testing.T) {
	h := newFakeHost(t)
	b := GetCallback(h, "array_map", 1, values.NewString("MyCls::missing_method"), true)
	assert.True(t, b.IsNull())
	assert.Len(t, h.warned, 1)
	assert.Contains(t, h.warned[0], "array_map() expects parameter 1 to be a valid callback")
}

func TestGetCallbackSilentWithoutWarning(t *testing.T) {
	h := newFakeHost(t)
	b := GetCallback(h, "array_map", 1, values.NewString("definitely_missing"), false)
	assert.True(t, b.IsNull())
	assert.Len(t, h.warned, 0)
}

// Exercises a Host implementation backed by the concrete reference
// interpreter, confirming it satisfies callback.Host end to end.
func TestDefaultInterpreterSatisfiesHost(t *testing.T) {
	interp, err := host.NewDefaultInterpreter()
	assert.NoError(t, err)
	var h Host = interp
	_, err = Resolve(h, values.NewString("definitely_missing"))
	assert.Error(t, err)
}
