package host

import (
	"fmt"
	"log"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/wudi/heycore/registry"
	"github.com/wudi/heycore/values"
)

// LogSink is a Diagnostics implementation that writes through the
// standard log package: a single mutex-guarded struct tracking the
// last error and routing every severity through one formatter.
type LogSink struct {
	mu        sync.Mutex
	lastError string
}

func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) record(level, format string, args ...interface{}) {
	msg := sprintf(format, args...)
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	log.Printf("PHP %s:  %s", level, msg)
}

func (s *LogSink) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *LogSink) Notice(format string, args ...interface{})           { s.record("Notice", format, args...) }
func (s *LogSink) Warn(format string, args ...interface{})             { s.record("Warning", format, args...) }
func (s *LogSink) Deprecated(format string, args ...interface{})       { s.record("Deprecated", format, args...) }
func (s *LogSink) Strict(format string, args ...interface{})           { s.record("Strict Standards", format, args...) }
func (s *LogSink) Error(format string, args ...interface{})            { s.record("Error", format, args...) }
func (s *LogSink) Fatal(format string, args ...interface{})            { s.record("Fatal error", format, args...) }
func (s *LogSink) CatchableFatal(format string, args ...interface{})   { s.record("Catchable fatal error", format, args...) }
func (s *LogSink) RecoverableFatal(format string, args ...interface{}) { s.record("Recoverable fatal error", format, args...) }
func (s *LogSink) HippyWarn(format string, args ...interface{})        { s.record("Warning", format, args...) }

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// ResourceIDMinter implements the host's monotonic resource-id counter,
// guarded the same way LogSink guards its error state.
type ResourceIDMinter struct {
	mu   sync.Mutex
	next int64
}

// Next mints the next id. Rendering an id for diagnostics is Describe's
// job.
func (m *ResourceIDMinter) Next() values.ResourceID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return values.ResourceID(m.next)
}

// Describe renders a resource id with thousands separators for log
// lines, e.g. "resource #12,345".
func (m *ResourceIDMinter) Describe(id values.ResourceID) string {
	return "resource #" + humanize.Comma(int64(id))
}

// mapGlobals is a minimal Globals backed by a plain map, sufficient for
// the demo REPL and tests; a full interpreter's global frame is an
// external collaborator.
type mapGlobals struct {
	mu   sync.RWMutex
	vars map[string]*values.Value
}

func newMapGlobals() *mapGlobals {
	return &mapGlobals{vars: make(map[string]*values.Value)}
}

func (g *mapGlobals) Get(name string) (*values.Value, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.vars[name]
	return v, ok
}

func (g *mapGlobals) Set(name string, v *values.Value) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vars[name] = v
}

// rootFrame is a no-receiver, no-context frame used outside any method
// call.
type rootFrame struct{}

func (rootFrame) This() *values.Value          { return values.NewNull() }
func (rootFrame) ContextClass() interface{}    { return nil }

// DefaultInterpreter is a minimal, self-contained Interpreter suitable
// for tests and the demo REPL: diagnostics via LogSink, a flat global
// table, a sealed Registry, and an errno slot. CompileFile always
// errors, since the parser/bytecode compiler are external collaborators
// this package deliberately does not implement.
type DefaultInterpreter struct {
	*LogSink
	registry *registry.Registry
	globals  *mapGlobals
	ids      ResourceIDMinter
	errnoMu  sync.Mutex
	errno    int
}

// NewDefaultInterpreter wires a sealed Registry (word size 8, i.e.
// 64-bit PHP_INT_MAX/PHP_INT_SIZE) into a ready-to-use Interpreter.
func NewDefaultInterpreter() (*DefaultInterpreter, error) {
	reg, err := registry.New(8)
	if err != nil {
		return nil, err
	}
	return &DefaultInterpreter{
		LogSink:  NewLogSink(),
		registry: reg,
		globals:  newMapGlobals(),
	}, nil
}

func (d *DefaultInterpreter) LookupFunction(name string) (*registry.Function, bool) {
	return d.registry.GetFunction(name)
}

func (d *DefaultInterpreter) LookupClassOrIntf(name string) (*registry.Class, bool) {
	return d.registry.GetClass(name)
}

// SymbolRegistry, LookupUserFunction and LookupUserClass satisfy
// registry.BuiltinCallContext: this reference interpreter keeps no
// separate user-function table of its own (the frame-based interpreter
// loop that compiles and owns one is an external collaborator), so
// user lookups degrade to the same sealed registry builtins resolve
// against.
func (d *DefaultInterpreter) SymbolRegistry() *registry.Registry { return d.registry }

func (d *DefaultInterpreter) LookupUserFunction(name string) (*registry.Function, bool) {
	return d.registry.GetFunction(name)
}

func (d *DefaultInterpreter) LookupUserClass(name string) (*registry.Class, bool) {
	return d.registry.GetClass(name)
}

func (d *DefaultInterpreter) Frame() Frame             { return rootFrame{} }
func (d *DefaultInterpreter) ContextClass() interface{} { return nil }
func (d *DefaultInterpreter) Globals() Globals         { return d.globals }

func (d *DefaultInterpreter) NextResourceID() values.ResourceID { return d.ids.Next() }

func (d *DefaultInterpreter) LastPosixErrno() int {
	d.errnoMu.Lock()
	defer d.errnoMu.Unlock()
	return d.errno
}

func (d *DefaultInterpreter) SetLastPosixErrno(n int) {
	d.errnoMu.Lock()
	defer d.errnoMu.Unlock()
	d.errno = n
}

func (d *DefaultInterpreter) CompileFile(path string) (interface{}, error) {
	return nil, fmt.Errorf("host: CompileFile(%q): no parser/bytecode compiler wired into this reference interpreter", path)
}

// ObjectAsNumber/ObjectAsString/ResourceAsNumber/DefaultObjectFromScalar
// implement the values.Host projections with simple, class-agnostic
// defaults a richer host would override per-class (e.g. DateTime's
// numeric projection).
func (d *DefaultInterpreter) ObjectAsNumber(obj *values.Object) *values.Value {
	return values.NewInt(1)
}

func (d *DefaultInterpreter) ObjectAsString(obj *values.Object) string {
	return "Object"
}

func (d *DefaultInterpreter) ResourceAsNumber(v *values.Value) *values.Value {
	return values.NewInt(int64(values.ResourceIDOf(v)))
}

func (d *DefaultInterpreter) DefaultObjectFromScalar(v *values.Value) *values.Object {
	boxed := values.NewObject("stdClass")
	boxed.ObjectSet("scalar", v)
	return boxed.ObjectVal()
}

var _ Interpreter = (*DefaultInterpreter)(nil)
