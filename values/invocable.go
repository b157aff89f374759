package values

// BoundInvocable is a callable value already paired with its receiver
// and visibility context. Defined here, rather than in package
// callback, so that Object.Invokable (an object's own invokable
// capability) can reference it without an import cycle.
type BoundInvocable struct {
	// Name is used in diagnostics ("<fname>() expects parameter ...").
	Name string
	// Receiver is the bound `this`, or nil for a static/plain function.
	Receiver *Value
	// Class is the opaque class identity methods are resolved/bound
	// against (for visibility checks performed by the host).
	Class interface{}
	// Call invokes the resolved target with already-evaluated
	// arguments. The host's frame/visibility machinery is responsible
	// for constructing Call; the core only resolves and stores it.
	Call func(args []*Value) (*Value, error)
}

// IsNull reports whether this is the null invocable returned on
// resolution failure.
func (b BoundInvocable) IsNull() bool { return b.Call == nil }
