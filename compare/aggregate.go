package compare

import "github.com/wudi/heycore/values"

// task is one unit of work on the comparator's explicit stack: either a
// pending (left,right) pair still to compare, or a sentinel marking a
// deferred "unequal" verdict discovered earlier in iteration order.
type task struct {
	left, right *values.Value
	strict      bool
	sentinel    bool
}

// pairKey identifies an in-progress (left,right) aggregate comparison by
// pointer identity, used to break cycles: a self-referential array
// compared against itself would otherwise re-enqueue the same pair
// forever.
type pairKey struct{ a, b interface{} }

// compareAggregateRoot drives the iterative work-stack comparator for
// arrays and objects. It never recurses in Go for aggregate children —
// those are pushed onto stack instead — so the only unbounded resource
// it can consume is heap, not the call stack, and cycles are cut by the
// visited set below.
func compareAggregateRoot(host values.Host, left, right *values.Value, strict, ignoreOrder bool) int {
	stack := []task{{left: left, right: right, strict: strict}}
	visited := map[pairKey]bool{}
	result := 0

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.sentinel {
			if result == 0 {
				result = 1
			}
			continue
		}

		l, r := values.Deref(t.left), values.Deref(t.right)

		if l.Tag == values.TagArray && r.Tag == values.TagArray {
			if !markVisited(visited, l, r) {
				continue // cycle: already being compared, treat as equal
			}
			done, verdict := compareArrayLevel(host, l, r, t.strict, ignoreOrder, &stack)
			if done {
				if ignoreOrder || len(stack) == 0 {
					return verdict
				}
				stack = append(stack, task{sentinel: true})
			}
			continue
		}

		if l.Tag == values.TagObject && r.Tag == values.TagObject {
			if !markVisited(visited, l, r) {
				continue
			}
			done, verdict := compareObjectLevel(host, l, r, t.strict, ignoreOrder, &stack)
			if done {
				if ignoreOrder || len(stack) == 0 {
					return verdict
				}
				stack = append(stack, task{sentinel: true})
			}
			continue
		}

		// One side stopped being an aggregate (e.g. a reference
		// resolved to a scalar) — fall back to the scalar rules as a
		// leaf.
		c := compareScalar(host, l, r, t.strict)
		if c != 0 {
			if ignoreOrder || len(stack) == 0 {
				return c
			}
			stack = append(stack, task{sentinel: true})
		}
	}

	return result
}

// flushPending pushes pending's tasks onto stack in natural (reverse,
// for a LIFO stack) order so they pop in the order they were
// discovered. Callers must do this before any return from mid-scan —
// including an early verdict — so that an aggregate pair discovered
// earlier in iteration order is never dropped in favor of a scalar or
// missing-key verdict discovered later.
func flushPending(stack *[]task, pending []task) {
	for i := len(pending) - 1; i >= 0; i-- {
		*stack = append(*stack, pending[i])
	}
}

func markVisited(visited map[pairKey]bool, l, r *values.Value) bool {
	key := pairKey{a: identityOf(l), b: identityOf(r)}
	if visited[key] {
		return false
	}
	visited[key] = true
	return true
}

func identityOf(v *values.Value) interface{} {
	switch v.Tag {
	case values.TagArray:
		return v.ArrayVal()
	case values.TagObject:
		return v.ObjectVal()
	default:
		return v
	}
}

// compareArrayLevel compares one level of two arrays: length first, then
// a parallel scan in left's insertion order. Aggregate-pair children are
// pushed onto stack (in natural order) rather than recursed into
// directly. done=true means a final verdict for this pair was reached;
// the caller decides whether to return it now or defer it.
func compareArrayLevel(host values.Host, l, r *values.Value, strict, ignoreOrder bool, stack *[]task) (done bool, verdict int) {
	la, ra := l.ArrayVal(), r.ArrayVal()
	if la.Len() != ra.Len() {
		if la.Len() < ra.Len() {
			return true, -1
		}
		return true, 1
	}

	var pending []task
	for i := 0; ; i++ {
		lk, lv, ok := la.EntryAt(i)
		if !ok {
			break
		}
		var rv *values.Value
		if rk, rvCandidate, rok := ra.EntryAt(i); rok && rk == lk {
			// Fast path: identically-ordered keys.
			rv = rvCandidate
		} else {
			rv = ra.Get(lk)
			if rv == nil {
				flushPending(stack, pending)
				if ignoreOrder {
					return true, -1
				}
				return true, 1
			}
		}

		lv, rv = values.Deref(lv), values.Deref(rv)
		if isAggregateTag(lv.Tag) && isAggregateTag(rv.Tag) && lv.Tag == rv.Tag {
			pending = append(pending, task{left: lv, right: rv, strict: strict})
			continue
		}
		if c := compareScalar(host, lv, rv, strict); c != 0 {
			// Flush any aggregate pairs discovered earlier in this scan
			// onto the stack before deciding: they were found first in
			// iteration order and must be resolved before this verdict
			// is allowed to stand.
			flushPending(stack, pending)
			if ignoreOrder || len(*stack) == 0 {
				return true, c
			}
			// A difference was found but earlier-queued aggregate
			// work must resolve first: stop scanning this array and
			// defer by reporting a final verdict of 1.
			return true, 1
		}
	}

	flushPending(stack, pending)
	return false, 0
}

// compareObjectLevel mirrors compareArrayLevel for objects: first the
// object's own Comparer, then class identity, then attribute-by-attribute
// comparison using the same parallel-scan strategy.
func compareObjectLevel(host values.Host, l, r *values.Value, strict, ignoreOrder bool, stack *[]task) (done bool, verdict int) {
	lo, ro := l.ObjectVal(), r.ObjectVal()

	if lo.Comparer != nil {
		if result, ok := lo.Comparer(ro); ok {
			return true, result
		}
		// ok=false is InlineObjectComparison: fall through to default.
	}

	if strict || lo.Class != ro.Class {
		return true, 1
	}

	la, ra := values.AsArray(host, l).ArrayVal(), values.AsArray(host, r).ArrayVal()
	if la.Len() != ra.Len() {
		if la.Len() < ra.Len() {
			return true, -1
		}
		return true, 1
	}

	var pending []task
	for i := 0; ; i++ {
		lname, lv, ok := la.EntryAt(i)
		if !ok {
			break
		}
		var rv *values.Value
		if rname, rvCandidate, rok := ra.EntryAt(i); rok && rname == lname {
			rv = rvCandidate
		} else {
			rv = ra.Get(lname)
			if rv == nil {
				flushPending(stack, pending)
				if ignoreOrder {
					return true, -1
				}
				return true, 1
			}
		}

		lv, rv = values.Deref(lv), values.Deref(rv)
		if isAggregateTag(lv.Tag) && isAggregateTag(rv.Tag) && lv.Tag == rv.Tag {
			pending = append(pending, task{left: lv, right: rv, strict: strict})
			continue
		}
		if c := compareScalar(host, lv, rv, strict); c != 0 {
			// Same ordering fix as compareArrayLevel: flush pending
			// aggregate attributes before letting this verdict stand.
			flushPending(stack, pending)
			if ignoreOrder || len(*stack) == 0 {
				return true, c
			}
			return true, 1
		}
	}

	flushPending(stack, pending)
	return false, 0
}
