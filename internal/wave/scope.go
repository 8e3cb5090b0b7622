package wave

// Scope is one level of the design hierarchy. It owns its child scopes and
// the signals declared directly in it, both kept in declaration order. The
// parent pointer is a non-owning back-reference used for path
// reconstruction.
type Scope struct {
	Name string

	parent   *Scope
	children []*Scope
	signals  []*Signal
}

// NewScope returns a root scope. The root's name is empty and does not
// appear in signal paths.
func NewScope() *Scope {
	return &Scope{}
}

// Parent returns the enclosing scope, or nil for the root.
func (sc *Scope) Parent() *Scope { return sc.parent }

// Children returns the child scopes in declaration order.
func (sc *Scope) Children() []*Scope { return sc.children }

// Signals returns the signals declared directly in this scope, in
// declaration order.
func (sc *Scope) Signals() []*Signal { return sc.signals }

// Child returns the named child scope, or nil.
func (sc *Scope) Child(name string) *Scope {
	for _, c := range sc.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// EnsureChild returns the named child scope, creating it if needed.
func (sc *Scope) EnsureChild(name string) *Scope {
	if c := sc.Child(name); c != nil {
		return c
	}
	c := &Scope{Name: name, parent: sc}
	sc.children = append(sc.children, c)
	return c
}

// Path returns the dot-separated path from the root to this scope. The root
// itself has an empty path.
func (sc *Scope) Path() string {
	if sc.parent == nil {
		return ""
	}
	if p := sc.parent.Path(); p != "" {
		return p + "." + sc.Name
	}
	return sc.Name
}

// addSignal declares a signal in this scope.
func (sc *Scope) addSignal(s *Signal) {
	s.scope = sc
	sc.signals = append(sc.signals, s)
}

// Walk traverses the scope tree depth-first in declaration order, visiting
// each scope's signals before descending into its children. It is the
// traversal order used for unqualified name resolution and for the stats
// and at-time reports. The walk stops early when fn returns false.
func (sc *Scope) Walk(fn func(sc *Scope, depth int) bool) bool {
	return sc.walk(0, fn)
}

func (sc *Scope) walk(depth int, fn func(*Scope, int) bool) bool {
	if !fn(sc, depth) {
		return false
	}
	for _, c := range sc.children {
		if !c.walk(depth+1, fn) {
			return false
		}
	}
	return true
}
