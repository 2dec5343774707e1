package deprecation

import "sync"

// LocatorResolver discovers a human-readable definition path for records that
// were declared without an explicit locator.
//
// Resolution is best-effort by contract: a resolver may answer differently
// depending on what has been registered or loaded at call time, which is why
// records cache the first outcome (see [Record.Locator]). Implementations
// must be safe for concurrent use.
type LocatorResolver interface {
	// Resolve returns the locator for rec and true, or "" and false when
	// the record is unknown to this resolver.
	Resolve(rec *Record) (string, bool)
}

// BindingResolver resolves locators from explicitly registered name bindings.
//
// Packages that declare records in exported variables register each binding
// once, typically in an init function:
//
//	var OldLogin = dep.MustDefine("login is deprecated", ...)
//
//	func init() {
//	    resolver.Bind("auth.OldLogin", OldLogin)
//	}
//
// Resolve matches by pointer identity, not message equality, so two records
// with identical text never shadow each other. The first binding registered
// for a record wins.
type BindingResolver struct {
	mu      sync.RWMutex
	names   []string
	records []*Record
}

// NewBindingResolver creates an empty BindingResolver.
func NewBindingResolver() *BindingResolver {
	return &BindingResolver{}
}

// Bind registers name as the locator for rec. Nil records are ignored.
// Binding the same record twice keeps the first name.
func (b *BindingResolver) Bind(name string, rec *Record) {
	if rec == nil || name == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names = append(b.names, name)
	b.records = append(b.records, rec)
}

// Resolve returns the first name bound to the identical record.
func (b *BindingResolver) Resolve(rec *Record) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i, r := range b.records {
		if r == rec {
			return b.names[i], true
		}
	}
	return "", false
}

// Len returns the number of registered bindings.
func (b *BindingResolver) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}
