package graph

// ContextToken identifies which generated-code variant of a module to
// read. Hosts may key variants by runtime name; membership is the only
// semantics a token guarantees, never ordering. The zero value means
// "no context" and selects a module's unkeyed source.
type ContextToken struct {
	runtimes map[string]struct{}
}

// NewContextToken builds a token from runtime names.
func NewContextToken(names ...string) ContextToken {
	if len(names) == 0 {
		return ContextToken{}
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return ContextToken{runtimes: set}
}

// Contains reports whether name is a member of the token.
func (t ContextToken) Contains(name string) bool {
	_, ok := t.runtimes[name]
	return ok
}

// Empty reports whether the token carries no runtime names.
func (t ContextToken) Empty() bool {
	return len(t.runtimes) == 0
}

// Merge returns a token containing the members of both tokens.
func (t ContextToken) Merge(other ContextToken) ContextToken {
	if t.Empty() {
		return other
	}
	if other.Empty() {
		return t
	}
	set := make(map[string]struct{}, len(t.runtimes)+len(other.runtimes))
	for n := range t.runtimes {
		set[n] = struct{}{}
	}
	for n := range other.runtimes {
		set[n] = struct{}{}
	}
	return ContextToken{runtimes: set}
}

// Names returns the member names in unspecified order. Callers must not
// rely on ordering; this exists for source-variant lookup only.
func (t ContextToken) Names() []string {
	out := make([]string, 0, len(t.runtimes))
	for n := range t.runtimes {
		out = append(out, n)
	}
	return out
}
