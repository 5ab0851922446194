package domain

// Attributes constrains a lookup: every named attribute must equal its value.
// Attributes not listed are unconstrained.
type Attributes map[string]string

// Attributed is implemented by records that can be matched by attribute name.
type Attributed interface {
	// Attr returns the string value of the named attribute.
	// The second result is false for unknown attribute names.
	Attr(name string) (string, bool)
}

// Matches reports whether rec satisfies every constraint in attrs.
// An unknown attribute name never matches.
func (attrs Attributes) Matches(rec Attributed) bool {
	for name, want := range attrs {
		got, ok := rec.Attr(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Get returns the single record in items matching all attrs.
// It fails with a LookupError wrapping ErrNotFound when nothing matches
// and ErrMultipleMatches when more than one record matches.
func Get[T Attributed](items []T, attrs Attributes) (T, error) {
	return GetFunc(items, func(item T) bool { return attrs.Matches(item) }, describeQuery(attrs))
}

// GetFunc returns the single element of items satisfying match.
// query is only used to describe the lookup in errors.
func GetFunc[T any](items []T, match func(T) bool, query string) (T, error) {
	var (
		found T
		count int
	)
	for _, item := range items {
		if !match(item) {
			continue
		}
		if count == 0 {
			found = item
		}
		count++
	}

	switch count {
	case 0:
		var zero T
		return zero, &LookupError{Query: query, Count: 0, Err: ErrNotFound}
	case 1:
		return found, nil
	default:
		var zero T
		return zero, &LookupError{Query: query, Count: count, Err: ErrMultipleMatches}
	}
}
