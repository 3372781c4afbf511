// Package ability implements declarative, per-role permission rules.
//
// An Ability is the compiled rule list for one principal. It is built fresh
// per request from the static policy tables because ownership conditions
// embed the principal's id; it must never be shared across principals.
package ability

import (
	"reflect"

	"github.com/google/uuid"
)

// Ability is the compiled rule sequence for one principal. It is immutable,
// cheap to construct, and performs no I/O.
type Ability struct {
	rules []Rule
}

// Can reports whether the ability grants action on subject, optionally against
// a concrete resource instance. The rule list is scanned in registration
// order and the first match wins; absence of any matching rule is a deny.
// Unknown action or subject strings simply match nothing.
//
// A condition-bearing rule checked with a nil resource is treated as
// non-matching: callers must load the concrete resource before checking
// ownership-scoped permissions.
func (a Ability) Can(action Action, subject Subject, resource Resource) bool {
	for _, rule := range a.rules {
		if rule.matches(action, subject, resource) {
			return true
		}
	}
	return false
}

// Rules returns a copy of the compiled rule list.
func (a Ability) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

func (r Rule) matches(action Action, subject Subject, resource Resource) bool {
	if r.Action != action && r.Action != ActionManage {
		return false
	}
	if r.Subject != subject && r.Subject != SubjectAll {
		return false
	}
	if len(r.Condition) == 0 {
		return true
	}
	if resource == nil {
		return false
	}
	return r.Condition.Matches(resource)
}

// Matches reports whether every field listed in the condition is present on
// the resource and equal to the expected value. A missing field is a
// non-match, not an error.
func (c Condition) Matches(resource Resource) bool {
	for _, fv := range c {
		got, ok := resource[fv.Field]
		if !ok || !valuesEqual(got, fv.Value) {
			return false
		}
	}
	return true
}

// valuesEqual compares condition values by identifier equality, not deep
// equality. Values of different underlying types never match.
func valuesEqual(a, b any) bool {
	a, b = normalizeValue(a), normalizeValue(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// normalizeValue widens the identifier representations that appear in
// practice (UUIDs from domain structs, strings and integers from decoded
// field maps) to a single comparable form.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case uuid.UUID:
		return x.String()
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	default:
		return v
	}
}
