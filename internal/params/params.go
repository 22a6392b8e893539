// Package params provides the canonical parameter list used to configure the
// potential-evaluation engine. A List is a bag of named values backed by koanf,
// keyed by dotted paths (e.g. "hmat.tolerance"). Values are restricted to a
// closed set of kinds: integers, floats, booleans, and strings. Consumers read
// recognized keys with lookup-with-default accessors; unrecognized keys are
// preserved verbatim for downstream components.
package params

import (
	"fmt"
	"math"
	"sort"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"github.com/knadh/koanf/v2"
)

// Delim is the key path separator used by parameter lists.
const Delim = "."

// List is a name-to-value mapping with a closed set of value kinds.
// It is not safe for concurrent mutation; see EvaluationOptions for the
// single-owner configuration contract.
type List struct {
	k *koanf.Koanf
}

// New returns an empty parameter list.
func New() *List {
	return &List{k: koanf.New(Delim)}
}

// FromKoanf wraps an already-populated koanf instance in a List.
// The instance must use Delim as its separator. Ownership transfers to the
// returned List.
func FromKoanf(k *koanf.Koanf) *List {
	if k == nil {
		return New()
	}
	return &List{k: k}
}

// FromMap builds a parameter list from a flat or nested map. Values must
// belong to the closed kind set; anything else fails with an invalid-argument
// error naming the offending key.
func FromMap(m map[string]interface{}) (*List, error) {
	l := New()
	for key, value := range m {
		if err := l.Set(key, value); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Set stores a value under the given key, normalizing it to one of the closed
// kinds (int64, float64, bool, string). Unsupported value types fail with an
// invalid-argument error and leave the list unchanged.
func (l *List) Set(key string, value interface{}) error {
	if key == "" {
		return evalerr.NewInvalidArgument("parameter key must not be empty")
	}
	normalized, err := normalize(key, value)
	if err != nil {
		return err
	}
	return l.k.Set(key, normalized)
}

// Has reports whether the list contains the given key.
func (l *List) Has(key string) bool {
	return l.k.Exists(key)
}

// Int returns the integer stored under key, or def if the key is absent.
// Float values with no fractional part are accepted; other kinds report an
// invalid-argument error.
func (l *List) Int(key string, def int) (int, error) {
	if !l.k.Exists(key) {
		return def, nil
	}
	switch v := l.k.Get(key).(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return int(v), nil
		}
		return 0, evalerr.NewInvalidArgument(fmt.Sprintf("parameter %q: expected integer, got %v", key, v))
	default:
		return 0, evalerr.NewInvalidArgument(fmt.Sprintf("parameter %q: expected integer, got %T", key, v))
	}
}

// Float returns the float stored under key, or def if the key is absent.
// Integer values are widened.
func (l *List) Float(key string, def float64) (float64, error) {
	if !l.k.Exists(key) {
		return def, nil
	}
	switch v := l.k.Get(key).(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, evalerr.NewInvalidArgument(fmt.Sprintf("parameter %q: expected number, got %T", key, v))
	}
}

// Bool returns the boolean stored under key, or def if the key is absent.
func (l *List) Bool(key string, def bool) (bool, error) {
	if !l.k.Exists(key) {
		return def, nil
	}
	v, ok := l.k.Get(key).(bool)
	if !ok {
		return false, evalerr.NewInvalidArgument(fmt.Sprintf("parameter %q: expected boolean, got %T", key, l.k.Get(key)))
	}
	return v, nil
}

// String returns the string stored under key, or def if the key is absent.
func (l *List) String(key string, def string) (string, error) {
	if !l.k.Exists(key) {
		return def, nil
	}
	v, ok := l.k.Get(key).(string)
	if !ok {
		return "", evalerr.NewInvalidArgument(fmt.Sprintf("parameter %q: expected string, got %T", key, l.k.Get(key)))
	}
	return v, nil
}

// Get returns the raw value stored under key, or nil if absent.
func (l *List) Get(key string) interface{} {
	return l.k.Get(key)
}

// Keys returns all keys in the list in sorted order.
func (l *List) Keys() []string {
	keys := l.k.Keys()
	sort.Strings(keys)
	return keys
}

// All returns a flat key-to-value snapshot of the list.
func (l *List) All() map[string]interface{} {
	return l.k.All()
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	c := New()
	for key, value := range l.k.All() {
		// Values are already normalized; Set cannot fail here.
		_ = c.k.Set(key, value)
	}
	return c
}

// normalize coerces a value into the closed kind set.
func normalize(key string, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, evalerr.NewInvalidArgument(
				fmt.Sprintf("parameter %q: value %d overflows the integer range", key, v))
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, evalerr.NewInvalidArgument(
				fmt.Sprintf("parameter %q: value %d overflows the integer range", key, v))
		}
		return int64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case bool:
		return v, nil
	case string:
		return v, nil
	default:
		return nil, evalerr.NewInvalidArgument(
			fmt.Sprintf("parameter %q: unsupported value type %T (want integer, float, boolean, or string)", key, value))
	}
}
