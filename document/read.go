package document

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/0xalexb/hjarta-field/path"
)

// ErrPropertyAccess is returned when a step is applied to a value that cannot be indexed.
var ErrPropertyAccess = errors.New("property access error")

// AccessError describes a step that could not be applied.
type AccessError struct {
	Step  path.Step
	Value Value
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("unable to read key %s on object %s: cannot index %s", e.Step, e.Value, e.describe())
}

func (e *AccessError) describe() string {
	if e.Value.kind == KindAbsent {
		return "undefined"
	}

	return e.Value.kind.String()
}

// Is matches ErrPropertyAccess.
func (e *AccessError) Is(target error) bool {
	return target == ErrPropertyAccess
}

// Read walks root along p and returns the value it ends on.
//
// Missing map keys and out of range indexes yield Absent rather than an error;
// applying a further step to Absent, null or a scalar fails with *AccessError.
func Read(p path.Path, root Value) (Value, error) {
	current := root

	for _, step := range p {
		next, err := readStep(step, current)
		if err != nil {
			return Value{}, err
		}

		current = next
	}

	return current, nil
}

func readStep(step path.Step, v Value) (Value, error) {
	switch v.kind {
	case KindMap:
		field, _ := v.Field(step.Key())

		return field, nil
	case KindSequence:
		index, isIndex := step.Index()
		if !isIndex {
			var ok bool

			index, ok = canonicalIndex(step.Key())
			if !ok {
				return Value{}, nil
			}
		}

		item, _ := v.Item(index)

		return item, nil
	default:
		return Value{}, &AccessError{Step: step, Value: v}
	}
}

// canonicalIndex parses keys such as "0" or "12" but not "01", "+1" or "-1".
func canonicalIndex(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || strconv.Itoa(n) != key {
		return 0, false
	}

	return n, true
}
