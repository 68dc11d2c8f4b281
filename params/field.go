// Package params is the registry of every parameter a RAD cluster
// configuration may set, grouped by the namespace that consumes it.
package params

import "fmt"

// Kind is the element type of a parameter value.
type Kind int

// The supported element kinds.
const (
	IntKind Kind = iota
	FloatKind
	StringKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape tells whether a parameter holds a single value or an ordered list
// indexed by network id.
type Shape int

// The supported shapes.
const (
	Scalar Shape = iota
	List
)

func (s Shape) String() string {
	if s == List {
		return "list"
	}
	return "scalar"
}

// Constraint restricts numeric elements.
type Constraint int

// The supported constraints.
const (
	Unconstrained Constraint = iota
	Positive
	NonNegative
)

// Field describes one recognised parameter.
type Field struct {
	Name       string
	Kind       Kind
	Shape      Shape
	Constraint Constraint
	Default    any

	// Derived fields are filled by the compiler and cannot be set from a
	// configuration document.
	Derived bool
}

// check validates v against the field and returns the value to store.
func (f Field) check(v any) (any, error) {
	if f.Shape == Scalar {
		if _, isList := v.([]any); isList {
			return nil, fmt.Errorf("expects a single %s, got a list", f.Kind)
		}
		return f.checkElem(v)
	}

	items, isList := v.([]any)
	if !isList {
		return nil, fmt.Errorf("expects a list of %s, got %s",
			f.Kind, describe(v))
	}

	out := make([]any, len(items))
	for i, item := range items {
		e, err := f.checkElem(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

func (f Field) checkElem(v any) (any, error) {
	var num float64
	switch f.Kind {
	case IntKind:
		i, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("expects an int, got %s", describe(v))
		}
		num = float64(i)
	case FloatKind:
		switch n := v.(type) {
		case int:
			num = float64(n)
		case float64:
			num = n
		default:
			return nil, fmt.Errorf("expects a number, got %s", describe(v))
		}
	case StringKind:
		if _, ok := v.(string); !ok {
			return nil, fmt.Errorf("expects a string, got %s", describe(v))
		}
		return v, nil
	}

	switch f.Constraint {
	case Positive:
		if num <= 0 {
			return nil, fmt.Errorf("must be positive, got %s", FormatValue(v))
		}
	case NonNegative:
		if num < 0 {
			return nil, fmt.Errorf("must not be negative, got %s", FormatValue(v))
		}
	}
	return v, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case []any:
		return "a list"
	case map[string]any:
		return "a mapping"
	default:
		return fmt.Sprintf("%T %s", v, FormatValue(v))
	}
}
