package params

import (
	"fmt"

	"github.com/sarchlab/radflow/validation"
)

// Table holds the current value of every field of a catalog.
type Table struct {
	cat    *Catalog
	values []any
}

// Catalog returns the catalog the table is built from.
func (t *Table) Catalog() *Catalog { return t.cat }

// Names returns the field names in catalog order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cat.fields))
	for i, f := range t.cat.fields {
		names[i] = f.Name
	}
	return names
}

// Set validates v and stores it. Derived fields cannot be set.
func (t *Table) Set(name string, v any) error {
	i, ok := t.cat.index[name]
	if !ok || t.cat.fields[i].Derived {
		return validation.Errorf(validation.UnknownParameter, name,
			"not a %s parameter", t.cat.ns)
	}
	return t.store(i, v)
}

// SetDerived stores a value computed by the compiler.
func (t *Table) SetDerived(name string, v any) error {
	i, ok := t.cat.index[name]
	if !ok {
		return validation.Errorf(validation.UnknownParameter, name,
			"not a %s parameter", t.cat.ns)
	}
	return t.store(i, v)
}

func (t *Table) store(i int, v any) error {
	f := t.cat.fields[i]
	checked, err := f.check(v)
	if err != nil {
		return validation.Errorf(validation.InvalidValue, f.Name, "%v", err)
	}
	t.values[i] = checked
	return nil
}

// Get returns the raw value of a field.
func (t *Table) Get(name string) any {
	return t.values[t.mustIndex(name)]
}

func (t *Table) mustIndex(name string) int {
	i, ok := t.cat.index[name]
	if !ok {
		panic(fmt.Sprintf("%s has no field %s", t.cat.ns, name))
	}
	return i
}

// Int returns a scalar int field.
func (t *Table) Int(name string) int {
	return t.Get(name).(int)
}

// Float returns a scalar numeric field.
func (t *Table) Float(name string) float64 {
	return toFloat(t.Get(name))
}

// Text returns a scalar string field.
func (t *Table) Text(name string) string {
	return t.Get(name).(string)
}

// Len returns the number of elements of a list field.
func (t *Table) Len(name string) int {
	return len(t.list(name))
}

func (t *Table) list(name string) []any {
	l, ok := t.Get(name).([]any)
	if !ok {
		panic(fmt.Sprintf("%s.%s is not a list", t.cat.ns, name))
	}
	return l
}

// Ints returns a list int field.
func (t *Table) Ints(name string) []int {
	l := t.list(name)
	out := make([]int, len(l))
	for i, v := range l {
		out[i] = v.(int)
	}
	return out
}

// Strings returns a list string field.
func (t *Table) Strings(name string) []string {
	l := t.list(name)
	out := make([]string, len(l))
	for i, v := range l {
		out[i] = v.(string)
	}
	return out
}

// IntAt returns element i of a list int field. A list that is too short is
// a topology error, since every network must be described.
func (t *Table) IntAt(name string, i int) (int, error) {
	v, err := t.at(name, i)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// StringAt returns element i of a list string field.
func (t *Table) StringAt(name string, i int) (string, error) {
	v, err := t.at(name, i)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (t *Table) at(name string, i int) (any, error) {
	l := t.list(name)
	if i >= len(l) {
		return nil, validation.Errorf(validation.Topology, name,
			"has %d entries but network %d is declared", len(l), i)
	}
	return l[i], nil
}

// Render formats a field the way the simulator knob parser reads it: one
// token per list element.
func (t *Table) Render(name string) []string {
	v := t.Get(name)
	l, ok := v.([]any)
	if !ok {
		return []string{FormatValue(v)}
	}
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = FormatValue(e)
	}
	return out
}

func cloneValue(v any) any {
	l, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(l))
	copy(out, l)
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		panic(fmt.Sprintf("%v is not a number", v))
	}
}
