package mapper

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

// NameMatcher reports whether a source field name matches a destination field
// name. Exact matches are always tried first.
type NameMatcher func(source, destination string) bool

// field describes one exported, top-level struct field.
type field struct {
	name  string
	typ   reflect.Type
	index int
}

// fieldTable is the per-type field descriptor table built at registration.
// The compiled path only ever uses field indexes from it.
type fieldTable struct {
	typ    reflect.Type
	fields []field
	byName map[string]int
}

// scanFields builds the field table for struct type T from sentinel metadata.
func scanFields[T any]() (*fieldTable, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is %s", rt, rt.Kind())
	}

	// Sentinel caches by package and type name, so anonymous and
	// function-local types can come back with another type's fields.
	fields := sentinel.Scan[T]().Fields
	if !describes(fields, rt) {
		fields = scanStruct(rt)
	}

	table := &fieldTable{
		typ:    rt,
		fields: make([]field, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}

	for _, fm := range fields {
		// Flat fields only; promoted and nested fields are never matched.
		if len(fm.Index) != 1 {
			continue
		}
		sf := rt.Field(fm.Index[0])
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		if _, dup := table.byName[sf.Name]; dup {
			continue
		}
		table.byName[sf.Name] = len(table.fields)
		table.fields = append(table.fields, field{
			name:  sf.Name,
			typ:   sf.Type,
			index: sf.Index[0],
		})
	}

	return table, nil
}

// describes reports whether fields lists exactly the exported top-level
// fields of rt, by index, name and type.
func describes(fields []sentinel.FieldMetadata, rt reflect.Type) bool {
	seen := 0
	for _, fm := range fields {
		if len(fm.Index) == 0 || fm.Index[0] < 0 || fm.Index[0] >= rt.NumField() {
			return false
		}
		if len(fm.Index) != 1 {
			continue
		}
		sf := rt.Field(fm.Index[0])
		if sf.Name != fm.Name || sf.Type != fm.ReflectType {
			return false
		}
		if sf.IsExported() {
			seen++
		}
	}

	exported := 0
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			exported++
		}
	}
	return seen == exported
}

// scanStruct builds field metadata straight from rt.
func scanStruct(rt reflect.Type) []sentinel.FieldMetadata {
	fields := make([]sentinel.FieldMetadata, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
		})
	}
	return fields
}

// lookup finds the destination field for a source field name.
func (t *fieldTable) lookup(name string, match NameMatcher) (field, bool) {
	if i, ok := t.byName[name]; ok {
		return t.fields[i], true
	}
	if match == nil {
		return field{}, false
	}
	for _, f := range t.fields {
		if match(name, f.name) {
			return f, true
		}
	}
	return field{}, false
}

// resolveMember finds the field addressed by a selector such as
//
//	func(v *View) any { return &v.FirstName }
//
// The selector runs against a zero probe. Exactly one level of boxing is
// unwrapped: the result must be a pointer to a top-level field of the probe
// with the field's own type. Anything else is rejected rather than guessed.
func resolveMember[T any](t *fieldTable, sel func(*T) any) (f field, err error) {
	if sel == nil {
		return field{}, fmt.Errorf("nil selector for %s", t.typ)
	}

	probe := new(T)
	var boxed any
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("selector panicked on %s: %v", t.typ, r)
			}
		}()
		boxed = sel(probe)
	}()
	if err != nil {
		return field{}, err
	}

	return t.match(reflect.ValueOf(probe).Elem(), reflect.ValueOf(boxed))
}

// match locates the field of probe whose address equals target.
func (t *fieldTable) match(probe, target reflect.Value) (field, error) {
	if !target.IsValid() || target.Kind() != reflect.Pointer || target.IsNil() {
		return field{}, fmt.Errorf("selector on %s must return a field address, got %s", t.typ, describeValue(target))
	}

	addr := target.Pointer()
	elem := target.Type().Elem()
	var found []field
	for _, f := range t.fields {
		fv := probe.Field(f.index)
		if fv.Addr().Pointer() == addr && f.typ == elem {
			found = append(found, f)
		}
	}
	switch len(found) {
	case 0:
		return field{}, fmt.Errorf("selector does not address a field of %s", t.typ)
	case 1:
		return found[0], nil
	default:
		// Zero-size fields of one type can share an address.
		return field{}, fmt.Errorf("selector on %s is ambiguous between %s and %s", t.typ, found[0].name, found[1].name)
	}
}

func describeValue(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}
