package mapper

import (
	"context"
	"errors"
	"reflect"
)

// TypeMap holds the ordered rules that copy a source S into a destination D.
//
// A TypeMap is created by CreateMap or ReverseMap with default rules for every
// same-named field, adjusted with MapProperty, MapField and MapFieldE, and
// frozen into a single function by Compile. Configuration methods return the
// map for chaining; errors they hit are recorded and reported by Err and
// Compile.
//
// Configuration is not safe for concurrent use. Once compiled, Map may be
// called from any number of goroutines.
type TypeMap[S, D any] struct {
	registry    *Registry
	key         pairKey
	id          string
	source      *fieldTable
	destination *fieldTable
	rules       []*rule[S, D]
	compiled    func(src *S, dst *D) error
	err         error
}

func newTypeMap[S, D any](r *Registry) *TypeMap[S, D] {
	key := pairKey{source: reflect.TypeFor[S](), destination: reflect.TypeFor[D]()}
	m := &TypeMap[S, D]{
		registry: r,
		key:      key,
		id:       key.String(),
	}

	src, err := scanFields[S]()
	if err != nil {
		m.err = newConfigError(ErrNotStruct, m.id, "", "", err)
		return m
	}
	dst, err := scanFields[D]()
	if err != nil {
		m.err = newConfigError(ErrNotStruct, m.id, "", "", err)
		return m
	}
	m.source, m.destination = src, dst

	if err := m.buildDefaultRules(); err != nil {
		m.err = err
	}
	return m
}

// buildDefaultRules adds a rule for every source field with a same-named
// destination field. Unmatched source fields are skipped silently.
func (m *TypeMap[S, D]) buildDefaultRules() error {
	for _, sf := range m.source.fields {
		df, ok := m.destination.lookup(sf.name, m.registry.matcher)
		if !ok {
			continue
		}
		if sf.typ == df.typ {
			m.put(copyRule[S, D](sf, df))
			continue
		}
		assign, err := assignerFor(sf.typ, df.typ)
		if err != nil {
			return newConfigError(ErrIncompatibleTypes, m.id, sf.name, df.name, err)
		}
		m.put(convertRule[S, D](m.id, sf, df, assign))
	}
	return nil
}

// put replaces the rule for the same destination in place, or appends.
func (m *TypeMap[S, D]) put(r *rule[S, D]) {
	for i, existing := range m.rules {
		if existing.Destination == r.Destination {
			m.rules[i] = r
			return
		}
	}
	m.rules = append(m.rules, r)
}

func (m *TypeMap[S, D]) fail(err error) {
	m.err = errors.Join(m.err, err)
}

// configurable reports whether field tables exist to resolve selectors against.
func (m *TypeMap[S, D]) configurable() bool {
	return m.source != nil && m.destination != nil
}

// MapProperty sets the rule for the destination field addressed by dest.
// The value returned by src is converted to the field's declared type when
// the map runs; a nil result assigns the zero value.
//
//	m.MapProperty(func(v *View) any { return &v.FullName },
//	    func(s *Model) any { return s.Name + " " + s.Surname })
//
// A rule already targeting the field is replaced in place.
func (m *TypeMap[S, D]) MapProperty(dest func(*D) any, src func(*S) any) *TypeMap[S, D] {
	if !m.configurable() {
		return m
	}
	df, err := resolveMember(m.destination, dest)
	if err != nil {
		m.fail(newConfigError(ErrUnresolvedMember, m.id, "", "", err))
		return m
	}
	if src == nil {
		m.fail(newConfigError(ErrInvalidRule, m.id, "", df.name, errors.New("nil source expression")))
		return m
	}
	m.put(dynamicRule[S, D](m.id, df, src))
	return m
}

// MapField sets a typed rule: the field addressed by dest receives src's
// result with no reflection at call time.
//
//	mapper.MapField(m, func(v *View) *string { return &v.FirstName },
//	    func(s *Model) string { return s.Name })
func MapField[S, D, V any](m *TypeMap[S, D], dest func(*D) *V, src func(*S) V) *TypeMap[S, D] {
	if src == nil {
		return MapFieldE(m, dest, nil)
	}
	return MapFieldE(m, dest, func(s *S) (V, error) { return src(s), nil })
}

// MapFieldE is MapField for transforms that can fail. A transform error
// aborts the map and is returned wrapped in ErrTransform.
func MapFieldE[S, D, V any](m *TypeMap[S, D], dest func(*D) *V, src func(*S) (V, error)) *TypeMap[S, D] {
	if !m.configurable() {
		return m
	}
	if dest == nil {
		m.fail(newConfigError(ErrUnresolvedMember, m.id, "", "", errors.New("nil selector")))
		return m
	}
	df, err := resolveMember(m.destination, func(d *D) any { return dest(d) })
	if err != nil {
		m.fail(newConfigError(ErrUnresolvedMember, m.id, "", "", err))
		return m
	}
	if src == nil {
		m.fail(newConfigError(ErrInvalidRule, m.id, "", df.name, errors.New("nil source expression")))
		return m
	}
	m.put(typedRule[S, D, V](m.id, df, dest, src))
	return m
}

// ReverseMap registers a map for the swapped pair, built with default rules
// exactly as CreateMap would, and returns it for further configuration.
// Later changes to either map do not affect the other.
//
// Registration errors, such as an existing D to S map, are recorded on the
// returned map.
func (m *TypeMap[S, D]) ReverseMap() *TypeMap[D, S] {
	rev := register[D, S](m.registry)
	if rev.err == nil {
		emitMapReversed(context.Background(), rev.id, m.id, len(rev.rules))
	}
	return rev
}

// Compile combines the current rules into one function executed in rule
// order, or installs MapTo when *S implements Override[D].
//
// It may be called again after further configuration; each call rebuilds
// from the current rules. Compile fails only with configuration errors
// recorded on the map, and a failed compile keeps the previous function.
func (m *TypeMap[S, D]) Compile() error {
	err := m.compile()
	emitMapCompiled(context.Background(), m.id, len(m.rules), err)
	return err
}

func (m *TypeMap[S, D]) compile() error {
	if m.err != nil {
		return m.err
	}

	if fn, ok := overrideFor[S, D](m.id); ok {
		m.compiled = fn
		return nil
	}

	steps := make([]step[S, D], len(m.rules))
	for i, r := range m.rules {
		steps[i] = r.build()
	}

	m.compiled = func(src *S, dst *D) error {
		sv := reflect.ValueOf(src).Elem()
		dv := reflect.ValueOf(dst).Elem()
		for _, st := range steps {
			if err := st(src, dst, sv, dv); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// Map copies src into dst using the compiled rules.
func (m *TypeMap[S, D]) Map(src *S, dst *D) error {
	if m.compiled == nil {
		return newMapError(ErrNotCompiled, m.id, "", nil)
	}
	if src == nil || dst == nil {
		return newMapError(ErrInvalidArgument, m.id, "", errors.New("nil source or destination"))
	}
	return m.compiled(src, dst)
}

// mapObjects accepts S or *S as the source and *D as the destination.
func (m *TypeMap[S, D]) mapObjects(src, dst any) error {
	var sp *S
	switch v := src.(type) {
	case *S:
		sp = v
	case S:
		sp = &v
	}
	dp, _ := dst.(*D)
	return m.Map(sp, dp)
}

// Identifier returns "source||destination" using package-qualified type names.
func (m *TypeMap[S, D]) Identifier() string {
	return m.id
}

// Err returns configuration errors recorded so far.
func (m *TypeMap[S, D]) Err() error {
	return m.err
}

// Compiled reports whether Compile has succeeded at least once.
func (m *TypeMap[S, D]) Compiled() bool {
	return m.compiled != nil
}

func (m *TypeMap[S, D]) overridden() bool {
	_, ok := any((*S)(nil)).(Override[D])
	return ok
}

// Rules returns the current rules in execution order.
func (m *TypeMap[S, D]) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.Rule
	}
	return out
}

// Plan describes the map for export.
func (m *TypeMap[S, D]) Plan() Plan {
	return Plan{
		Identifier:  m.id,
		Source:      m.key.source.String(),
		Destination: m.key.destination.String(),
		Compiled:    m.Compiled(),
		Override:    m.overridden(),
		Rules:       m.Rules(),
	}
}
