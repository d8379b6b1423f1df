package mapper

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"
)

// pairKey identifies a map by its source and destination types.
type pairKey struct {
	source      reflect.Type
	destination reflect.Type
}

func (k pairKey) String() string {
	return k.source.String() + "||" + k.destination.String()
}

// entry is the type-erased view of a TypeMap held by the registry.
type entry interface {
	Identifier() string
	Compile() error
	Plan() Plan
	mapObjects(src, dst any) error
}

// Registry stores type maps keyed by their source and destination types.
//
// Register and compile maps during initialization, then share the registry:
// As and To only read it. The registry does no locking of its own.
type Registry struct {
	maps    map[pairKey]entry
	matcher NameMatcher
	replace bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithNameMatcher sets how default rules pair fields whose names are not
// identical, e.g. strings.EqualFold.
func WithNameMatcher(match NameMatcher) Option {
	return func(r *Registry) {
		r.matcher = match
	}
}

// WithReplaceDuplicates makes CreateMap and ReverseMap replace an existing
// map for the same pair instead of failing with ErrDuplicateMap.
func WithReplaceDuplicates() Option {
	return func(r *Registry) {
		r.replace = true
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{maps: make(map[pairKey]entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateMap registers a map from S to D populated with default rules and
// returns it for further configuration.
func CreateMap[S, D any](r *Registry) (*TypeMap[S, D], error) {
	m := register[S, D](r)
	if m.err != nil {
		return nil, m.err
	}
	return m, nil
}

// MustCreateMap is like CreateMap but panics on error.
// It simplifies fluent configuration during program initialization.
func MustCreateMap[S, D any](r *Registry) *TypeMap[S, D] {
	m, err := CreateMap[S, D](r)
	if err != nil {
		panic(err)
	}
	return m
}

func register[S, D any](r *Registry) *TypeMap[S, D] {
	m := newTypeMap[S, D](r)
	if m.err != nil {
		return m
	}
	if _, exists := r.maps[m.key]; exists && !r.replace {
		m.err = newConfigError(ErrDuplicateMap, m.id, "", "", nil)
		return m
	}
	r.maps[m.key] = m
	emitMapCreated(context.Background(), m.id, m.key.source.String(), m.key.destination.String(), len(m.rules))
	return m
}

// As copies src into dst using the map registered for their types.
// src may be a struct or a pointer to one; dst must be a non-nil pointer.
func (r *Registry) As(src, dst any) error {
	return r.AsContext(context.Background(), src, dst)
}

// AsContext is As with a context for emitted signals.
func (r *Registry) AsContext(ctx context.Context, src, dst any) error {
	start := time.Now()

	key, err := resolvePair(src, dst)
	if err != nil {
		emitMapComplete(ctx, "", time.Since(start), err)
		return err
	}

	m, ok := r.maps[key]
	if !ok {
		err = newMapError(ErrMapNotFound, key.String(), "", nil)
	} else {
		err = m.mapObjects(src, dst)
	}

	emitMapComplete(ctx, key.String(), time.Since(start), err)
	return err
}

// resolvePair derives the map key from the runtime types of src and dst.
func resolvePair(src, dst any) (pairKey, error) {
	if src == nil {
		return pairKey{}, newMapError(ErrInvalidArgument, "", "", errors.New("nil source"))
	}
	st := reflect.TypeOf(src)
	if st.Kind() == reflect.Pointer {
		if reflect.ValueOf(src).IsNil() {
			return pairKey{}, newMapError(ErrInvalidArgument, "", "", fmt.Errorf("nil %s source", st))
		}
		st = st.Elem()
	}

	if dst == nil {
		return pairKey{}, newMapError(ErrInvalidArgument, "", "", errors.New("nil destination"))
	}
	dt := reflect.TypeOf(dst)
	if dt.Kind() != reflect.Pointer {
		return pairKey{}, newMapError(ErrInvalidArgument, "", "", fmt.Errorf("destination %s is not a pointer", dt))
	}
	if reflect.ValueOf(dst).IsNil() {
		return pairKey{}, newMapError(ErrInvalidArgument, "", "", fmt.Errorf("nil %s destination", dt))
	}

	return pairKey{source: st, destination: dt.Elem()}, nil
}

// To returns a new T populated from src.
func To[T any](r *Registry, src any) (T, error) {
	return ToContext[T](context.Background(), r, src)
}

// ToContext is To with a context for emitted signals.
func ToContext[T any](ctx context.Context, r *Registry, src any) (T, error) {
	var dst T
	if err := r.AsContext(ctx, src, &dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

// Compile compiles every registered map in identifier order.
// All failures are returned joined.
func (r *Registry) Compile() error {
	var errs []error
	for _, m := range r.entries() {
		if err := m.Compile(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of registered maps.
func (r *Registry) Len() int {
	return len(r.maps)
}

// entries returns the registered maps sorted by identifier.
func (r *Registry) entries() []entry {
	out := make([]entry, 0, len(r.maps))
	for _, m := range r.maps {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}
