package mapper

import (
	"reflect"
	"sync"
)

// RuleKind names how a rule produces its destination value.
type RuleKind string

const (
	// RuleCopy assigns a same-typed source field.
	RuleCopy RuleKind = "copy"

	// RuleConvert casts a source field to the destination field's type.
	RuleConvert RuleKind = "convert"

	// RuleCustom evaluates a user-supplied transform.
	RuleCustom RuleKind = "custom"
)

// Rule is a read-only view of one destination assignment.
type Rule struct {
	Source      string   `json:"source,omitempty" yaml:"source,omitempty" xml:"source,attr,omitempty" msgpack:"source,omitempty" bson:"source,omitempty"`
	Destination string   `json:"destination" yaml:"destination" xml:"destination,attr" msgpack:"destination" bson:"destination"`
	Kind        RuleKind `json:"kind" yaml:"kind" xml:"kind,attr" msgpack:"kind" bson:"kind"`
}

// step is one compiled assignment. sv and dv are the dereferenced
// source and destination structs.
type step[S, D any] func(src *S, dst *D, sv, dv reflect.Value) error

// rule pairs the public view with the builder that compiles it.
type rule[S, D any] struct {
	Rule
	build func() step[S, D]
}

func copyRule[S, D any](src, dst field) *rule[S, D] {
	si, di := src.index, dst.index
	return &rule[S, D]{
		Rule: Rule{Source: src.name, Destination: dst.name, Kind: RuleCopy},
		build: func() step[S, D] {
			return func(_ *S, _ *D, sv, dv reflect.Value) error {
				dv.Field(di).Set(sv.Field(si))
				return nil
			}
		},
	}
}

// convertRule takes the assigner resolved when the default rules were built.
func convertRule[S, D any](id string, src, dst field, assign assigner) *rule[S, D] {
	si, di, name := src.index, dst.index, dst.name
	return &rule[S, D]{
		Rule: Rule{Source: src.name, Destination: dst.name, Kind: RuleConvert},
		build: func() step[S, D] {
			return func(_ *S, _ *D, sv, dv reflect.Value) error {
				if err := assign(dv.Field(di), sv.Field(si)); err != nil {
					return newMapError(ErrConversion, id, name, err)
				}
				return nil
			}
		},
	}
}

// dynamicRule assigns the result of fn, converted at call time to the
// destination field's declared type. Assigners are cached per dynamic type.
func dynamicRule[S, D any](id string, dst field, fn func(*S) any) *rule[S, D] {
	di, name, to := dst.index, dst.name, dst.typ
	return &rule[S, D]{
		Rule: Rule{Destination: dst.name, Kind: RuleCustom},
		build: func() step[S, D] {
			var cache sync.Map
			return func(src *S, _ *D, _, dv reflect.Value) error {
				v := reflect.ValueOf(fn(src))
				out := dv.Field(di)
				if !v.IsValid() {
					out.SetZero()
					return nil
				}
				assign, err := cachedAssigner(&cache, v.Type(), to)
				if err != nil {
					return newMapError(ErrConversion, id, name, err)
				}
				if err := assign(out, v); err != nil {
					return newMapError(ErrConversion, id, name, err)
				}
				return nil
			}
		},
	}
}

func typedRule[S, D, V any](id string, dst field, sel func(*D) *V, fn func(*S) (V, error)) *rule[S, D] {
	name := dst.name
	return &rule[S, D]{
		Rule: Rule{Destination: dst.name, Kind: RuleCustom},
		build: func() step[S, D] {
			return func(src *S, d *D, _, _ reflect.Value) error {
				v, err := fn(src)
				if err != nil {
					return newMapError(ErrTransform, id, name, err)
				}
				*sel(d) = v
				return nil
			}
		},
	}
}

func cachedAssigner(cache *sync.Map, from, to reflect.Type) (assigner, error) {
	if a, ok := cache.Load(from); ok {
		return a.(assigner), nil
	}
	a, err := assignerFor(from, to)
	if err != nil {
		return nil, err
	}
	cache.Store(from, a)
	return a, nil
}
