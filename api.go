// Package mapper copies values between struct types using compiled,
// per-pair rule sets.
//
// A Registry holds one TypeMap per (source, destination) pair. Creating a map
// builds default rules for every exported field the two types share by name;
// rules can then be replaced or added, a reverse map derived, and the whole
// map compiled into a single function that runs on every copy.
//
// # Basic Usage
//
//	type Model struct {
//	    Name    string
//	    Surname string
//	    Age     int64
//	}
//
//	type View struct {
//	    FirstName string
//	    LastName  string
//	    FullName  string
//	    Age       int
//	}
//
//	r := mapper.New()
//	m, err := mapper.CreateMap[Model, View](r)
//	if err != nil {
//	    return err
//	}
//	m.MapProperty(func(v *View) any { return &v.FirstName }, func(s *Model) any { return s.Name }).
//	    MapProperty(func(v *View) any { return &v.LastName }, func(s *Model) any { return s.Surname }).
//	    MapProperty(func(v *View) any { return &v.FullName }, func(s *Model) any { return s.Name + " " + s.Surname })
//
//	if err := r.Compile(); err != nil {
//	    return err
//	}
//
//	view, err := mapper.To[View](r, model)
//
// # Default Rules
//
// For each exported, top-level field of the source, the same-named field of
// the destination receives:
//
//   - copy: the value itself, when the types are identical
//   - convert: a value conversion, when one exists (numeric widening and
//     checked narrowing, T to *T, *T to T, named types and their underlying
//     types)
//
// Source fields with no destination counterpart are skipped. Fields whose
// types have no conversion fail CreateMap with ErrIncompatibleTypes.
//
// # Custom Rules
//
// MapProperty takes a selector returning the address of a destination field
// and an untyped transform whose result is converted to the field's type.
// MapField and MapFieldE are the typed equivalents and avoid reflection at
// call time. Either replaces any rule already targeting the field.
//
// # Compilation
//
// Compile freezes a map's rules into one function; Registry.Compile does so
// for every map. Invoking a map that was never compiled fails with
// ErrNotCompiled. Recompiling picks up rules added since.
//
// # Errors
//
// Configuration failures are *ConfigError values; invocation failures are
// *MapError values. Both unwrap to a sentinel such as ErrMapNotFound:
//
//	if errors.Is(err, mapper.ErrMapNotFound) { ... }
//
// # Signals
//
// Map creation, reversal, compilation and every As call emit capitan signals
// (SignalMapCreated, SignalMapReversed, SignalMapCompiled, SignalMapComplete).
//
// # Export
//
// Registry.Export writes the registered plans through a Codec. Codecs are
// provided by the json, xml, yaml, msgpack and bson subpackages.
package mapper
