package mapper

// Override lets a source type bypass rule-based mapping for one destination.
// When *S implements Override[D], Compile installs MapTo as the map's
// function and the rules are kept for inspection only.
//
// This is intended for generated code: a generator can emit MapTo from the
// same configuration and remove reflection from the hot path entirely.
//
//	func (m *Model) MapTo(v *View) error {
//	    v.FirstName = m.Name
//	    v.LastName = m.Surname
//	    return nil
//	}
//
// Errors returned by MapTo are wrapped in ErrTransform.
type Override[D any] interface {
	MapTo(dst *D) error
}

// overrideFor returns the compiled function for S when *S implements
// Override[D].
func overrideFor[S, D any](id string) (func(src *S, dst *D) error, bool) {
	if _, ok := any((*S)(nil)).(Override[D]); !ok {
		return nil, false
	}
	return func(src *S, dst *D) error {
		if err := any(src).(Override[D]).MapTo(dst); err != nil {
			return newMapError(ErrTransform, id, "", err)
		}
		return nil
	}, true
}
