// Package testing provides fixtures shared by mapper tests.
package testing

import (
	"time"

	"github.com/zoobzio/mapper"
)

// Model is a persistence-style fixture.
type Model struct {
	Name           string
	Surname        string
	DateOfBirth    time.Time
	CustomerID     int
	Value1         int64
	NullableValue1 *int64
}

// View is a presentation-style fixture. CustomerID and Value1 differ in type
// from Model so default rules convert them.
type View struct {
	FirstName      string
	LastName       string
	FullName       string
	DateOfBirth    time.Time
	CustomerID     *int
	Value1         int
	NullableValue1 *int64
}

// NewModel returns the Model used across scenario tests.
func NewModel() Model {
	n := int64(12)
	return Model{
		Name:           "Stephen",
		Surname:        "Booth",
		DateOfBirth:    time.Date(1980, time.March, 14, 0, 0, 0, 0, time.UTC),
		CustomerID:     1,
		Value1:         13,
		NullableValue1: &n,
	}
}

// Configure registers Model to View and its reverse on r and compiles them.
func Configure(r *mapper.Registry) error {
	m, err := mapper.CreateMap[Model, View](r)
	if err != nil {
		return err
	}

	rev := m.
		MapProperty(func(v *View) any { return &v.FirstName }, func(s *Model) any { return s.Name }).
		MapProperty(func(v *View) any { return &v.LastName }, func(s *Model) any { return s.Surname }).
		MapProperty(func(v *View) any { return &v.FullName }, func(s *Model) any { return s.Name + " " + s.Surname }).
		ReverseMap()

	mapper.MapField(rev, func(s *Model) *string { return &s.Name }, func(v *View) string { return v.FirstName })
	mapper.MapField(rev, func(s *Model) *string { return &s.Surname }, func(v *View) string { return v.LastName })

	if err := m.Err(); err != nil {
		return err
	}
	if err := rev.Err(); err != nil {
		return err
	}
	return r.Compile()
}
