// Package automapper exposes a process-wide mapper.Registry for programs
// that configure mapping once at startup and use it everywhere.
//
//	func init() {
//	    automapper.MustCreateMap[Model, View]().
//	        MapProperty(func(v *View) any { return &v.FullName },
//	            func(m *Model) any { return m.Name + " " + m.Surname })
//	    if err := automapper.Compile(); err != nil {
//	        panic(err)
//	    }
//	}
//
//	view, err := automapper.To[View](model)
//
// Code that can pass a registry explicitly should use package mapper directly.
package automapper

import (
	"sync"

	"github.com/zoobzio/mapper"
)

var (
	instance   *mapper.Registry
	instanceMu sync.RWMutex
)

// Instance returns the shared registry, creating it on first use.
func Instance() *mapper.Registry {
	instanceMu.RLock()
	if r := instance; r != nil {
		instanceMu.RUnlock()
		return r
	}
	instanceMu.RUnlock()

	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		instance = mapper.New()
	}
	return instance
}

// Reset discards the shared registry.
// This is primarily useful for test isolation.
func Reset() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = nil
}

// CreateMap registers a map from S to D on the shared registry.
func CreateMap[S, D any]() (*mapper.TypeMap[S, D], error) {
	return mapper.CreateMap[S, D](Instance())
}

// MustCreateMap is like CreateMap but panics on error.
func MustCreateMap[S, D any]() *mapper.TypeMap[S, D] {
	return mapper.MustCreateMap[S, D](Instance())
}

// Compile compiles every map on the shared registry.
// Call it after configuration and before the first To or As.
func Compile() error {
	return Instance().Compile()
}

// To returns a new T populated from src.
func To[T any](src any) (T, error) {
	return mapper.To[T](Instance(), src)
}

// As copies src into dst.
func As(src, dst any) error {
	return Instance().As(src, dst)
}
