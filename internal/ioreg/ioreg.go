// Package ioreg enumerates hardware services in the platform device
// registry and snapshots their property dictionaries.
//
// A service class name ("IOPlatformExpertDevice", "IOPMPowerSource", ...)
// matches zero or more registered services; Enumerate returns one Service
// per match with its properties copied into plain Go values at enumeration
// time. Nothing returned is live: the snapshot does not track later
// registry changes.
package ioreg

import "assetctl/internal/logger"

// Handle is an opaque reference to a registry iterator or entry. Handles
// are owned by the Registry that issued them and must be released exactly
// once.
type Handle uintptr

// Registry is the low-level device-registry access the Enumerator drives.
// The darwin implementation wraps IOKit; tests substitute an in-memory one.
type Registry interface {
	// OpenIterator starts an iteration over all services matching the
	// class name. A class matching nothing still yields a valid, empty
	// iterator.
	OpenIterator(class string) (Handle, error)

	// Next returns the next entry handle, or ok=false when the iteration
	// is exhausted.
	Next(iterator Handle) (entry Handle, ok bool)

	// Properties snapshots the entry's property dictionary.
	Properties(entry Handle) (map[string]Value, error)

	// Release releases an iterator or entry handle.
	Release(h Handle)
}

// Service is one matched registry entry: a snapshot of its property
// dictionary taken during enumeration.
type Service struct {
	Properties map[string]Value
}

// Lookup returns the named property and whether it exists.
func (s Service) Lookup(key string) (Value, bool) {
	v, ok := s.Properties[key]
	return v, ok
}

// StringProperty returns the named property as a string, or "" with
// ok=false when the key is missing or holds another kind.
func (s Service) StringProperty(key string) (string, bool) {
	v, ok := s.Properties[key]
	if !ok {
		return "", false
	}
	str, err := v.AsString()
	return str, err == nil
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// Strict makes a failed property snapshot abort the enumeration with the
// error instead of skipping the entry.
func Strict() Option {
	return func(e *Enumerator) { e.strict = true }
}

// Enumerator lists registry services by class name.
type Enumerator struct {
	reg    Registry
	strict bool
}

// NewWithRegistry returns an Enumerator over the given Registry. By default
// an entry whose property snapshot fails is skipped silently (visible under
// debug logging); see Strict.
func NewWithRegistry(reg Registry, opts ...Option) *Enumerator {
	e := &Enumerator{reg: reg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enumerate returns a Service for every registered service matching the
// class name. A class matching nothing returns an empty slice, not an
// error. The result is fully materialized before return.
//
// Every handle obtained during the walk is released exactly once, on every
// path out of the loop.
func (e *Enumerator) Enumerate(class string) ([]Service, error) {
	it, err := e.reg.OpenIterator(class)
	if err != nil {
		return nil, err
	}
	defer e.reg.Release(it)

	services := []Service{}
	for {
		entry, ok := e.reg.Next(it)
		if !ok {
			break
		}
		props, err := e.reg.Properties(entry)
		e.reg.Release(entry)
		if err != nil {
			if e.strict {
				return nil, err
			}
			logger.Debug("[DEBUG] Skipping %s entry without readable properties: %v\n", class, err)
			continue
		}
		services = append(services, Service{Properties: props})
	}
	return services, nil
}

// First returns the first service matching the class name, in the
// registry's own (unspecified) order. ok is false when nothing matched.
func (e *Enumerator) First(class string) (Service, bool, error) {
	services, err := e.Enumerate(class)
	if err != nil || len(services) == 0 {
		return Service{}, false, err
	}
	return services[0], true, nil
}
