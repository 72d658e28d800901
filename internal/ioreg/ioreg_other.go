//go:build !darwin || !cgo

package ioreg

import "errors"

// New returns an Enumerator whose queries always fail: the device registry
// only exists on darwin (and reaching it needs cgo). Keeping the
// constructor available lets the rest of the module build and test
// elsewhere.
func New(opts ...Option) *Enumerator {
	return NewWithRegistry(unavailableRegistry{}, opts...)
}

type unavailableRegistry struct{}

func (unavailableRegistry) OpenIterator(class string) (Handle, error) {
	return 0, errors.New("ioreg: device registry requires darwin with cgo")
}

func (unavailableRegistry) Next(Handle) (Handle, bool) { return 0, false }

func (unavailableRegistry) Properties(Handle) (map[string]Value, error) {
	return nil, errors.New("ioreg: device registry requires darwin with cgo")
}

func (unavailableRegistry) Release(Handle) {}
