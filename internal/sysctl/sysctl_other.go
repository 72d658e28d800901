//go:build !darwin || !cgo

package sysctl

import "golang.org/x/sys/unix"

// New returns a Reader whose calls always fail: the control interface this
// package reads only exists on darwin. Keeping the constructor available
// lets the rest of the module build and test on other platforms.
func New() *Reader {
	return newReader(func(mib []int32, old []byte, oldlen *uintptr, new []byte) error {
		return unix.ENOSYS
	})
}
