package sysctl

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// NotFoundError reports a dotted control name the kernel could not resolve.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sysctl: control name %q not found", e.Name)
}

// SystemError reports a failed control-interface call. Op identifies the
// phase ("resolve", "probe", or "read") and Errno carries the kernel error.
type SystemError struct {
	Op    string
	Errno unix.Errno
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("sysctl: %s failed: %v", e.Op, e.Errno)
}

// Unwrap exposes the errno so callers can match with errors.Is.
func (e *SystemError) Unwrap() error {
	return e.Errno
}

// SizeMismatchError reports a raw buffer whose length does not exactly match
// the size of the requested value type. The buffer is never truncated or
// padded to fit.
type SizeMismatchError struct {
	Want int // size of the requested type in bytes
	Got  int // length of the buffer the kernel returned
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("sysctl: value size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

// InvalidEncodingError reports a buffer that is not valid UTF-8 where a
// string was requested.
type InvalidEncodingError struct {
	Name string
}

func (e *InvalidEncodingError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("sysctl: %s: buffer is not valid UTF-8", e.Name)
	}
	return "sysctl: buffer is not valid UTF-8"
}
