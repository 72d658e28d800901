//go:build darwin && cgo

package sysctl

/*
#include <sys/types.h>
#include <sys/sysctl.h>
*/
import "C"

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// New returns a Reader backed by the kernel's sysctl interface.
func New() *Reader {
	return newReader(sysctlCall)
}

// sysctlCall issues a single sysctl(3) call. The high-level helpers in
// x/sys/unix do not expose name-to-path resolution or reads by numeric
// path, so the libc entry point is called directly.
func sysctlCall(mib []int32, old []byte, oldlen *uintptr, new []byte) error {
	var oldp, newp unsafe.Pointer
	if len(old) > 0 {
		oldp = unsafe.Pointer(&old[0])
	}
	if len(new) > 0 {
		newp = unsafe.Pointer(&new[0])
	}

	size := C.size_t(*oldlen)
	ret, err := C.sysctl((*C.int)(unsafe.Pointer(&mib[0])), C.u_int(len(mib)),
		oldp, &size, newp, C.size_t(len(new)))
	*oldlen = uintptr(size)
	if ret != 0 {
		// cgo reports the errno as a syscall.Errno, which unix.Errno aliases.
		if errno, ok := err.(unix.Errno); ok {
			return errno
		}
		return unix.EIO
	}
	return nil
}
