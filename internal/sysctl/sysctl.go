// Package sysctl reads typed values from the kernel's hierarchical
// control interface.
//
// A dotted control name such as "hw.memsize" is first resolved to its
// numeric identifier path, then read with a two-phase protocol: a probe
// call with a nil destination learns the required buffer size, and a second
// call fills a buffer of exactly that size. The raw buffer is finally
// reinterpreted as a caller-specified fixed-size value or as a UTF-8 string.
//
// The required size can change between the probe and the read (the kernel
// gives no way to make the pair atomic). This race is accepted: the read
// phase reports the kernel's error unchanged instead of retrying.
package sysctl

import (
	"errors"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Path is the resolved numeric identifier path of a control node.
// It is derived once per name and never mutated.
type Path []int32

// maxPathDepth is the kernel's CTL_MAXNAME: the deepest identifier path a
// control node can have.
const maxPathDepth = 12

// nameResolveNode is the reserved control node that translates a dotted
// name into its identifier path.
var nameResolveNode = []int32{0, 3}

// rawCall issues a single control-interface call. old may be nil for a size
// probe; oldlen carries the buffer size in and the bytes written out. new
// holds input data for nodes that take any (name resolution does).
// A failed call returns a unix.Errno.
type rawCall func(mib []int32, old []byte, oldlen *uintptr, new []byte) error

// Reader resolves control names and reads their values. The zero value is
// not usable; construct one with New (or newReader in tests).
type Reader struct {
	call rawCall
}

func newReader(call rawCall) *Reader {
	return &Reader{call: call}
}

// Resolve translates a dotted control name into its identifier path.
// An unknown name fails with *NotFoundError; any other kernel error is
// surfaced as *SystemError.
func (r *Reader) Resolve(name string) (Path, error) {
	if name == "" {
		return nil, &NotFoundError{Name: name}
	}

	// The resolution node wants the NUL-terminated name as input and
	// writes the numeric path into the destination buffer.
	buf := make([]byte, maxPathDepth*4)
	oldlen := uintptr(len(buf))
	nameb := append([]byte(name), 0)

	if err := r.call(nameResolveNode, buf, &oldlen, nameb); err != nil {
		if errno, ok := asErrno(err); ok && errno == unix.ENOENT {
			return nil, &NotFoundError{Name: name}
		}
		return nil, systemError("resolve", err)
	}

	n := int(oldlen) / 4
	path := make(Path, n)
	copy(path, unsafe.Slice((*int32)(unsafe.Pointer(&buf[0])), n))
	return path, nil
}

// ReadRaw reads the raw value bytes at path using the two-phase protocol:
// probe for the required size, then read into a buffer of exactly that size.
// Either phase failing returns *SystemError with the kernel errno.
func (r *Reader) ReadRaw(path Path) ([]byte, error) {
	var size uintptr
	if err := r.call(path, nil, &size, nil); err != nil {
		return nil, systemError("probe", err)
	}
	if size == 0 {
		return nil, nil
	}

	// If the value grew since the probe the kernel fails this call; that
	// error is reported as-is rather than re-probing.
	buf := make([]byte, size)
	if err := r.call(path, buf, &size, nil); err != nil {
		return nil, systemError("read", err)
	}
	return buf[:size], nil
}

// ValueAt reads the value at path and reinterprets it as T. The buffer
// length must equal the size of T exactly; any mismatch fails with
// *SizeMismatchError, never a truncated or padded value.
func ValueAt[T any](r *Reader, path Path) (T, error) {
	var v T
	buf, err := r.ReadRaw(path)
	if err != nil {
		return v, err
	}
	size := int(unsafe.Sizeof(v))
	if len(buf) != size {
		return v, &SizeMismatchError{Want: size, Got: len(buf)}
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), size), buf)
	return v, nil
}

// Value resolves name and reads its value as T.
func Value[T any](r *Reader, name string) (T, error) {
	path, err := r.Resolve(name)
	if err != nil {
		var v T
		return v, err
	}
	return ValueAt[T](r, path)
}

// StringAt reads the value at path as a string. The buffer is cut at the
// first NUL byte (string-valued controls report their terminator in the
// probed size); bytes past the NUL are never inspected. The kept portion
// must be valid UTF-8 or the read fails with *InvalidEncodingError.
func (r *Reader) StringAt(path Path) (string, error) {
	buf, err := r.ReadRaw(path)
	if err != nil {
		return "", err
	}
	for i, b := range buf {
		if b == 0 {
			buf = buf[:i]
			break
		}
	}
	if !utf8.Valid(buf) {
		return "", &InvalidEncodingError{}
	}
	return string(buf), nil
}

// String resolves name and reads its value as a string.
func (r *Reader) String(name string) (string, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	s, err := r.StringAt(path)
	var enc *InvalidEncodingError
	if errors.As(err, &enc) {
		enc.Name = name
	}
	return s, err
}

// Uint64 resolves name and reads its value as a uint64.
func (r *Reader) Uint64(name string) (uint64, error) {
	return Value[uint64](r, name)
}

// Uint32 resolves name and reads its value as a uint32.
func (r *Reader) Uint32(name string) (uint32, error) {
	return Value[uint32](r, name)
}

// Int32 resolves name and reads its value as an int32.
func (r *Reader) Int32(name string) (int32, error) {
	return Value[int32](r, name)
}

func asErrno(err error) (unix.Errno, bool) {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

func systemError(op string, err error) error {
	if errno, ok := asErrno(err); ok {
		return &SystemError{Op: op, Errno: errno}
	}
	// Raw calls only ever fail with an errno; anything else is a test
	// double misbehaving, but wrap it rather than panic.
	return &SystemError{Op: op, Errno: unix.EIO}
}
