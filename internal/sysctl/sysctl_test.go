package sysctl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// fakeControl implements the raw control-interface call against an in-memory
// table of names and values, recording every call it sees.
type fakeControl struct {
	names  map[string][]int32 // dotted name -> identifier path
	values map[string][]byte  // path key -> raw value

	probeErr map[string]unix.Errno // fail the size probe for a path
	readErr  map[string]unix.Errno // fail the sized read for a path

	calls []string // "probe <path>" / "read <path>" / "resolve <name>"
}

func newFakeControl() *fakeControl {
	return &fakeControl{
		names:    make(map[string][]int32),
		values:   make(map[string][]byte),
		probeErr: make(map[string]unix.Errno),
		readErr:  make(map[string]unix.Errno),
	}
}

// add registers a control with the given path and raw value.
func (f *fakeControl) add(name string, path []int32, value []byte) {
	f.names[name] = path
	f.values[pathKey(path)] = value
}

func pathKey(path []int32) string {
	return fmt.Sprint(path)
}

func (f *fakeControl) call(mib []int32, old []byte, oldlen *uintptr, new []byte) error {
	// Name resolution goes through the reserved {0, 3} node.
	if len(mib) == 2 && mib[0] == 0 && mib[1] == 3 {
		name := string(new)
		if len(name) > 0 && name[len(name)-1] == 0 {
			name = name[:len(name)-1]
		}
		f.calls = append(f.calls, "resolve "+name)
		path, ok := f.names[name]
		if !ok {
			return unix.ENOENT
		}
		for i, id := range path {
			binary.NativeEndian.PutUint32(old[i*4:], uint32(id))
		}
		*oldlen = uintptr(len(path) * 4)
		return nil
	}

	key := pathKey(mib)
	value, ok := f.values[key]
	if !ok {
		return unix.ENOENT
	}

	if old == nil {
		f.calls = append(f.calls, "probe "+key)
		if errno, ok := f.probeErr[key]; ok {
			return errno
		}
		*oldlen = uintptr(len(value))
		return nil
	}

	f.calls = append(f.calls, "read "+key)
	if errno, ok := f.readErr[key]; ok {
		return errno
	}
	if len(old) < len(value) {
		return unix.ENOMEM
	}
	copy(old, value)
	*oldlen = uintptr(len(value))
	return nil
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, v)
	return b
}

func TestResolveKnownName(t *testing.T) {
	fake := newFakeControl()
	fake.add("hw.memsize", []int32{6, 24}, uint64Bytes(17179869184))

	r := newReader(fake.call)
	path, err := r.Resolve("hw.memsize")
	require.NoError(t, err)
	assert.Equal(t, Path{6, 24}, path)
}

func TestResolveUnknownNameIsNotFound(t *testing.T) {
	r := newReader(newFakeControl().call)

	_, err := r.Resolve("hw.definitely_not_a_control")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "hw.definitely_not_a_control", notFound.Name)

	// An unresolvable name is NotFound, never a SystemError.
	var sysErr *SystemError
	assert.False(t, errors.As(err, &sysErr))
}

func TestResolveEmptyNameIsNotFound(t *testing.T) {
	r := newReader(newFakeControl().call)
	_, err := r.Resolve("")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestReadRawProbesThenReads(t *testing.T) {
	fake := newFakeControl()
	fake.add("hw.memsize", []int32{6, 24}, uint64Bytes(17179869184))

	r := newReader(fake.call)
	buf, err := r.ReadRaw(Path{6, 24})
	require.NoError(t, err)
	assert.Len(t, buf, 8)

	// Mandatory ordering: size probe first, sized read second.
	assert.Equal(t, []string{"probe [6 24]", "read [6 24]"}, fake.calls)
}

func TestReadRawProbeFailure(t *testing.T) {
	fake := newFakeControl()
	fake.add("kern.protected", []int32{1, 99}, []byte{1})
	fake.probeErr[pathKey([]int32{1, 99})] = unix.EPERM

	r := newReader(fake.call)
	_, err := r.ReadRaw(Path{1, 99})

	var sysErr *SystemError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "probe", sysErr.Op)
	assert.ErrorIs(t, err, unix.EPERM)
}

func TestReadRawReadFailureIsNotRetried(t *testing.T) {
	fake := newFakeControl()
	fake.add("kern.racy", []int32{1, 66}, []byte{1, 2, 3, 4})
	fake.readErr[pathKey([]int32{1, 66})] = unix.ENOMEM

	r := newReader(fake.call)
	_, err := r.ReadRaw(Path{1, 66})

	var sysErr *SystemError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "read", sysErr.Op)

	// One probe, one read, no second attempt.
	assert.Equal(t, []string{"probe [1 66]", "read [1 66]"}, fake.calls)
}

func TestValueRoundTrip(t *testing.T) {
	fake := newFakeControl()
	fake.add("hw.memsize", []int32{6, 24}, uint64Bytes(17179869184))

	r := newReader(fake.call)
	v, err := r.Uint64("hw.memsize")
	require.NoError(t, err)
	assert.Equal(t, uint64(17179869184), v)

	// Stable across repeated reads within the same process.
	again, err := r.Uint64("hw.memsize")
	require.NoError(t, err)
	assert.Equal(t, v, again)
}

func TestValueSizeMismatch(t *testing.T) {
	fake := newFakeControl()
	fake.add("hw.ncpu", []int32{6, 3}, []byte{8, 0, 0, 0}) // 4 bytes

	r := newReader(fake.call)
	v, err := r.Uint64("hw.ncpu") // expects 8

	var mismatch *SizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 8, mismatch.Want)
	assert.Equal(t, 4, mismatch.Got)
	assert.Zero(t, v, "a mismatched buffer must never be padded into a value")

	// The same buffer read at its real width succeeds.
	n, err := r.Uint32("hw.ncpu")
	require.NoError(t, err)
	assert.Equal(t, uint32(8), n)
}

func TestStringCutsAtFirstNUL(t *testing.T) {
	fake := newFakeControl()
	fake.add("hw.model", []int32{6, 2}, []byte("MacBookPro18,3\x00"))
	// Garbage after the terminator is never inspected, valid UTF-8 or not.
	fake.add("kern.trailing", []int32{1, 7}, []byte("ok\x00\xff\xfe"))

	r := newReader(fake.call)

	s, err := r.String("hw.model")
	require.NoError(t, err)
	assert.Equal(t, "MacBookPro18,3", s)

	s, err = r.String("kern.trailing")
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
}

func TestStringInvalidEncoding(t *testing.T) {
	fake := newFakeControl()
	fake.add("kern.binary", []int32{1, 8}, []byte{0xff, 0xfe, 0x01})

	r := newReader(fake.call)
	_, err := r.String("kern.binary")

	var enc *InvalidEncodingError
	require.ErrorAs(t, err, &enc)
	assert.Equal(t, "kern.binary", enc.Name)
}

func TestStringOfUnknownName(t *testing.T) {
	r := newReader(newFakeControl().call)
	_, err := r.String("machdep.cpu.brand_string")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
