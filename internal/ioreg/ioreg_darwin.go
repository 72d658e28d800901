//go:build darwin && cgo

package ioreg

/*
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit
#include <stdlib.h>
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/IOKitLib.h>

#if __MAC_OS_X_VERSION_MIN_REQUIRED < 120000
#define kIOMainPortDefault kIOMasterPortDefault
#endif

static kern_return_t
openMatchingIterator(const char *class, io_iterator_t *it)
{
	CFMutableDictionaryRef matching = IOServiceMatching(class);
	if (!matching) {
		return KERN_FAILURE;
	}
	// IOServiceGetMatchingServices consumes the matching dictionary.
	return IOServiceGetMatchingServices(kIOMainPortDefault, matching, it);
}
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"
)

// New returns an Enumerator over the IOKit registry.
func New(opts ...Option) *Enumerator {
	return NewWithRegistry(iokitRegistry{}, opts...)
}

// iokitRegistry implements Registry over IOKit. Handles are io_object_t
// values; Release maps to IOObjectRelease.
type iokitRegistry struct{}

func (iokitRegistry) OpenIterator(class string) (Handle, error) {
	cclass := C.CString(class)
	defer C.free(unsafe.Pointer(cclass))

	var it C.io_iterator_t
	if kr := C.openMatchingIterator(cclass, &it); kr != C.KERN_SUCCESS {
		return 0, fmt.Errorf("ioreg: matching services lookup for %q failed: 0x%x", class, int(kr))
	}
	return Handle(it), nil
}

func (iokitRegistry) Next(iterator Handle) (Handle, bool) {
	obj := C.IOIteratorNext(C.io_iterator_t(iterator))
	return Handle(obj), obj != 0
}

func (iokitRegistry) Properties(entry Handle) (map[string]Value, error) {
	var props C.CFMutableDictionaryRef
	kr := C.IORegistryEntryCreateCFProperties(C.io_registry_entry_t(entry), &props, C.kCFAllocatorDefault, 0)
	if kr != C.KERN_SUCCESS || props == nil {
		return nil, fmt.Errorf("ioreg: property snapshot failed: 0x%x", int(kr))
	}
	defer C.CFRelease(C.CFTypeRef(props))
	return dictToMap(C.CFDictionaryRef(props)), nil
}

func (iokitRegistry) Release(h Handle) {
	if h != 0 {
		C.IOObjectRelease(C.io_object_t(h))
	}
}

// dictToMap copies a CFDictionary with CFString keys into a Go property
// map. Values of unsupported CF types are dropped.
func dictToMap(dict C.CFDictionaryRef) map[string]Value {
	n := int(C.CFDictionaryGetCount(dict))
	out := make(map[string]Value, n)
	if n == 0 {
		return out
	}

	keys := make([]unsafe.Pointer, n)
	vals := make([]unsafe.Pointer, n)
	C.CFDictionaryGetKeysAndValues(dict, &keys[0], &vals[0])

	for i := 0; i < n; i++ {
		key, ok := cfStringToGo(C.CFStringRef(keys[i]))
		if !ok {
			continue
		}
		if v, ok := cfValueToGo(C.CFTypeRef(vals[i])); ok {
			out[key] = v
		}
	}
	return out
}

func cfValueToGo(ref C.CFTypeRef) (Value, bool) {
	switch C.CFGetTypeID(ref) {
	case C.CFStringGetTypeID():
		if s, ok := cfStringToGo(C.CFStringRef(ref)); ok {
			return String(s), true
		}
	case C.CFDataGetTypeID():
		data := C.CFDataRef(ref)
		length := C.CFDataGetLength(data)
		b := make([]byte, int(length))
		if length > 0 {
			C.CFDataGetBytes(data, C.CFRange{location: 0, length: length}, (*C.UInt8)(unsafe.Pointer(&b[0])))
		}
		return Bytes(b), true
	case C.CFNumberGetTypeID():
		num := C.CFNumberRef(ref)
		if C.CFNumberIsFloatType(num) != 0 {
			var f C.double
			if C.CFNumberGetValue(num, C.kCFNumberFloat64Type, unsafe.Pointer(&f)) != 0 && !math.IsNaN(float64(f)) {
				return Float(float64(f)), true
			}
			return Value{}, false
		}
		var i C.longlong
		if C.CFNumberGetValue(num, C.kCFNumberSInt64Type, unsafe.Pointer(&i)) != 0 {
			return Number(int64(i)), true
		}
	case C.CFBooleanGetTypeID():
		return Bool(C.CFBooleanGetValue(C.CFBooleanRef(ref)) != 0), true
	}
	// Nested dictionaries and arrays are not snapshotted; the report only
	// consumes scalar and data properties.
	return Value{}, false
}

func cfStringToGo(ref C.CFStringRef) (string, bool) {
	if p := C.CFStringGetCStringPtr(ref, C.kCFStringEncodingUTF8); p != nil {
		return C.GoString(p), true
	}
	length := C.CFStringGetLength(ref)
	size := C.CFStringGetMaximumSizeForEncoding(length, C.kCFStringEncodingUTF8) + 1
	buf := (*C.char)(C.malloc(C.size_t(size)))
	defer C.free(unsafe.Pointer(buf))
	if C.CFStringGetCString(ref, buf, size, C.kCFStringEncodingUTF8) == 0 {
		return "", false
	}
	return C.GoString(buf), true
}
