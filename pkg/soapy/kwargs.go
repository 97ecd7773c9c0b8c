package soapy

/*
#include <stdlib.h>
#include <SoapySDR/Types.h>
*/
import "C"

import (
	"sort"
	"strings"
	"unsafe"
)

// KwArgs is a set of key=value pairs used throughout SoapySDR for device
// filters, stream options and driver-specific settings. The contents are
// opaque to this binding and reach the library unmodified.
type KwArgs map[string]string

// ParseKwArgs parses a markup string such as "driver=lime, serial=123456"
// into a KwArgs. Entries without an '=' are ignored, matching the library's
// own parser.
func ParseKwArgs(s string) KwArgs {
	args := KwArgs{}
	for _, field := range strings.Split(s, ",") {
		if pos := strings.Index(field, "="); pos >= 0 {
			key := strings.TrimSpace(field[:pos])
			val := strings.TrimSpace(field[pos+1:])
			args[key] = val
		}
	}
	return args
}

// String renders the args in markup form with keys sorted, so the output is
// deterministic and can be fed back to ParseKwArgs.
func (a KwArgs) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(a[k])
	}
	return b.String()
}

// toC builds a C kwargs copy of a. The caller owns the result and must
// release it with SoapySDRKwargs_clear.
func (a KwArgs) toC() C.SoapySDRKwargs {
	var c C.SoapySDRKwargs
	for k, v := range a {
		ck := C.CString(k)
		cv := C.CString(v)
		C.SoapySDRKwargs_set(&c, ck, cv)
		C.free(unsafe.Pointer(ck))
		C.free(unsafe.Pointer(cv))
	}
	return c
}

// clearKwargs releases a C kwargs built with toC.
func clearKwargs(c *C.SoapySDRKwargs) {
	C.SoapySDRKwargs_clear(c)
}

// kwargsFromC copies a C kwargs into a KwArgs. Ownership of c stays with the
// caller.
func kwargsFromC(c *C.SoapySDRKwargs) KwArgs {
	out := make(KwArgs, int(c.size))
	if c.size == 0 {
		return out
	}
	keys := unsafe.Slice(c.keys, int(c.size))
	vals := unsafe.Slice(c.vals, int(c.size))
	for i := range keys {
		out[C.GoString(keys[i])] = C.GoString(vals[i])
	}
	return out
}
