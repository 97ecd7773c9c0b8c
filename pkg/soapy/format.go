package soapy

/*
#include <stdlib.h>
#include <SoapySDR/Formats.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Format names the in-memory encoding of one sample. The first character
// selects the number type, optionally prefixed with 'C' for complex:
//
//	"C" complex (two numbers per sample)
//	"F" floating point
//	"S" signed integer
//	"U" unsigned integer
//
// followed by the number of bits per number, e.g. "CF32" for interleaved
// complex float32 or "CS16" for interleaved complex int16.
type Format string

const (
	FormatCF64 Format = "CF64"
	FormatCF32 Format = "CF32"
	FormatCS32 Format = "CS32"
	FormatCU32 Format = "CU32"
	FormatCS16 Format = "CS16"
	FormatCU16 Format = "CU16"
	FormatCS12 Format = "CS12"
	FormatCU12 Format = "CU12"
	FormatCS8  Format = "CS8"
	FormatCU8  Format = "CU8"
	FormatCS4  Format = "CS4"
	FormatCU4  Format = "CU4"
	FormatF64  Format = "F64"
	FormatF32  Format = "F32"
	FormatS32  Format = "S32"
	FormatU32  Format = "U32"
	FormatS16  Format = "S16"
	FormatU16  Format = "U16"
	FormatS8   Format = "S8"
	FormatU8   Format = "U8"
)

// ParseFormat validates s against the format grammar and returns it as a
// Format. Formats reported by devices may name encodings beyond the
// constants above, so any well-formed token is accepted.
func ParseFormat(s string) (Format, error) {
	rest := s
	if len(rest) > 0 && rest[0] == 'C' {
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return "", fmt.Errorf("soapy: invalid format %q", s)
	}
	switch rest[0] {
	case 'F', 'S', 'U':
	default:
		return "", fmt.Errorf("soapy: invalid format %q", s)
	}
	for i := 1; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return "", fmt.Errorf("soapy: invalid format %q", s)
		}
	}
	return Format(s), nil
}

func (f Format) String() string {
	return string(f)
}

// Size returns the size of one sample in bytes.
func (f Format) Size() int {
	cs := C.CString(string(f))
	defer C.free(unsafe.Pointer(cs))
	return int(C.SoapySDR_formatToSize(cs))
}
