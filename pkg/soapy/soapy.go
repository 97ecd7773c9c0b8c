package soapy

/*
#cgo pkg-config: SoapySDR
#include <stdlib.h>
#include <SoapySDR/Version.h>
#include <SoapySDR/Modules.h>
#include <SoapySDR/Types.h>
#include "compat.h"
*/
import "C"

import "unsafe"

// APIVersion reports the version of the SoapySDR API this binding was
// compiled against.
func APIVersion() string {
	return C.GoString(C.SoapySDR_getAPIVersion())
}

// ABIVersion reports the ABI compatibility string of the linked library.
func ABIVersion() string {
	return C.GoString(C.SoapySDR_getABIVersion())
}

// LibVersion reports the version of the linked libSoapySDR.
func LibVersion() string {
	return C.GoString(C.SoapySDR_getLibVersion())
}

// RootPath returns the installation root of the linked library, under which
// driver modules are searched for.
func RootPath() string {
	return C.GoString(C.SoapySDR_getRootPath())
}

// ListModules returns the paths of all driver modules found on the system.
func ListModules() []string {
	var n C.size_t
	p := C.SoapySDR_listModules(&n)
	return stringList(p, n)
}

// stringList copies a C string array into a Go slice and releases the
// original with SoapySDRStrings_clear.
func stringList(p **C.char, n C.size_t) []string {
	out := make([]string, int(n))
	if p == nil {
		return out
	}
	for i, s := range unsafe.Slice(p, int(n)) {
		out[i] = C.GoString(s)
	}
	C.SoapySDRStrings_clear(&p, n)
	return out
}
