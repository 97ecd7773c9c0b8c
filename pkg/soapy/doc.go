// Package soapy provides Go bindings for the SoapySDR hardware abstraction
// library, giving access to transmit and receive streams on the many software
// defined radio devices SoapySDR supports.
//
// The package links against libSoapySDR via cgo and works with both the
// pre-0.8 and 0.8+ C APIs; the stream setup calling-convention change between
// those versions is absorbed at compile time.
package soapy
