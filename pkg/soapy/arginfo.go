package soapy

/*
#include <SoapySDR/Types.h>
*/
import "C"

import "unsafe"

// ArgType is the data type of a driver argument.
type ArgType int

const (
	ArgTypeBool ArgType = iota
	ArgTypeFloat
	ArgTypeInt
	ArgTypeString
)

// ArgInfoOption is one allowed value of a restricted argument, with an
// optional display name.
type ArgInfoOption struct {
	Value string
	Name  string
}

// ArgInfo describes one argument a driver accepts, as reported by the
// stream-args and frequency-args queries.
type ArgInfo struct {
	// Key identifies the argument.
	Key string

	// Value is the default when the argument is not specified.
	Value string

	// Name is a displayable name, empty when the driver provides none.
	Name string

	// Description is a brief description, may be empty.
	Description string

	// Units of the argument: dB, Hz, etc. May be empty.
	Units string

	// Type is the data type of the argument.
	Type ArgType

	// Options restricts the argument to a discrete set when non-empty.
	Options []ArgInfoOption
}

func argTypeFromC(t C.SoapySDRArgInfoType) ArgType {
	switch t {
	case C.SOAPY_SDR_ARG_INFO_BOOL:
		return ArgTypeBool
	case C.SOAPY_SDR_ARG_INFO_FLOAT:
		return ArgTypeFloat
	case C.SOAPY_SDR_ARG_INFO_INT:
		return ArgTypeInt
	default:
		return ArgTypeString
	}
}

func optionalString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func argInfoFromC(c *C.SoapySDRArgInfo) ArgInfo {
	info := ArgInfo{
		Key:         optionalString(c.key),
		Value:       optionalString(c.value),
		Name:        optionalString(c.name),
		Description: optionalString(c.description),
		Units:       optionalString(c.units),
		Type:        argTypeFromC(c._type),
	}
	if c.numOptions > 0 {
		values := unsafe.Slice(c.options, int(c.numOptions))
		names := unsafe.Slice(c.optionNames, int(c.numOptions))
		info.Options = make([]ArgInfoOption, int(c.numOptions))
		for i := range info.Options {
			info.Options[i] = ArgInfoOption{
				Value: optionalString(values[i]),
				Name:  optionalString(names[i]),
			}
		}
	}
	return info
}

// argInfoList converts and releases a C arg-info list.
func argInfoList(p *C.SoapySDRArgInfo, n C.size_t) []ArgInfo {
	out := make([]ArgInfo, int(n))
	if p == nil {
		return out
	}
	for i, c := range unsafe.Slice(p, int(n)) {
		c := c
		out[i] = argInfoFromC(&c)
	}
	C.SoapySDRArgInfoList_clear(p, n)
	return out
}
