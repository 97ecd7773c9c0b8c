package soapy

/*
#include <stdlib.h>
#include <SoapySDR/Device.h>
#include "compat.h"
*/
import "C"

import "unsafe"

// Direction selects the transmit or receive half of a device.
type Direction int

const (
	// DirectionTx is the transmit direction (SOAPY_SDR_TX).
	DirectionTx Direction = 0

	// DirectionRx is the receive direction (SOAPY_SDR_RX).
	DirectionRx Direction = 1
)

func (d Direction) String() string {
	if d == DirectionTx {
		return "TX"
	}
	return "RX"
}

// Range describes a span of allowed values, e.g. for gains or frequencies.
type Range struct {
	Minimum float64
	Maximum float64
}

func rangeFromC(c C.SoapySDRRange) Range {
	return Range{Minimum: float64(c.minimum), Maximum: float64(c.maximum)}
}

// Device is an opened SDR hardware device. A Device is not safe for
// concurrent use; callers that share one across goroutines must serialize
// access, as libSoapySDR requires.
type Device struct {
	ptr *C.SoapySDRDevice
}

// Enumerate lists the devices available on the system. args filters the
// results; pass nil for all devices. Each returned KwArgs can be handed to
// Open to open that device.
func Enumerate(args KwArgs) ([]KwArgs, error) {
	cArgs := args.toC()
	defer C.SoapySDRKwargs_clear(&cArgs)

	var n C.size_t
	list := C.SoapySDRDevice_enumerate(&cArgs, &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	out := make([]KwArgs, 0, int(n))
	if list != nil {
		for _, c := range unsafe.Slice(list, int(n)) {
			c := c
			out = append(out, kwargsFromC(&c))
		}
		C.SoapySDRKwargsList_clear(list, n)
	}
	return out, nil
}

// Open finds and opens a device matching args.
func Open(args KwArgs) (*Device, error) {
	cArgs := args.toC()
	defer C.SoapySDRKwargs_clear(&cArgs)

	ptr := C.SoapySDRDevice_make(&cArgs)
	if err := checkError(); err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, &Error{Code: ErrOther, Message: lastError()}
	}
	return &Device{ptr: ptr}, nil
}

// Close releases the device. Streams set up on the device must be closed
// first.
func (d *Device) Close() error {
	C.SoapySDRDevice_unmake(d.ptr)
	d.ptr = nil
	return checkError()
}

// stringResult adopts a library-allocated string, releasing it on both paths.
func stringResult(p *C.char) (string, error) {
	if err := checkError(); err != nil {
		C.SoapySDR_free(unsafe.Pointer(p))
		return "", err
	}
	s := C.GoString(p)
	C.SoapySDR_free(unsafe.Pointer(p))
	return s, nil
}

// rangeList adopts a library-allocated range array.
func rangeList(p *C.SoapySDRRange, n C.size_t) []Range {
	out := make([]Range, int(n))
	if p == nil {
		return out
	}
	for i, c := range unsafe.Slice(p, int(n)) {
		out[i] = rangeFromC(c)
	}
	C.SoapySDR_free(unsafe.Pointer(p))
	return out
}

// DriverKey identifies the device driver. Several variants of a product may
// share a driver.
func (d *Device) DriverKey() (string, error) {
	return stringResult(C.SoapySDRDevice_getDriverKey(d.ptr))
}

// HardwareKey identifies the hardware behind the driver.
func (d *Device) HardwareKey() (string, error) {
	return stringResult(C.SoapySDRDevice_getHardwareKey(d.ptr))
}

// HardwareInfo returns device metadata such as vendor name, revisions and
// serial numbers.
func (d *Device) HardwareInfo() (KwArgs, error) {
	c := C.SoapySDRDevice_getHardwareInfo(d.ptr)
	if err := checkError(); err != nil {
		return nil, err
	}
	out := kwargsFromC(&c)
	C.SoapySDRKwargs_clear(&c)
	return out, nil
}

// FrontendMapping returns the mapping configuration of DSP units to RF
// frontends for the given direction.
func (d *Device) FrontendMapping(dir Direction) (string, error) {
	return stringResult(C.SoapySDRDevice_getFrontendMapping(d.ptr, C.int(dir)))
}

// SetFrontendMapping configures the mapping of available DSP units to RF
// frontends, controlling channel mapping and availability.
func (d *Device) SetFrontendMapping(dir Direction, mapping string) error {
	cs := C.CString(mapping)
	defer C.free(unsafe.Pointer(cs))
	C.SoapySDRDevice_setFrontendMapping(d.ptr, C.int(dir), cs)
	return checkError()
}

// NumChannels returns the number of channels in the given direction.
func (d *Device) NumChannels(dir Direction) (uint, error) {
	n := C.SoapySDRDevice_getNumChannels(d.ptr, C.int(dir))
	if err := checkError(); err != nil {
		return 0, err
	}
	return uint(n), nil
}

// ChannelInfo returns driver metadata for one channel.
func (d *Device) ChannelInfo(dir Direction, channel uint) (KwArgs, error) {
	c := C.SoapySDRDevice_getChannelInfo(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return nil, err
	}
	out := kwargsFromC(&c)
	C.SoapySDRKwargs_clear(&c)
	return out, nil
}

// FullDuplex reports whether the channel is full duplex.
func (d *Device) FullDuplex(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_getFullDuplex(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// StreamFormats lists the sample formats the channel can stream.
func (d *Device) StreamFormats(dir Direction, channel uint) ([]Format, error) {
	var n C.size_t
	p := C.SoapySDRDevice_getStreamFormats(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	names := stringList(p, n)
	out := make([]Format, len(names))
	for i, s := range names {
		out[i] = Format(s)
	}
	return out, nil
}

// NativeStreamFormat returns the hardware's underlying transport format for
// the channel and the full-scale value of that format.
func (d *Device) NativeStreamFormat(dir Direction, channel uint) (Format, float64, error) {
	var fullScale C.double
	p := C.SoapySDRDevice_getNativeStreamFormat(d.ptr, C.int(dir), C.size_t(channel), &fullScale)
	s, err := stringResult(p)
	if err != nil {
		return "", 0, err
	}
	return Format(s), float64(fullScale), nil
}

// StreamArgsInfo describes the stream arguments the channel accepts.
func (d *Device) StreamArgsInfo(dir Direction, channel uint) ([]ArgInfo, error) {
	var n C.size_t
	p := C.SoapySDRDevice_getStreamArgsInfo(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return argInfoList(p, n), nil
}

// Antennas lists the selectable antennas on a channel.
func (d *Device) Antennas(dir Direction, channel uint) ([]string, error) {
	var n C.size_t
	p := C.SoapySDRDevice_listAntennas(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return stringList(p, n), nil
}

// SetAntenna selects an antenna on a channel.
func (d *Device) SetAntenna(dir Direction, channel uint, name string) error {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	C.SoapySDRDevice_setAntenna(d.ptr, C.int(dir), C.size_t(channel), cs)
	return checkError()
}

// Antenna returns the selected antenna on a channel.
func (d *Device) Antenna(dir Direction, channel uint) (string, error) {
	return stringResult(C.SoapySDRDevice_getAntenna(d.ptr, C.int(dir), C.size_t(channel)))
}

// HasDCOffsetMode reports whether automatic DC offset correction is
// supported.
func (d *Device) HasDCOffsetMode(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_hasDCOffsetMode(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// SetDCOffsetMode enables or disables automatic DC offset correction.
func (d *Device) SetDCOffsetMode(dir Direction, channel uint, automatic bool) error {
	C.SoapySDRDevice_setDCOffsetMode(d.ptr, C.int(dir), C.size_t(channel), C.bool(automatic))
	return checkError()
}

// DCOffsetMode reports whether automatic DC offset correction is enabled.
func (d *Device) DCOffsetMode(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_getDCOffsetMode(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// HasDCOffset reports whether manual frontend DC offset correction is
// supported.
func (d *Device) HasDCOffset(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_hasDCOffset(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// SetDCOffset sets the frontend DC offset correction for the I and Q
// components, 1.0 max.
func (d *Device) SetDCOffset(dir Direction, channel uint, offsetI, offsetQ float64) error {
	C.SoapySDRDevice_setDCOffset(d.ptr, C.int(dir), C.size_t(channel),
		C.double(offsetI), C.double(offsetQ))
	return checkError()
}

// DCOffset returns the frontend DC offset correction for (I, Q).
func (d *Device) DCOffset(dir Direction, channel uint) (float64, float64, error) {
	var i, q C.double
	C.SoapySDRDevice_getDCOffset(d.ptr, C.int(dir), C.size_t(channel), &i, &q)
	if err := checkError(); err != nil {
		return 0, 0, err
	}
	return float64(i), float64(q), nil
}

// HasIQBalance reports whether frontend IQ balance correction is supported.
func (d *Device) HasIQBalance(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_hasIQBalance(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// SetIQBalance sets the frontend IQ balance correction for the I and Q
// components, 1.0 max.
func (d *Device) SetIQBalance(dir Direction, channel uint, balanceI, balanceQ float64) error {
	C.SoapySDRDevice_setIQBalance(d.ptr, C.int(dir), C.size_t(channel),
		C.double(balanceI), C.double(balanceQ))
	return checkError()
}

// IQBalance returns the frontend IQ balance correction for (I, Q).
func (d *Device) IQBalance(dir Direction, channel uint) (float64, float64, error) {
	var i, q C.double
	C.SoapySDRDevice_getIQBalance(d.ptr, C.int(dir), C.size_t(channel), &i, &q)
	if err := checkError(); err != nil {
		return 0, 0, err
	}
	return float64(i), float64(q), nil
}

// ListGains lists the amplification elements of a chain, in order RF to
// baseband.
func (d *Device) ListGains(dir Direction, channel uint) ([]string, error) {
	var n C.size_t
	p := C.SoapySDRDevice_listGains(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return stringList(p, n), nil
}

// HasGainMode reports whether automatic gain control is supported.
func (d *Device) HasGainMode(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_hasGainMode(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// SetGainMode enables or disables automatic gain control.
func (d *Device) SetGainMode(dir Direction, channel uint, automatic bool) error {
	C.SoapySDRDevice_setGainMode(d.ptr, C.int(dir), C.size_t(channel), C.bool(automatic))
	return checkError()
}

// GainMode reports whether automatic gain control is enabled.
func (d *Device) GainMode(dir Direction, channel uint) (bool, error) {
	b := C.SoapySDRDevice_getGainMode(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return false, err
	}
	return bool(b), nil
}

// SetGain sets the overall amplification of a chain in dB. The value is
// distributed across available elements by the driver.
func (d *Device) SetGain(dir Direction, channel uint, gain float64) error {
	C.SoapySDRDevice_setGain(d.ptr, C.int(dir), C.size_t(channel), C.double(gain))
	return checkError()
}

// Gain returns the overall amplification of a chain in dB.
func (d *Device) Gain(dir Direction, channel uint) (float64, error) {
	g := C.SoapySDRDevice_getGain(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return 0, err
	}
	return float64(g), nil
}

// GainRange returns the overall range of possible gain values.
func (d *Device) GainRange(dir Direction, channel uint) (Range, error) {
	r := C.SoapySDRDevice_getGainRange(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return Range{}, err
	}
	return rangeFromC(r), nil
}

// SetGainElement sets one amplification element, named per ListGains, in dB.
func (d *Device) SetGainElement(dir Direction, channel uint, name string, gain float64) error {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	C.SoapySDRDevice_setGainElement(d.ptr, C.int(dir), C.size_t(channel), cs, C.double(gain))
	return checkError()
}

// GainElement returns the value of one amplification element in dB.
func (d *Device) GainElement(dir Direction, channel uint, name string) (float64, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	g := C.SoapySDRDevice_getGainElement(d.ptr, C.int(dir), C.size_t(channel), cs)
	if err := checkError(); err != nil {
		return 0, err
	}
	return float64(g), nil
}

// GainElementRange returns the range of possible values for one element.
func (d *Device) GainElementRange(dir Direction, channel uint, name string) (Range, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	r := C.SoapySDRDevice_getGainElementRange(d.ptr, C.int(dir), C.size_t(channel), cs)
	if err := checkError(); err != nil {
		return Range{}, err
	}
	return rangeFromC(r), nil
}

// FrequencyRange returns the ranges of overall tunable frequency values.
func (d *Device) FrequencyRange(dir Direction, channel uint) ([]Range, error) {
	var n C.size_t
	p := C.SoapySDRDevice_getFrequencyRange(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return rangeList(p, n), nil
}

// Frequency returns the overall center frequency of the chain in Hz: the
// down-conversion frequency for RX, the up-conversion frequency for TX.
func (d *Device) Frequency(dir Direction, channel uint) (float64, error) {
	f := C.SoapySDRDevice_getFrequency(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return 0, err
	}
	return float64(f), nil
}

// SetFrequency tunes the chain as close as possible to frequency in Hz,
// compensating tuning inaccuracies with the baseband component. args can
// augment the tuning algorithm:
//
//   - "OFFSET": an RF tuning offset, compensated with the BB component,
//     usually to move the LO out of the passband.
//   - a component name with a frequency value enforces that component's
//     frequency; with the value "IGNORE" the component is left untouched.
func (d *Device) SetFrequency(dir Direction, channel uint, frequency float64, args KwArgs) error {
	cArgs := args.toC()
	defer C.SoapySDRKwargs_clear(&cArgs)
	C.SoapySDRDevice_setFrequency(d.ptr, C.int(dir), C.size_t(channel),
		C.double(frequency), &cArgs)
	return checkError()
}

// ListFrequencies lists the tunable elements of the chain, in order RF to
// baseband.
func (d *Device) ListFrequencies(dir Direction, channel uint) ([]string, error) {
	var n C.size_t
	p := C.SoapySDRDevice_listFrequencies(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return stringList(p, n), nil
}

// ComponentFrequencyRange returns the tunable range of one element.
func (d *Device) ComponentFrequencyRange(dir Direction, channel uint, name string) ([]Range, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	var n C.size_t
	p := C.SoapySDRDevice_getFrequencyRangeComponent(d.ptr, C.int(dir), C.size_t(channel), cs, &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return rangeList(p, n), nil
}

// ComponentFrequency returns the frequency of one tunable element in Hz.
func (d *Device) ComponentFrequency(dir Direction, channel uint, name string) (float64, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	f := C.SoapySDRDevice_getFrequencyComponent(d.ptr, C.int(dir), C.size_t(channel), cs)
	if err := checkError(); err != nil {
		return 0, err
	}
	return float64(f), nil
}

// SetComponentFrequency tunes one element of the chain. Recommended element
// names are "CORR" (frequency correction in PPM), "RF" and "BB".
func (d *Device) SetComponentFrequency(dir Direction, channel uint, name string, frequency float64, args KwArgs) error {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	cArgs := args.toC()
	defer C.SoapySDRKwargs_clear(&cArgs)
	C.SoapySDRDevice_setFrequencyComponent(d.ptr, C.int(dir), C.size_t(channel), cs,
		C.double(frequency), &cArgs)
	return checkError()
}

// FrequencyArgsInfo describes the tune arguments the channel accepts.
func (d *Device) FrequencyArgsInfo(dir Direction, channel uint) ([]ArgInfo, error) {
	var n C.size_t
	p := C.SoapySDRDevice_getFrequencyArgsInfo(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return argInfoList(p, n), nil
}

// SampleRate returns the baseband sample rate of the chain in samples per
// second.
func (d *Device) SampleRate(dir Direction, channel uint) (float64, error) {
	r := C.SoapySDRDevice_getSampleRate(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return 0, err
	}
	return float64(r), nil
}

// SetSampleRate sets the baseband sample rate of the chain in samples per
// second.
func (d *Device) SetSampleRate(dir Direction, channel uint, rate float64) error {
	C.SoapySDRDevice_setSampleRate(d.ptr, C.int(dir), C.size_t(channel), C.double(rate))
	return checkError()
}

// SampleRateRange returns the ranges of possible baseband sample rates.
func (d *Device) SampleRateRange(dir Direction, channel uint) ([]Range, error) {
	var n C.size_t
	p := C.SoapySDRDevice_getSampleRateRange(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return rangeList(p, n), nil
}

// Bandwidth returns the baseband filter width of the chain in Hz.
func (d *Device) Bandwidth(dir Direction, channel uint) (float64, error) {
	b := C.SoapySDRDevice_getBandwidth(d.ptr, C.int(dir), C.size_t(channel))
	if err := checkError(); err != nil {
		return 0, err
	}
	return float64(b), nil
}

// SetBandwidth sets the baseband filter width of the chain in Hz.
func (d *Device) SetBandwidth(dir Direction, channel uint, bandwidth float64) error {
	C.SoapySDRDevice_setBandwidth(d.ptr, C.int(dir), C.size_t(channel), C.double(bandwidth))
	return checkError()
}

// BandwidthRange returns the ranges of possible baseband filter widths.
func (d *Device) BandwidthRange(dir Direction, channel uint) ([]Range, error) {
	var n C.size_t
	p := C.SoapySDRDevice_getBandwidthRange(d.ptr, C.int(dir), C.size_t(channel), &n)
	if err := checkError(); err != nil {
		return nil, err
	}
	return rangeList(p, n), nil
}
