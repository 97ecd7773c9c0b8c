package soapy

/*
#include <stdlib.h>
#include <SoapySDR/Device.h>
#include "compat.h"
*/
import "C"

import (
	"fmt"
	"time"
	"unsafe"
)

// Stream flag bits, matching SoapySDR/Constants.h. Read and write results
// may carry them in the stream's flag word.
const (
	StreamFlagEndBurst      = 1 << 1
	StreamFlagHasTime       = 1 << 2
	StreamFlagEndAbrupt     = 1 << 3
	StreamFlagOnePacket     = 1 << 4
	StreamFlagMoreFragments = 1 << 5
	StreamFlagWaitTrigger   = 1 << 6
)

// stream holds the state shared by RX and TX streams. Sample buffers are
// allocated in C memory so scatter arrays handed to the library never
// contain Go pointers.
type stream struct {
	dev       *Device
	handle    *C.SoapySDRStream
	nchannels int
	mtu       int
	buffs     *unsafe.Pointer
	flags     C.int
	timeNs    C.longlong
	active    bool
}

// setupStream opens a stream through the version compat shim. The returned
// handle is only valid when the shim reports status zero; on any non-zero
// status no handle is retained.
func (d *Device) setupStream(dir Direction, format Format, channels []uint, args KwArgs) (*C.SoapySDRStream, error) {
	cFormat := C.CString(string(format))
	defer C.free(unsafe.Pointer(cFormat))

	var chanPtr *C.size_t
	if len(channels) > 0 {
		cChans := make([]C.size_t, len(channels))
		for i, ch := range channels {
			cChans[i] = C.size_t(ch)
		}
		chanPtr = &cChans[0]
	}

	cArgs := args.toC()
	defer C.SoapySDRKwargs_clear(&cArgs)

	var handle *C.SoapySDRStream
	ret := C.soapySetupStreamCompat(d.ptr, &handle, C.int(dir), cFormat,
		chanPtr, C.size_t(len(channels)), &cArgs)
	if ret != 0 {
		return nil, &Error{Code: errorCode(int(ret)), Message: lastError()}
	}
	return handle, nil
}

func (d *Device) newStream(dir Direction, format Format, channels []uint, args KwArgs) (*stream, error) {
	handle, err := d.setupStream(dir, format, channels, args)
	if err != nil {
		return nil, err
	}

	nchannels := len(channels)
	if nchannels == 0 {
		// The library defaults to channel 0 when no list is given.
		nchannels = 1
	}

	mtu := int(C.SoapySDRDevice_getStreamMTU(d.ptr, handle))
	if err := checkError(); err != nil {
		C.SoapySDRDevice_closeStream(d.ptr, handle)
		return nil, err
	}

	sampleSize := format.Size()
	buffs := (*unsafe.Pointer)(C.malloc(C.size_t(nchannels) * C.size_t(unsafe.Sizeof(uintptr(0)))))
	for i, p := 0, unsafe.Slice(buffs, nchannels); i < nchannels; i++ {
		p[i] = C.malloc(C.size_t(mtu * sampleSize))
	}

	return &stream{
		dev:       d,
		handle:    handle,
		nchannels: nchannels,
		mtu:       mtu,
		buffs:     buffs,
	}, nil
}

// NumChannels returns the number of channels on the stream.
func (s *stream) NumChannels() int {
	return s.nchannels
}

// MTU is the maximum number of samples moved by one Read or Write call, a
// good per-channel buffer size for best throughput.
func (s *stream) MTU() int {
	return s.mtu
}

// Activate enables the stream. Call it before Read or Write.
func (s *stream) Activate() error {
	return s.activate(0, 0)
}

// ActivateAt enables the stream at a hardware time in nanoseconds.
func (s *stream) ActivateAt(timeNs int64) error {
	return s.activate(StreamFlagHasTime, timeNs)
}

func (s *stream) activate(flags int, timeNs int64) error {
	if s.active {
		return &Error{Code: ErrOther, Message: "stream is already active"}
	}
	if err := statusError(C.SoapySDRDevice_activateStream(s.dev.ptr, s.handle,
		C.int(flags), C.longlong(timeNs), 0)); err != nil {
		return err
	}
	s.active = true
	return nil
}

// Deactivate halts data flow on the stream.
func (s *stream) Deactivate() error {
	return s.deactivate(0, 0)
}

// DeactivateAt halts data flow at a hardware time in nanoseconds.
func (s *stream) DeactivateAt(timeNs int64) error {
	return s.deactivate(StreamFlagHasTime, timeNs)
}

func (s *stream) deactivate(flags int, timeNs int64) error {
	if !s.active {
		return &Error{Code: ErrOther, Message: "stream is not active"}
	}
	if err := statusError(C.SoapySDRDevice_deactivateStream(s.dev.ptr, s.handle,
		C.int(flags), C.longlong(timeNs))); err != nil {
		return err
	}
	s.active = false
	return nil
}

// Close deactivates the stream if needed and releases it. The stream must
// not be used afterwards.
func (s *stream) Close() error {
	if s.active {
		s.Deactivate()
	}
	if s.buffs != nil {
		for i, p := 0, unsafe.Slice(s.buffs, s.nchannels); i < s.nchannels; i++ {
			C.free(p[i])
		}
		C.free(unsafe.Pointer(s.buffs))
		s.buffs = nil
	}
	C.SoapySDRDevice_closeStream(s.dev.ptr, s.handle)
	s.handle = nil
	return checkError()
}

// RxStream is a stream open for receiving complex64 ("CF32") samples.
// Streams may involve multiple channels. Like the Device it came from, a
// stream is not safe for concurrent use.
type RxStream struct {
	stream
}

// RxStreamCF32 initializes a receive stream of complex64 samples on the
// given channels. An empty channel list selects channel 0. args configures
// driver-specific stream options and passes through unmodified.
func (d *Device) RxStreamCF32(channels []uint, args KwArgs) (*RxStream, error) {
	s, err := d.newStream(DirectionRx, FormatCF32, channels, args)
	if err != nil {
		return nil, err
	}
	return &RxStream{stream: *s}, nil
}

// Read receives samples into the provided buffers, one per channel. It
// returns the number of samples read per channel, which may be smaller than
// the buffer size and never exceeds the MTU. A timeout surfaces as an
// *Error with code ErrTimeout.
func (s *RxStream) Read(buffers [][]complex64, timeout time.Duration) (int, error) {
	if len(buffers) != s.nchannels {
		return 0, fmt.Errorf("soapy: stream has %d channels, got %d buffers", s.nchannels, len(buffers))
	}
	want := s.mtu
	for _, b := range buffers {
		if len(b) < want {
			want = len(b)
		}
	}
	if want <= 0 {
		return 0, nil
	}

	s.flags = 0
	n, err := lenResult(C.SoapySDRDevice_readStream(s.dev.ptr, s.handle,
		s.buffs, C.size_t(want), &s.flags, &s.timeNs, C.long(timeout.Microseconds())))
	if err != nil {
		return 0, err
	}

	for i, p := range unsafe.Slice(s.buffs, s.nchannels) {
		copy(buffers[i], unsafe.Slice((*complex64)(p), n))
	}
	return n, nil
}

// TimeNs returns the hardware timestamp of the most recent Read, when the
// driver provided one (StreamFlagHasTime set in Flags).
func (s *RxStream) TimeNs() int64 {
	return int64(s.timeNs)
}

// Flags returns the stream flags of the most recent Read.
func (s *RxStream) Flags() int {
	return int(s.flags)
}

// TxStream is a stream open for transmitting complex64 ("CF32") samples.
// Streams may involve multiple channels. Like the Device it came from, a
// stream is not safe for concurrent use.
type TxStream struct {
	stream
}

// TxStreamCF32 initializes a transmit stream of complex64 samples on the
// given channels. An empty channel list selects channel 0. args configures
// driver-specific stream options and passes through unmodified.
func (d *Device) TxStreamCF32(channels []uint, args KwArgs) (*TxStream, error) {
	s, err := d.newStream(DirectionTx, FormatCF32, channels, args)
	if err != nil {
		return nil, err
	}
	return &TxStream{stream: *s}, nil
}

// Write sends samples from the provided buffers, one per channel. All
// buffers must be the same length. It returns the number of samples written
// per channel, which may be smaller than the buffer size and never exceeds
// the MTU.
func (s *TxStream) Write(buffers [][]complex64, timeout time.Duration) (int, error) {
	if len(buffers) != s.nchannels {
		return 0, fmt.Errorf("soapy: stream has %d channels, got %d buffers", s.nchannels, len(buffers))
	}
	elems := 0
	if len(buffers) > 0 {
		elems = len(buffers[0])
	}
	for _, b := range buffers {
		if len(b) != elems {
			return 0, fmt.Errorf("soapy: all buffers must be the same length")
		}
	}
	if elems > s.mtu {
		elems = s.mtu
	}
	if elems <= 0 {
		return 0, nil
	}

	for i, p := range unsafe.Slice(s.buffs, s.nchannels) {
		copy(unsafe.Slice((*complex64)(p), elems), buffers[i])
	}

	s.flags = 0
	return lenResult(C.SoapySDRDevice_writeStream(s.dev.ptr, s.handle,
		s.buffs, C.size_t(elems), &s.flags, 0, C.long(timeout.Microseconds())))
}
