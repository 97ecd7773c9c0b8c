package main

import (
	"math"
	"math/cmplx"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/dsp/fourier"
)

// spectrumReporter logs the strongest spectral bin of every Nth sample
// block, a cheap sanity check that the tuner actually sits where it was
// asked to.
type spectrumReporter struct {
	every  int
	count  int
	center float64
	rate   float64
	logger zerolog.Logger

	fft    *fourier.CmplxFFT
	seq    []complex128
	coeffs []complex128
}

func newSpectrumReporter(every int, centerHz, rateHz float64, logger zerolog.Logger) *spectrumReporter {
	if every <= 0 {
		return nil
	}
	return &spectrumReporter{
		every:  every,
		center: centerHz,
		rate:   rateHz,
		logger: logger,
	}
}

func (r *spectrumReporter) process(block []complex64) {
	if r == nil || len(block) == 0 {
		return
	}
	r.count++
	if r.count%r.every != 0 {
		return
	}

	n := len(block)
	if r.fft == nil || len(r.seq) != n {
		r.fft = fourier.NewCmplxFFT(n)
		r.seq = make([]complex128, n)
		r.coeffs = make([]complex128, n)
	}
	for i, s := range block {
		r.seq[i] = complex128(s)
	}
	r.fft.Coefficients(r.coeffs, r.seq)

	peak, peakPower := 0, 0.0
	for i, c := range r.coeffs {
		if p := cmplx.Abs(c); p > peakPower {
			peak, peakPower = i, p
		}
	}

	// Bins above n/2 are negative frequencies.
	offset := float64(peak)
	if peak > n/2 {
		offset = float64(peak - n)
	}
	offset *= r.rate / float64(n)

	r.logger.Info().
		Float64("freq_mhz", (r.center+offset)/1e6).
		Float64("power_db", 20*math.Log10(peakPower/float64(n))).
		Msg("spectrum peak")
}
