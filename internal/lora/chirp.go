package lora

import "math"

// genChirp writes length complex baseband samples of a linear chirp into
// out (caller-owned, never reallocated). N is the base (non-oversampled)
// samples-per-symbol, osr the oversampling ratio; the chirp sweeps one
// full bandwidth across N*osr samples. f0 is the initial frequency offset
// in units of bins (encodes the symbol value when modulating; 0 for a
// base chirp). down selects a down- rather than up-sweep. phase is
// threaded in/out so consecutive calls (successive symbols) stay
// phase-continuous without recomputing from an absolute sample index.
//
// Instantaneous phase follows the closed form
//
//	phase(i) = sign * 2*pi * ( f0*i/(N*osr) + i^2/(2*N*osr^2) )
//
// which is the standard LoRa chirp: sampling the continuous quadratic-phase
// sweep at rate osr*BW per symbol reproduces the characteristic frequency
// wrap through ordinary aliasing, with no explicit modulo needed. Dechirping
// a symbol-f0 upchirp by multiplying it with the base (f0=0) downchirp of
// the same length yields a pure tone at bin f0, which is what the detector's
// FFT resolves.
func genChirp(out []complex64, N, osr, length int, f0 float64, down bool, amplitude float32, phase *float64) {
	sign := 1.0
	if down {
		sign = -1.0
	}
	denom := float64(N) * float64(osr)
	for i := 0; i < length; i++ {
		fi := float64(i)
		local := sign * 2 * math.Pi * (f0*fi/denom + fi*fi/(2*denom*float64(osr)))
		total := *phase + local
		out[i] = complex64(complex(float64(amplitude)*math.Cos(total), float64(amplitude)*math.Sin(total)))
	}
	fl := float64(length)
	carry := sign * 2 * math.Pi * (f0*fl/denom + fl*fl/(2*denom*float64(osr)))
	*phase += carry
	*phase = math.Mod(*phase, 2*math.Pi)
}

// baseUpchirp and baseDownchirp generate the unmodulated N*osr reference
// chirps (f0=0) used for the preamble, sync word and dechirping. phase is
// always a fresh pointer here: base chirps used for dechirping must not
// carry accumulated phase from the data path.
func baseUpchirp(out []complex64, N, osr int, amplitude float32) {
	var phase float64
	genChirp(out, N, osr, N*osr, 0, false, amplitude, &phase)
}

func baseDownchirp(out []complex64, N, osr int, amplitude float32) {
	var phase float64
	genChirp(out, N, osr, N*osr, 0, true, amplitude, &phase)
}
