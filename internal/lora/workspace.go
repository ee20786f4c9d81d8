package lora

import "math"

const (
	defaultMaxSymbols = 1024
	defaultMaxPayload = 256
)

// Workspace is the caller-owned bundle of every buffer, FFT plan, and
// metrics slot the PHY reads or writes. It is created once per
// configuration (NewWorkspace + Init), reset between unrelated packets
// (Reset, which clears Metrics and the modulator phase), and never reallocates internally
// once Init has returned. A Workspace is not safe for concurrent use from
// more than one goroutine; each concurrent stream owns its own.
type Workspace struct {
	params Params

	planFwd *fftPlan
	planInv *fftPlan

	fftBuf         []complex64 // length N; owns the detector's FFT output
	dechirpScratch []complex64 // length N*osr
	windowCoef     []float32   // length N, only when params.Win != WindowNone
	baseUp         []complex64 // length N*osr, base reference upchirp
	baseDown       []complex64 // length N*osr, base reference downchirp

	byteScratch []byte // length maxPayload+2, payload+CRC staging

	metrics  Metrics
	modPhase float64 // phase accumulator threaded across the chirps of one Modulate call

	maxSymbols int
	maxPayload int
}

// NewWorkspace records the sizing for a workspace: Init sizes the
// payload+CRC staging buffer from maxPayload, and maxSymbols is kept as a
// symbol-count hint from which no internal buffer is sized. Pass 0 for either to accept the built-in default (1024
// symbols, 256 bytes).
func NewWorkspace(maxSymbols, maxPayload int) *Workspace {
	return &Workspace{maxSymbols: maxSymbols, maxPayload: maxPayload}
}

// Init builds the FFT plans, precomputes the base chirps and window
// coefficients, copies params into the workspace, and clears metrics. It
// is the only call in the PHY's lifecycle allowed to allocate.
func (ws *Workspace) Init(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ws.params = p
	n := p.N()
	s := p.SamplesPerSymbol()

	ws.planFwd = newFFTPlan(n, false)
	ws.planInv = newFFTPlan(n, true)
	ws.fftBuf = make([]complex64, n)
	ws.dechirpScratch = make([]complex64, s)

	if p.Win == WindowHann {
		ws.windowCoef = make([]float32, n)
		for i := range ws.windowCoef {
			ws.windowCoef[i] = float32(0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
	} else {
		ws.windowCoef = nil
	}

	ws.baseUp = make([]complex64, s)
	ws.baseDown = make([]complex64, s)
	baseUpchirp(ws.baseUp, n, p.OSR, 1.0)
	baseDownchirp(ws.baseDown, n, p.OSR, 1.0)

	if ws.maxSymbols <= 0 {
		ws.maxSymbols = defaultMaxSymbols
	}
	if ws.maxPayload <= 0 {
		ws.maxPayload = defaultMaxPayload
	}
	ws.byteScratch = make([]byte, ws.maxPayload+2)

	ws.modPhase = 0
	ws.metrics.reset()
	return nil
}

// Reset clears Metrics and the modulator phase accumulator; plans and
// buffers, and their sizing, persist.
func (ws *Workspace) Reset() {
	ws.metrics.reset()
	ws.modPhase = 0
}

// LastMetrics returns a snapshot of the metrics from the most recently
// completed Decode or Demodulate call.
func (ws *Workspace) LastMetrics() Metrics {
	return ws.metrics
}

// Params returns the configuration the workspace was initialized with.
func (ws *Workspace) Params() Params {
	return ws.params
}
