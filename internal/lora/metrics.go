package lora

// Metrics is overwritten by each Decode/Demodulate call and stays valid
// until the next such call. It is returned as a value (non-owning view):
// callers get a snapshot, not a handle into the workspace.
type Metrics struct {
	CRCOk      bool
	CFO        float32
	TimeOffset float32

	// HammingErrors counts codewords that were corrected (single-bit,
	// SEC or SECDED). HammingBad counts codewords reported uncorrectable.
	HammingErrors int
	HammingBad    int
}

func (m *Metrics) reset() {
	*m = Metrics{}
}
