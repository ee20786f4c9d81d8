// Command lora-tx encodes and modulates a payload into a complex baseband
// IQ sample file. It is an external collaborator of the core PHY library,
// not part of it: all the coding and chirp-synthesis work happens inside
// internal/lora.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"io"
	"log"
	"os"

	"github.com/jeongseonghan/lora-phy/internal/lora"
)

func main() {
	payloadHex := flag.String("payload", "", "payload bytes, hex-encoded")
	sf := flag.Int("sf", 7, "spread factor, 7..12")
	bwHz := flag.Float64("bw", 125000, "bandwidth in Hz (125000, 250000, or 500000)")
	cr := flag.Int("cr", 1, "coding rate index, 1..4 (4/5..4/8)")
	osr := flag.Int("osr", 1, "oversampling ratio")
	out := flag.String("out", "", "output IQ file path")
	stdout := flag.Bool("stdout", false, "write IQ samples to stdout instead of --out")
	flag.Parse()

	if err := run(*payloadHex, *sf, *bwHz, *cr, *osr, *out, *stdout); err != nil {
		log.Printf("lora-tx: %v", err)
		os.Exit(1)
	}
}

func run(payloadHex string, sf int, bwHz float64, cr, osr int, out string, stdout bool) error {
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return err
	}
	bw, err := lora.BandwidthFromHz(bwHz)
	if err != nil {
		return err
	}

	p := lora.DefaultParams(sf)
	p.BW = bw
	p.CR = lora.CodingRate(cr)
	p.OSR = osr

	ws := lora.NewWorkspace(0, 0)
	if err := ws.Init(p); err != nil {
		return err
	}

	symbols := make([]uint16, 4096)
	n, err := ws.Encode(payload, symbols)
	if err != nil {
		return err
	}
	symbols = symbols[:n]

	iq := make([]complex64, (p.PreambleLen+2+2+n)*p.SamplesPerSymbol())
	written, err := ws.Modulate(symbols, iq)
	if err != nil {
		return err
	}

	var w io.Writer
	if stdout || out == "" {
		w = os.Stdout
	} else {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	bw2 := bufio.NewWriter(w)
	for _, c := range iq[:written] {
		if err := binary.Write(bw2, binary.LittleEndian, real(c)); err != nil {
			return err
		}
		if err := binary.Write(bw2, binary.LittleEndian, imag(c)); err != nil {
			return err
		}
	}
	return bw2.Flush()
}
