// Command lora-vectors generates a pseudo-random payload and dumps the
// intermediate stages of its TX/RX pipeline as named text artifacts,
// for bit-exact comparison against an external reference implementation.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeongseonghan/lora-phy/internal/lora"
	"github.com/jeongseonghan/lora-phy/internal/vectors"
)

func main() {
	sf := flag.Int("sf", 7, "spread factor, 7..12")
	cr := flag.Int("cr", 1, "coding rate index, 1..4 (4/5..4/8)")
	seed := flag.Int64("seed", 1, "PRNG seed for the generated payload")
	nbytes := flag.Int("bytes", 16, "payload size in bytes")
	outDir := flag.String("out", ".", "directory to write artifacts into")
	dumpFlag := flag.String("dump", "", "comma-separated artifact names to write (default: all)")
	flag.Parse()

	if err := run(*sf, *cr, *seed, *nbytes, *outDir, *dumpFlag); err != nil {
		log.Printf("lora-vectors: %v", err)
		os.Exit(1)
	}
}

func parseNames(dumpFlag string) []vectors.Name {
	if dumpFlag == "" {
		return vectors.All
	}
	var names []vectors.Name
	for _, s := range strings.Split(dumpFlag, ",") {
		names = append(names, vectors.Name(strings.TrimSpace(s)))
	}
	return names
}

func wants(names []vectors.Name, n vectors.Name) bool {
	for _, x := range names {
		if x == n {
			return true
		}
	}
	return false
}

func run(sf, cr int, seed int64, nbytes int, outDir, dumpFlag string) error {
	p := lora.DefaultParams(sf)
	p.CR = lora.CodingRate(cr)
	p.ExplicitHeader = false // the dumped stages cover the payload codec, not the header block

	ws := lora.NewWorkspace(0, 0)
	if err := ws.Init(p); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	payload := make([]byte, nbytes)
	rng.Read(payload)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	names := parseNames(dumpFlag)

	create := func(name vectors.Name) (*os.File, error) {
		return os.Create(filepath.Join(outDir, string(name)+".txt"))
	}

	if wants(names, vectors.Payload) {
		f, err := create(vectors.Payload)
		if err != nil {
			return err
		}
		err = vectors.WriteBytes(f, payload)
		f.Close()
		if err != nil {
			return err
		}
	}

	r := p.CR.CodewordBits()
	codewords := make([]uint8, (nbytes+2)*2+p.SF)
	nCw, err := ws.EncodeCodewords(payload, codewords)
	if err != nil {
		return err
	}
	if wants(names, vectors.PreInterleave) {
		f, err := create(vectors.PreInterleave)
		if err != nil {
			return err
		}
		err = vectors.WriteU8(f, codewords[:nCw])
		f.Close()
		if err != nil {
			return err
		}
	}

	symbols := make([]uint16, 4096)
	nSym, err := ws.Encode(payload, symbols)
	if err != nil {
		return err
	}
	symbols = symbols[:nSym]
	if wants(names, vectors.PostInterleave) {
		f, err := create(vectors.PostInterleave)
		if err != nil {
			return err
		}
		err = vectors.WriteU16(f, symbols)
		f.Close()
		if err != nil {
			return err
		}
	}

	iq := make([]complex64, (p.PreambleLen+2+2+nSym)*p.SamplesPerSymbol())
	written, err := ws.Modulate(symbols, iq)
	if err != nil {
		return err
	}
	iq = iq[:written]
	if wants(names, vectors.IQSamples) {
		f, err := create(vectors.IQSamples)
		if err != nil {
			return err
		}
		err = vectors.WriteIQ(f, iq)
		f.Close()
		if err != nil {
			return err
		}
	}

	demodSymbols := make([]uint16, written/p.SamplesPerSymbol())
	numDemod, err := ws.Demodulate(iq, demodSymbols)
	if err != nil {
		return err
	}
	demodSymbols = demodSymbols[:numDemod]
	if wants(names, vectors.DemodSymbols) {
		f, err := create(vectors.DemodSymbols)
		if err != nil {
			return err
		}
		err = vectors.WriteU16(f, demodSymbols)
		f.Close()
		if err != nil {
			return err
		}
	}

	skip := p.PreambleLen + 2 + 2
	payloadSymbols := demodSymbols[skip:]
	deinterleaved := make([]uint8, (len(payloadSymbols)/r)*p.SF+p.SF)
	nDe, err := ws.DeinterleaveCodewords(payloadSymbols, deinterleaved)
	if err != nil {
		return err
	}
	if wants(names, vectors.Deinterleave) {
		f, err := create(vectors.Deinterleave)
		if err != nil {
			return err
		}
		err = vectors.WriteU8(f, deinterleaved[:nDe])
		f.Close()
		if err != nil {
			return err
		}
	}

	decoded := make([]byte, nbytes+2)
	nDec, err := ws.Decode(payloadSymbols, decoded)
	if err != nil {
		return err
	}
	decoded = decoded[:nDec]
	if wants(names, vectors.Decoded) {
		f, err := create(vectors.Decoded)
		if err != nil {
			return err
		}
		err = vectors.WriteBytes(f, decoded)
		f.Close()
		if err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d artifacts to %s\n", len(names), outDir)
	return nil
}
