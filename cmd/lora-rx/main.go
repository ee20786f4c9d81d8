// Command lora-rx reads a complex baseband IQ sample file, demodulates
// and decodes it, and prints the recovered payload and decode metrics.
// With --monitor it also streams those metrics to a local WebSocket
// server for live inspection.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jeongseonghan/lora-phy/internal/lora"
	"github.com/jeongseonghan/lora-phy/internal/monitor"
)

func main() {
	in := flag.String("in", "", "input IQ file path")
	sf := flag.Int("sf", 7, "spread factor, 7..12")
	bwHz := flag.Float64("bw", 125000, "bandwidth in Hz (125000, 250000, or 500000)")
	cr := flag.Int("cr", 1, "coding rate index, 1..4 (4/5..4/8)")
	osr := flag.Int("osr", 1, "oversampling ratio")
	monitorAddr := flag.String("monitor", "", "if set, serve live metrics at this address (e.g. :8080)")
	flag.Parse()

	if err := run(*in, *sf, *bwHz, *cr, *osr, *monitorAddr); err != nil {
		log.Printf("lora-rx: %v", err)
		os.Exit(1)
	}
}

func readIQ(path string) ([]complex64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []complex64
	for {
		var re, im float32
		if err := binary.Read(f, binary.LittleEndian, &re); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if err := binary.Read(f, binary.LittleEndian, &im); err != nil {
			return nil, err
		}
		samples = append(samples, complex(re, im))
	}
	return samples, nil
}

func run(in string, sf int, bwHz float64, cr, osr int, monitorAddr string) error {
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

	iq, err := readIQ(in)
	if err != nil {
		return err
	}
	s := p.SamplesPerSymbol()
	usable := (len(iq) / s) * s
	iq = iq[:usable]

	demodSymbols := make([]uint16, len(iq)/s)
	numDemod, err := ws.Demodulate(iq, demodSymbols)
	if err != nil {
		return err
	}

	skip := p.PreambleLen + 2 + 2
	if skip > numDemod {
		return lora.ErrSizeMismatch
	}
	payloadSymbols := demodSymbols[skip:numDemod]

	payload := make([]byte, 512)
	n, err := ws.Decode(payloadSymbols, payload)
	metrics := ws.LastMetrics()

	if monitorAddr != "" {
		hub := monitor.NewHub()
		hub.PublishMetrics(metrics, numDemod)
		srv := monitor.NewServer(monitorAddr, hub)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("lora-rx: monitor server: %v", err)
			}
		}()
	}

	if err != nil {
		return err
	}
	payload = payload[:n]

	fmt.Printf("header length: %d\n", n)
	fmt.Printf("payload: %s\n", hex.EncodeToString(payload))
	fmt.Printf("CRC OK: %s\n", yesNo(metrics.CRCOk))
	fmt.Printf("CFO: %g  TimeOffset: %g  HammingErrors: %d  HammingBad: %d\n",
		metrics.CFO, metrics.TimeOffset, metrics.HammingErrors, metrics.HammingBad)

	if monitorAddr != "" {
		select {}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
