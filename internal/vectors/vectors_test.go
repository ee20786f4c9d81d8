package vectors

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteBytesOneDecimalPerLine(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBytes(&buf, []byte{0, 1, 255}); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	got := strings.TrimRight(buf.String(), "\n")
	want := "0\n1\n255"
	if got != want {
		t.Fatalf("WriteBytes = %q, want %q", got, want)
	}
}

func TestWriteIQFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIQ(&buf, []complex64{complex(1, -2), complex(0.5, 0)}); err != nil {
		t.Fatalf("WriteIQ: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "1,-2" {
		t.Errorf("line 0 = %q, want %q", lines[0], "1,-2")
	}
	if lines[1] != "0.5,0" {
		t.Errorf("line 1 = %q, want %q", lines[1], "0.5,0")
	}
}

func TestAllListsSevenArtifacts(t *testing.T) {
	if len(All) != 7 {
		t.Fatalf("len(All) = %d, want 7", len(All))
	}
}
