package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Header identifies the run a trace file belongs to.
type Header struct {
	RunID   string     `json:"run_id"`
	Policy  string     `json:"policy"`
	Modulus int64      `json:"modulus,omitempty"`
	Rounds  int        `json:"rounds"`
	Level   TraceLevel `json:"level"`
}

// line is one JSON line of a trace file; exactly one field is set.
type line struct {
	Header *Header      `json:"header,omitempty"`
	Throw  *ThrowRecord `json:"throw,omitempty"`
	Round  *RoundRecord `json:"round,omitempty"`
}

// Dump is the decoded content of a trace file.
type Dump struct {
	Header Header
	Throws []ThrowRecord
	Rounds []RoundRecord
}

// WriteFile stores the header followed by every round and throw record as
// zstd-compressed JSON lines. Parent directories are created as needed.
func WriteFile(path string, hdr Header, st *SimulationTrace) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating trace directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	if err := Write(f, hdr, st); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the trace to w. See WriteFile.
func Write(w io.Writer, hdr Header, st *SimulationTrace) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	bw := bufio.NewWriter(enc)
	je := json.NewEncoder(bw)

	if err := je.Encode(line{Header: &hdr}); err != nil {
		_ = enc.Close()
		return fmt.Errorf("writing trace header: %w", err)
	}
	if st != nil {
		for i := range st.Rounds {
			if err := je.Encode(line{Round: &st.Rounds[i]}); err != nil {
				_ = enc.Close()
				return fmt.Errorf("writing round record: %w", err)
			}
		}
		for i := range st.Throws {
			if err := je.Encode(line{Throw: &st.Throws[i]}); err != nil {
				_ = enc.Close()
				return fmt.Errorf("writing throw record: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("flushing trace: %w", err)
	}
	return enc.Close()
}

// ReadFile decodes a file written by WriteFile.
func ReadFile(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a trace written by Write.
func Read(r io.Reader) (*Dump, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	dump := &Dump{Throws: make([]ThrowRecord, 0), Rounds: make([]RoundRecord, 0)}
	jd := json.NewDecoder(dec)
	sawHeader := false
	for {
		var l line
		if err := jd.Decode(&l); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding trace line: %w", err)
		}
		switch {
		case l.Header != nil:
			dump.Header = *l.Header
			sawHeader = true
		case l.Round != nil:
			dump.Rounds = append(dump.Rounds, *l.Round)
		case l.Throw != nil:
			dump.Throws = append(dump.Throws, *l.Throw)
		}
	}
	if !sawHeader {
		return nil, fmt.Errorf("trace has no header line")
	}
	return dump, nil
}
