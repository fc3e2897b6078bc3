package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// CompressedSuffix marks report files written in snappy framed format
const CompressedSuffix = ".sz"

// snappy framed streams open with this stream identifier chunk
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// Encode writes r as indented JSON, snappy framed when compressed is set
func (r *Report) Encode(w io.Writer, compressed bool) error {
	if !compressed {
		return encodeJSON(w, r)
	}

	sw := snappy.NewBufferedWriter(w)
	if err := encodeJSON(sw, r); err != nil {
		_ = sw.Close()
		return err
	}
	return sw.Close()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteFile writes r to path, compressing when path ends in .sz. The file is
// written to a temporary sibling first and renamed into place.
func (r *Report) WriteFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	bw := bufio.NewWriter(f)
	err = r.Encode(bw, strings.HasSuffix(path, CompressedSuffix))
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize report: %w", err)
	}
	return nil
}

// Decode reads a report in either plain JSON or snappy framed form
func Decode(rd io.Reader) (*Report, error) {
	br := bufio.NewReader(rd)
	head, err := br.Peek(len(snappyMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, snappyMagic) {
		src = snappy.NewReader(br)
	}

	var r Report
	if err := json.NewDecoder(src).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

// ReadFile reads a report written by WriteFile
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
