// Package document persists and reloads the symbols output file.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/projecteru2/uuidkey/symbol"
)

// DefaultPath is the output file name, relative to the working directory.
const DefaultPath = "uuidKey.json"

// ErrCount is returned by Validate when the symbol count does not match.
var ErrCount = errors.New("unexpected symbol count")

// Document is the on-disk shape: a single "symbols" key.
type Document struct {
	Symbols []symbol.Symbol `json:"symbols"`
}

// New wraps symbols. A nil slice is stored as empty so it encodes as [].
func New(symbols []symbol.Symbol) *Document {
	if symbols == nil {
		symbols = []symbol.Symbol{}
	}
	return &Document{Symbols: symbols}
}

// Marshal encodes the document as a single JSON line.
func (d *Document) Marshal() ([]byte, error) {
	out := New(d.Symbols)
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks every symbol and, when want >= 0, the symbol count.
func (d *Document) Validate(want int) error {
	if want >= 0 && len(d.Symbols) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrCount, len(d.Symbols), want)
	}
	for i, s := range d.Symbols {
		if _, err := symbol.Parse(string(s)); err != nil {
			return fmt.Errorf("symbols[%d]: %w", i, err)
		}
	}
	return nil
}

// Load reads the document at path. Unknown keys and a missing "symbols" key
// are rejected.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied output path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw struct {
		Symbols *[]symbol.Symbol `json:"symbols"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if raw.Symbols == nil {
		return nil, fmt.Errorf("decode %s: missing \"symbols\"", path)
	}
	return New(*raw.Symbols), nil
}

// Stat reports the size and digest of the file at path without decoding it.
func Stat(path string) (*Result, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied output path
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	dgst, err := digest.FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("digest %s: %w", path, err)
	}
	return &Result{Path: path, Size: fi.Size(), Digest: dgst}, nil
}
