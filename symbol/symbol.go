package symbol

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Alphabet is the draw pool for both characters of a symbol.
	Alphabet = "1234567890abcdef"
	// Prefix is prepended to every symbol.
	Prefix = "0x"
	// DefaultCount is how many symbols a run produces unless overridden.
	DefaultCount = 20

	symbolLen = len(Prefix) + 2
)

var (
	// ErrNegativeCount is returned when asked for fewer than zero symbols.
	ErrNegativeCount = errors.New("negative symbol count")
	// ErrMalformed means the string is not "0x" plus two alphabet characters.
	ErrMalformed = errors.New("malformed symbol")
	// ErrSelfPair means both characters after the prefix are the same.
	ErrSelfPair = errors.New("symbol repeats its character")
)

// Symbol is "0x" followed by two distinct characters from Alphabet.
type Symbol string

// Parse validates s and returns it as a Symbol.
func Parse(s string) (Symbol, error) {
	if len(s) != symbolLen || !strings.HasPrefix(s, Prefix) {
		return "", fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	c1, c2 := s[2], s[3]
	if strings.IndexByte(Alphabet, c1) < 0 || strings.IndexByte(Alphabet, c2) < 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if c1 == c2 {
		return "", fmt.Errorf("%w: %q", ErrSelfPair, s)
	}
	return Symbol(s), nil
}

// Pair returns the two characters after the prefix.
func (s Symbol) Pair() (byte, byte) {
	if len(s) != symbolLen {
		return 0, 0
	}
	return s[2], s[3]
}

// Valid reports whether s satisfies the format and no-self-pair rules.
func (s Symbol) Valid() bool {
	_, err := Parse(string(s))
	return err == nil
}

func (s Symbol) String() string {
	return string(s)
}

func newSymbol(c1, c2 byte) Symbol {
	return Symbol([]byte{Prefix[0], Prefix[1], c1, c2})
}
