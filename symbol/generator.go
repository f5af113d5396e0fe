package symbol

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"
)

// Strategy selects how the second character is kept distinct from the first.
type Strategy string

const (
	// StrategyReject redraws the second character until it differs.
	StrategyReject Strategy = "reject"
	// StrategyExclude draws the second character from the 15 remaining ones.
	StrategyExclude Strategy = "exclude"
)

// ParseStrategy maps a config value to a Strategy. Empty means StrategyReject.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyReject:
		return StrategyReject, nil
	case StrategyExclude:
		return StrategyExclude, nil
	}
	return "", fmt.Errorf("unknown strategy %q (want %s or %s)", s, StrategyReject, StrategyExclude)
}

// Generator draws symbols from a Source. It is not safe for concurrent use
// unless the Source is.
type Generator struct {
	src      Source
	strategy Strategy
}

// NewGenerator returns a Generator over src. An empty strategy means StrategyReject.
func NewGenerator(src Source, strategy Strategy) *Generator {
	if strategy == "" {
		strategy = StrategyReject
	}
	return &Generator{src: src, strategy: strategy}
}

// Generate returns count symbols in draw order. Symbols are not deduplicated
// against each other.
func (g *Generator) Generate(ctx context.Context, count int) ([]Symbol, error) {
	if count < 0 {
		return nil, fmt.Errorf("generate %d symbols: %w", count, ErrNegativeCount)
	}
	log.WithFunc("symbol.Generate").Debugf(ctx, "generating %d symbols, strategy: %s", count, g.strategy)

	out := make([]Symbol, 0, count)
	for range count {
		i := g.src.IntN(len(Alphabet))
		j := g.second(i)
		out = append(out, newSymbol(Alphabet[i], Alphabet[j]))
	}
	return out, nil
}

// second returns an Alphabet index different from first.
func (g *Generator) second(first int) int {
	if g.strategy == StrategyExclude {
		j := g.src.IntN(len(Alphabet) - 1)
		if j >= first {
			j++
		}
		return j
	}
	for {
		if j := g.src.IntN(len(Alphabet)); j != first {
			return j
		}
	}
}
