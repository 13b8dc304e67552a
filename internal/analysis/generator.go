// File: internal/analysis/generator.go
package analysis

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// Generator synthesizes passwords from a CharacterPool using crypto/rand.
// Predictable output here is a direct security defect, so math/rand never
// appears in this package.
type Generator struct {
	log *zap.Logger
}

// NewGenerator creates a Generator with a named sub-logger.
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{log: logger.Named("generator")}
}

// Generate builds the pool for opts and draws one password. The only
// expected failure is ErrInvalidOptions from pool construction; a randomness
// source error is surfaced as-is and means the platform is in trouble.
func (g *Generator) Generate(opts schemas.GeneratorOptions) (*schemas.GeneratedPassword, error) {
	pool, err := BuildPool(opts)
	if err != nil {
		return nil, err
	}

	if pool.IsPattern() {
		return g.generatePattern(pool)
	}

	runes := make([]rune, pool.Length())
	alphabet := pool.runes
	for i := range runes {
		idx, err := randIndex(len(alphabet))
		if err != nil {
			return nil, err
		}
		runes[i] = alphabet[idx]
	}

	g.log.Debug("Generated password",
		zap.Int("length", pool.Length()),
		zap.Int("pool_size", pool.Size()),
	)

	return &schemas.GeneratedPassword{
		Password:    string(runes),
		PoolSize:    pool.Size(),
		Length:      pool.Length(),
		EntropyBits: pool.EntropyBits(),
	}, nil
}

func (g *Generator) generatePattern(pool *Pool) (*schemas.GeneratedPassword, error) {
	runes := make([]rune, 0, pool.Length())
	for _, pos := range pool.positions {
		if pos.isLiteral {
			runes = append(runes, pos.literal)
			continue
		}
		idx, err := randIndex(len(pos.class))
		if err != nil {
			return nil, err
		}
		runes = append(runes, pos.class[idx])
	}

	g.log.Debug("Generated password from pattern", zap.Int("length", pool.Length()))

	return &schemas.GeneratedPassword{
		Password: string(runes),
		// PoolSize is positional in pattern mode; 0 signals callers to rely
		// on EntropyBits instead of recomputing from a flat pool.
		PoolSize:    0,
		Length:      pool.Length(),
		EntropyBits: pool.EntropyBits(),
	}, nil
}

// randIndex draws an unbiased index in [0, n). crypto/rand.Int performs the
// rejection sampling needed to avoid modular bias.
func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("crypto random source failed: %w", err)
	}
	return int(v.Int64()), nil
}
