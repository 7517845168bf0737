package ranking

import (
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/shopspring/decimal"
)

// DefaultCoinMultiplier is the per-round coin bonus used by the league unless
// configured otherwise.
const DefaultCoinMultiplier = 105

// CoinConverter derives the gamified "coins" metric from a money score and
// the number of rounds played: round((score/100 + rounds*multiplier) * 100).
// The multiplier is a tunable league economy constant, not a law.
type CoinConverter struct {
	multiplier decimal.Decimal
}

// NewCoinConverter builds a converter with the given per-round multiplier.
func NewCoinConverter(multiplier float64) *CoinConverter {
	return &CoinConverter{multiplier: decimal.NewFromFloat(multiplier)}
}

// Coins is pure: no I/O, exact decimal arithmetic.
func (c *CoinConverter) Coins(score money.Cents, rounds int) int64 {
	units := decimal.New(int64(score), -2)
	bonus := c.multiplier.Mul(decimal.NewFromInt(int64(rounds)))
	return units.Add(bonus).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
