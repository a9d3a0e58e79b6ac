package amountConverter

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTooPrecise    = errors.New("too many decimal places")
)

// Codec converts between human decimal text and integer base units at a fixed scale.
type Codec struct {
	scale int32
}

var (
	Quote  = New(9)
	Native = New(18)
)

func New(scale int32) *Codec {
	return &Codec{scale: scale}
}

// Parse turns "1.5" into 1500000000 for scale 9. Negative amounts are accepted here,
// callers that need a positive amount check it themselves.
func (c *Codec) Parse(text string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	shifted := d.Shift(c.scale)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d", ErrTooPrecise, text, c.scale)
	}

	return shifted.BigInt(), nil
}

func (c *Codec) Format(units *big.Int) string {
	if units == nil {
		return "0"
	}
	return decimal.NewFromBigInt(units, -c.scale).String()
}

func IsNumber(text string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(text))
	return err == nil
}

func IsInteger(text string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	return err == nil
}
