package amountConverter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		codec *Codec
		in    string
		want  string
	}{
		{"quote fraction", Quote, "1.5", "1500000000"},
		{"quote whole", Quote, "100", "100000000000"},
		{"quote smallest unit", Quote, "0.000000001", "1"},
		{"native", Native, "2", "2000000000000000000"},
		{"trimmed", Quote, "  3 ", "3000000000"},
		{"negative", Quote, "-1", "-1000000000"},
		{"zero", Quote, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.codec.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Quote.Parse("0.0000000001")
	require.ErrorIs(t, err, ErrTooPrecise)

	_, err = Quote.Parse("abc")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Quote.Parse("")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.5", Quote.Format(big.NewInt(1_500_000_000)))
	assert.Equal(t, "0.000000001", Quote.Format(big.NewInt(1)))
	assert.Equal(t, "0", Quote.Format(nil))
	assert.Equal(t, "12", New(0).Format(big.NewInt(12)))
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"1.5", "0.25", "42", "0.000000001"} {
		units, err := Quote.Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, Quote.Format(units))
	}
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber("1.5"))
	assert.True(t, IsNumber("-2"))
	assert.False(t, IsNumber("1,5"))
	assert.False(t, IsNumber(""))

	assert.True(t, IsInteger("250"))
	assert.False(t, IsInteger("2.5"))
	assert.False(t, IsInteger("x"))
}
