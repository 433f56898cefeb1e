package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteToUnits(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1", 1_000_000},
		{"100.00", 100_000_000},
		{"0.000001", 1},
		{"12.3456789", 12_345_678}, // extra precision truncated
		{" 5.5 ", 5_500_000},
	}
	for _, c := range cases {
		got, err := QuoteToUnits(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestQuoteToUnitsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "-1"} {
		_, err := QuoteToUnits(in)
		assert.Error(t, err, in)
	}
}

func TestUnitsToQuoteRoundTrip(t *testing.T) {
	for _, units := range []uint64{0, 1, 999_999, 1_000_000, 123_456_789} {
		got, err := QuoteToUnits(UnitsToQuote(units))
		require.NoError(t, err)
		assert.Equal(t, units, got)
	}
}

func TestStockConversions(t *testing.T) {
	units, err := StockToUnits("2.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(250_000_000), units)
	assert.Equal(t, "2.50000000", UnitsToStock(250_000_000))
	assert.Equal(t, "0.00000001", UnitsToStock(1))
}

func TestClampUnits(t *testing.T) {
	assert.Equal(t, uint64(100), ClampUnits(150, 100))
	assert.Equal(t, uint64(50), ClampUnits(50, 100))
	assert.Equal(t, uint64(100), ClampUnits(100, 100))
	assert.Equal(t, uint64(0), ClampUnits(25, 0))
}

func TestUnitsString(t *testing.T) {
	assert.Equal(t, "100000000", UnitsString(100_000_000))
	assert.Equal(t, "0", UnitsString(0))
}
