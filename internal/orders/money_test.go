package orders

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1998, "$19.98"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-1998, "-$19.98"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, FormatCents(c.cents))
	}
}

func TestToCents_Rounds(t *testing.T) {
	require.Equal(t, int64(999), toCents(9.99))
	require.Equal(t, int64(1000), toCents(9.995))
	require.Equal(t, int64(10), toCents(0.1))
}
