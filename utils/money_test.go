package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{1250.5, "$1.250,50"},
		{12500.5, "$12.500,50"},
		{1000000, "$1.000.000"},
		{999.99, "$999,99"},
		{89.999999, "$90"},
		{0.05, "$0,05"},
		{-1250.5, "-$1.250,50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.amount), "amount %v", tc.amount)
	}
}
