package performance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOverall(t *testing.T) {
	cases := []struct {
		name     string
		kpi      string
		task     string
		feedback string
		override *decimal.Decimal
		want     string
	}{
		{"mean of three", "80", "90", "100", nil, "90"},
		{"repeating decimal rounds", "80", "85", "90.5", nil, "85.17"},
		{"all zero", "0", "0", "0", nil, "0"},
		{"override wins", "10", "20", "30", func() *decimal.Decimal { v := d("77.777"); return &v }(), "77.78"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Overall(d(c.kpi), d(c.task), d(c.feedback), c.override)
			assert.True(t, d(c.want).Equal(got), "got %s, want %s", got, c.want)
		})
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(d("0")))
	assert.True(t, InRange(d("100")))
	assert.True(t, InRange(d("55.5")))
	assert.False(t, InRange(d("-0.01")))
	assert.False(t, InRange(d("100.01")))
}
