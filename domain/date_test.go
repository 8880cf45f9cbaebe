package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		a, b Date
		want int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-02-28", "2024-03-01", 2},
		{"2024-01-10", "2024-01-01", -9},
		{"1500-01-01", "2000-01-01", 182621},
		{"2000-01-01", "1500-01-01", -182621},
		{"0001-01-01", "9999-12-31", 3652058},
	}
	for _, tc := range cases {
		got, err := DaysBetween(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.a, tc.b)
	}

	_, err := DaysBetween("2024-01-01", "soon")
	assert.Error(t, err)
}
