package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day int) time.Time {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
}

func TestForDays(t *testing.T) {
	cases := []struct {
		name         string
		unitPrice    float64
		days         int
		wantDays     int
		wantBase     float64
		wantDiscount float64
		wantFinal    float64
	}{
		{"one day no discount", 1000, 1, 1, 1000, 0, 1000},
		{"two days no discount", 1000, 2, 2, 2000, 0, 2000},
		{"threshold day earns discount", 1000, 3, 3, 3000, 0.15, 2550},
		{"long rental keeps discount", 500, 10, 10, 5000, 0.15, 4250},
		{"zero days clamps to one", 1000, 0, 1, 1000, 0, 1000},
		{"negative days clamps to one", 1000, -5, 1, 1000, 0, 1000},
		{"free item", 0, 4, 4, 0, 0.15, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ForDays(tc.unitPrice, tc.days)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDays, q.Days)
			assert.Equal(t, tc.unitPrice, q.UnitPrice)
			assert.InDelta(t, tc.wantBase, q.BaseTotal, 1e-9)
			assert.Equal(t, tc.wantDiscount, q.DiscountRate)
			assert.InDelta(t, tc.wantFinal, q.FinalTotal, 1e-9)
		})
	}

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := ForDays(-1, 2)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})
}

func TestForDates(t *testing.T) {
	t.Run("same instant bills one day", func(t *testing.T) {
		q, err := ForDates(1000, date(1), date(1))
		require.NoError(t, err)
		assert.Equal(t, 1, q.Days)
		assert.InDelta(t, 1000, q.FinalTotal, 1e-9)
	})

	t.Run("two calendar days", func(t *testing.T) {
		q, err := ForDates(1000, date(1), date(3))
		require.NoError(t, err)
		assert.Equal(t, 2, q.Days)
		assert.InDelta(t, 2000, q.FinalTotal, 1e-9)
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		ret := date(2).Add(6 * time.Hour)
		q, err := ForDates(1000, date(1), ret)
		require.NoError(t, err)
		assert.Equal(t, 2, q.Days)
	})

	t.Run("inverted range uses absolute span", func(t *testing.T) {
		q, err := ForDates(1000, date(4), date(1))
		require.NoError(t, err)
		assert.Equal(t, 3, q.Days)
		assert.InDelta(t, 2550, q.FinalTotal, 1e-9)
	})

	t.Run("zero dates rejected", func(t *testing.T) {
		_, err := ForDates(1000, time.Time{}, date(1))
		assert.ErrorIs(t, err, ErrInvalidDates)

		_, err = ForDates(1000, date(1), time.Time{})
		assert.ErrorIs(t, err, ErrInvalidDates)
	})
}

func TestRoundingPolicies(t *testing.T) {
	// 999 * 3 = 2997, minus 15% = 2547.45.
	q, err := ForDays(999, 3)
	require.NoError(t, err)

	assert.Equal(t, 2547.0, q.FloorTotal())
	assert.Equal(t, 2547.45, q.PreciseTotal())
}
