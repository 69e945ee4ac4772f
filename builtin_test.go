package esfaker

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_AllGeneratorsProduceValues(t *testing.T) {
	reg := DefaultRegistry()
	require.NotZero(t, reg.Len())

	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			v, err := reg.Invoke(name)
			require.NoError(t, err)
			if v.Kind() == KindString {
				assert.NotEmpty(t, v.String())
			}
		})
	}
}

func TestDefaultRegistry_IncludesCoreGenerators(t *testing.T) {
	names := DefaultRegistry().Names()
	for _, want := range []string{"Now", "DateRange", "Hash", "Boolean", "Name", "IPv4", "CompanyName", "FilePath", "CityName"} {
		assert.Contains(t, names, want)
	}
}

func TestDateRange(t *testing.T) {
	start := time.Now().Add(-time.Second)

	tests := map[string]struct {
		args   Args
		window time.Duration
	}{
		"default":    {args: nil, window: 24 * time.Hour},
		"thirty":     {args: Args{30}, window: 30 * 24 * time.Hour},
		"unparsable": {args: Args{"lots"}, window: 24 * time.Hour},
		"negative":   {args: Args{-5}, window: 24 * time.Hour},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got, err := time.Parse(TimeFormat, dateRange(tc.args).String())
				require.NoError(t, err)
				assert.False(t, got.After(time.Now()), "timestamp in the future: %s", got)
				assert.True(t, got.After(start.Add(-tc.window)), "timestamp outside window: %s", got)
			}
		})
	}
}

func TestDateRange_LargeWindow(t *testing.T) {
	for _, days := range []int64{200_000, math.MaxInt64} {
		earliest := time.Now().UTC().AddDate(0, 0, -maxDateRangeDays-1)
		for i := 0; i < 200; i++ {
			got, err := time.Parse(TimeFormat, dateRange(Args{days}).String())
			require.NoError(t, err)
			assert.False(t, got.After(time.Now()), "timestamp in the future: %s", got)
			assert.True(t, got.After(earliest), "timestamp outside window: %s", got)
		}
	}
}

func TestBoolean_Ratio(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, false, boolean(Args{0}).Raw())
		assert.Equal(t, false, boolean(Args{-3}).Raw())
		assert.Equal(t, true, boolean(Args{255}).Raw())
		assert.Equal(t, true, boolean(Args{500}).Raw())
	}
	assert.Equal(t, KindBool, boolean(nil).Kind())
}

func TestBoolean_Probability(t *testing.T) {
	const draws = 20_000

	tests := map[string]struct {
		args Args
		want float64
	}{
		"default": {args: nil, want: 128.0 / 255},
		"200":     {args: Args{200}, want: 200.0 / 255},
		"51":      {args: Args{51}, want: 51.0 / 255},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			trues := 0
			for i := 0; i < draws; i++ {
				if boolean(tc.args).Raw().(bool) {
					trues++
				}
			}
			assert.InDelta(t, tc.want, float64(trues)/draws, 0.03)
		})
	}
}

func TestNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := number(Args{5, 7}).Raw().(int64)
		assert.GreaterOrEqual(t, n, int64(5))
		assert.LessOrEqual(t, n, int64(7))

		n = number(Args{7, 5}).Raw().(int64)
		assert.GreaterOrEqual(t, n, int64(5))
		assert.LessOrEqual(t, n, int64(7))
	}
}

func TestNumber_ExtremeBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.NotPanics(t, func() { number(Args{int64(math.MinInt64), int64(math.MaxInt64)}) })

		n := number(Args{int64(math.MaxInt64 - 1), int64(math.MaxInt64)}).Raw().(int64)
		assert.GreaterOrEqual(t, n, int64(math.MaxInt64-1))

		n = number(Args{int64(math.MinInt64), int64(math.MinInt64 + 1)}).Raw().(int64)
		assert.LessOrEqual(t, n, int64(math.MinInt64+1))

		n = number(Args{int64(-10), int64(math.MaxInt64)}).Raw().(int64)
		assert.GreaterOrEqual(t, n, int64(-10))
	}
}

func TestHash(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{16}$`)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		h := hash()
		assert.Regexp(t, pattern, h)
		seen[h] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestNow(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	v, err := DefaultRegistry().Invoke("Now")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:30:00+0000", v.String())
}
