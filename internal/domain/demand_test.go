package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistoricalDemand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want HistoricalDemand
	}{
		{
			name: "plain object",
			raw:  `{"2022": 100, "2023": 120}`,
			want: HistoricalDemand{"2022": 100, "2023": 120},
		},
		{
			name: "double-encoded string",
			raw:  `"{\"2022\": 100, \"2023\": 120}"`,
			want: HistoricalDemand{"2022": 100, "2023": 120},
		},
		{
			name: "non-year labels dropped",
			raw:  `{"2022": 100, "total": 500}`,
			want: HistoricalDemand{"2022": 100},
		},
		{
			name: "garbage becomes empty",
			raw:  `not json at all`,
			want: HistoricalDemand{},
		},
		{
			name: "array becomes empty",
			raw:  `[1, 2, 3]`,
			want: HistoricalDemand{},
		},
		{
			name: "empty input",
			raw:  ``,
			want: HistoricalDemand{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHistoricalDemand([]byte(tt.raw)))
		})
	}
}

func TestHistoricalDemandScan(t *testing.T) {
	var h HistoricalDemand
	require.NoError(t, h.Scan([]byte(`{"2024": 140}`)))
	assert.Equal(t, HistoricalDemand{"2024": 140}, h)

	require.NoError(t, h.Scan(nil))
	assert.Empty(t, h)

	require.NoError(t, h.Scan(`{"2023": 120}`))
	assert.Equal(t, HistoricalDemand{"2023": 120}, h)

	assert.Error(t, h.Scan(42))
}

func TestHistoricalDemandValue(t *testing.T) {
	var nilDemand HistoricalDemand
	v, err := nilDemand.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)

	v, err = HistoricalDemand{"2024": 140}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024": 140}`, string(v.([]byte)))
}

func TestSortedSeries(t *testing.T) {
	h := HistoricalDemand{"2024": 140, "2022": 100, "2023": 120}

	years, values := h.SortedSeries()
	assert.Equal(t, []int{2022, 2023, 2024}, years)
	assert.Equal(t, []float64{100, 120, 140}, values)

	assert.Equal(t, 140.0, h.LastValue())
	assert.Equal(t, 0.0, HistoricalDemand{}.LastValue())
}
