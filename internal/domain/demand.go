package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// HistoricalDemand maps a year label ("2022") to observed demand for that
// year. Keys need not be contiguous; they are ordered by integer value when a
// chronological series is needed.
type HistoricalDemand map[string]float64

// ParseHistoricalDemand normalizes raw series data at the system boundary.
// The catalog may hold the series as a JSON object, a JSON-encoded string, or
// garbage; anything that does not decode to a {label: number} object becomes
// an empty map so downstream algorithms degrade instead of failing.
func ParseHistoricalDemand(raw []byte) HistoricalDemand {
	if len(raw) == 0 {
		return HistoricalDemand{}
	}

	var direct map[string]float64
	if err := json.Unmarshal(raw, &direct); err == nil {
		return normalizeDemand(direct)
	}

	// Some importers double-encode the mapping as a JSON string.
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		var nested map[string]float64
		if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
			return normalizeDemand(nested)
		}
	}

	return HistoricalDemand{}
}

func normalizeDemand(m map[string]float64) HistoricalDemand {
	out := make(HistoricalDemand, len(m))
	for label, v := range m {
		if _, err := strconv.Atoi(label); err != nil {
			continue
		}
		out[label] = v
	}
	return out
}

// UnmarshalJSON keeps API payloads tolerant the same way the storage path is.
func (h *HistoricalDemand) UnmarshalJSON(data []byte) error {
	*h = ParseHistoricalDemand(data)
	return nil
}

// Value implements driver.Valuer so the series round-trips through a JSONB column.
func (h HistoricalDemand) Value() (driver.Value, error) {
	if h == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]float64(h))
}

// Scan implements sql.Scanner, normalizing whatever the column holds.
func (h *HistoricalDemand) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = HistoricalDemand{}
	case []byte:
		*h = ParseHistoricalDemand(v)
	case string:
		*h = ParseHistoricalDemand([]byte(v))
	default:
		return fmt.Errorf("unsupported historical_demand type %T", src)
	}
	return nil
}

// SortedSeries returns the demand values ordered chronologically along with
// the matching integer years.
func (h HistoricalDemand) SortedSeries() (years []int, values []float64) {
	years = make([]int, 0, len(h))
	for label := range h {
		y, err := strconv.Atoi(label)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)

	values = make([]float64, len(years))
	for i, y := range years {
		values[i] = h[strconv.Itoa(y)]
	}
	return years, values
}

// LastValue returns the most recent observation, or 0 for an empty series.
func (h HistoricalDemand) LastValue() float64 {
	years, values := h.SortedSeries()
	if len(years) == 0 {
		return 0
	}
	return values[len(values)-1]
}
