package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiprice/backend-go/internal/storage"
)

func TestLatestCSVKey(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	key, err := latestCSVKey([]storage.ObjectInfo{
		{Key: "exports/products-2026-01.csv", LastModified: base},
		{Key: "exports/products-2026-02.CSV", LastModified: base.AddDate(0, 1, 0)},
		{Key: "exports/readme.txt", LastModified: base.AddDate(0, 2, 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, "exports/products-2026-02.CSV", key)

	_, err = latestCSVKey([]storage.ObjectInfo{{Key: "exports/readme.txt"}})
	assert.Error(t, err)

	_, err = latestCSVKey(nil)
	assert.Error(t, err)
}

func TestParseDemandField(t *testing.T) {
	demand, err := parseDemandField("{'2022': 100, '2023': 120}")
	require.NoError(t, err)
	assert.Equal(t, 100.0, demand["2022"])
	assert.Equal(t, 120.0, demand["2023"])

	demand, err = parseDemandField("")
	require.NoError(t, err)
	assert.Empty(t, demand)

	_, err = parseDemandField("{broken: value}")
	assert.Error(t, err)
}
