package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "flights_history.xlsx", cfg.HistoryFile)
	assert.Equal(t, "flights_chart.html", cfg.ChartFile)
	assert.Equal(t, "debug_page.html", cfg.DebugFile)
	assert.Equal(t, "2026-01-01", cfg.DefaultFlightDate)
	assert.Equal(t, []string{"div.item-inner", "div.product", "div.flight-item", "div.search-item", "div.item"},
		cfg.ListingSelectors)
}

func TestLoadConfig_SelectorOverride(t *testing.T) {
	t.Setenv("LISTING_SELECTORS", "div.new-item, div.card")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"div.new-item", "div.card"}, cfg.ListingSelectors)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("HISTORY_FILE", "other.xlsx")
	t.Setenv("SETTLE_WAIT", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "other.xlsx", cfg.HistoryFile)
	assert.Equal(t, "2s", cfg.SettleWait.String())
}
