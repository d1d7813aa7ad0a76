package cli

import (
	"goal-stock/models"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		in      string
		want    models.RowEntry
		wantErr bool
	}{
		{in: "AAPL:2024-01-02", want: models.RowEntry{Ticker: "AAPL", Date: "2024-01-02"}},
		{in: " msft : 2024-02-01 ", want: models.RowEntry{Ticker: "msft", Date: "2024-02-01"}},
		{in: "AAPL", wantErr: true},
		{in: ":2024-01-02", wantErr: true},
		{in: "AAPL:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRow(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTarget(t *testing.T) {
	got, err := parseTarget("12.5%")
	require.NoError(t, err)
	assert.Equal(t, "12.5", got.String())

	_, err = parseTarget("ten")
	assert.Error(t, err)
	_, err = parseTarget("0")
	assert.Error(t, err)
}

func TestReadUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte("Ticker,BuyDate\n"), 0644))

	up, err := readUpload(path)
	require.NoError(t, err)
	assert.Equal(t, "trades.csv", up.Filename)
	assert.Equal(t, "Ticker,BuyDate\n", string(up.Data))

	_, err = readUpload(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
