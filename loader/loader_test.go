package loader

import (
	"os"
	"testing"
)

func TestLoadTickers(t *testing.T) {
	// Create a temporary JSON file
	content := `[
		{"symbol": "AAPL", "name": "Apple Inc.", "rank": 1},
		{"symbol": "", "name": "broken entry", "rank": 99},
		{"symbol": "MSFT", "name": "Microsoft Corporation", "rank": 2}
	]`
	tmpfile, err := os.CreateTemp("", "tickers_*.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	tickers, err := LoadTickers(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadTickers failed: %v", err)
	}

	if len(tickers) != 2 {
		t.Fatalf("Expected 2 tickers, got %d", len(tickers))
	}
	if tickers[0].Symbol != "AAPL" || tickers[0].Rank != 1 {
		t.Errorf("Unexpected first ticker %+v", tickers[0])
	}
	if tickers[1].Name != "Microsoft Corporation" {
		t.Errorf("Expected Microsoft Corporation, got %s", tickers[1].Name)
	}
}

func TestLoadTickersInvalidJSON(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "tickers_*.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(`{"symbol": "AAPL"`)); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	if _, err := LoadTickers(tmpfile.Name()); err == nil {
		t.Error("Expected error for malformed tickers file")
	}
}

func TestLoadTickersMissingFile(t *testing.T) {
	if _, err := LoadTickers("does-not-exist.json"); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
