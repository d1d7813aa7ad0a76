// goal-stock: trade history analysis client.
//
// Usage:
//
//	go run . edit --import trades.xlsx
//	go run . analyze --row AAPL:2024-01-02 --target 10
//	go run . serve
package main

import (
	"os"

	"goal-stock/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
