// Package main is the entry point for salescope.
package main

import (
	"fmt"
	"os"

	"github.com/salescope/salescope/internal/cli"

	// Register reports
	_ "github.com/salescope/salescope/internal/reports/agespending"
	_ "github.com/salescope/salescope/internal/reports/ageproducts"
	_ "github.com/salescope/salescope/internal/reports/productrank"
	_ "github.com/salescope/salescope/internal/reports/yearlycategory"
	_ "github.com/salescope/salescope/internal/reports/yearlyproduct"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
