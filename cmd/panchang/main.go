// Command panchang computes almanacs and manages saved locations from the
// command line, sharing the server's database and configuration.
//
// Usage:
//
//	panchang calc --date 2024-01-07 --location ujjain
//	panchang calc --lat 40.71 --lon -74.01 --tz America/New_York --json
//	panchang range --start 2024-01-01 --end 2024-01-07
//	panchang locations import data/locations.yaml
//	panchang locations list
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
