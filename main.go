// Package main provides the entry point for the csv-qif CLI application.
package main

import (
	"fmt"
	"os"

	"dtarbill/csv-qif/cmd/batch"
	"dtarbill/csv-qif/cmd/columns"
	"dtarbill/csv-qif/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(columns.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
