// Package main provides the entry point for the portfolio API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_api",
	Short: "Portfolio site HTTP API server",
	Long:  "Portfolio API serves job-fit assessments and visitor chat for a personal portfolio site, grounded in the owner profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
