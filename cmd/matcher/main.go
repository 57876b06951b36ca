// Package main provides the candidate-matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matcher",
	Short: "Candidate-job fit analysis",
	Long:  "Candidate Matcher scores how well a candidate resume fits a job description: PII-safe extraction, tool-driven fit scoring, and a hiring-manager summary with a recruiter feedback loop.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
