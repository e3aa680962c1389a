// Package main provides the entry point for the passaudit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for passaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passaudit",
		Short: "Password risk and breach intelligence tool",
		Long: `passaudit analyzes passwords for weaknesses and breach exposure.

It scores each password against structural heuristics, matches it against an
offline breach corpus, optionally checks the Have I Been Pwned service using
the privacy-preserving k-anonymity protocol, and generates stronger
replacement candidates.

Passwords never leave the machine: the online lookup transmits only the
first 5 characters of the password's SHA-1 digest.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
