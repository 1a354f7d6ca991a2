package main

import (
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Report OS, runtime, user, host and hardware facts",
	Args:  cobra.NoArgs,
	RunE:  runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, _ []string) error {
	return emit(cmd, environmentSection(cmd.Context()))
}
