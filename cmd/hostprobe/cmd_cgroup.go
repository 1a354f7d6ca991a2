package main

import (
	"github.com/spf13/cobra"
)

var cgroupCmd = &cobra.Command{
	Use:   "cgroup",
	Short: "Report the cgroup memory limit and usage",
	Long: `Report the memory limit the Linux cgroup imposes on this process.

The first limit file that exists and holds an integer wins. Nothing is printed
on non-Linux hosts or when no positive limit is set.

Examples:
  hostprobe cgroup
  hostprobe cgroup --total-memory 4GiB   # percentage against a given total
  hostprobe cgroup -v                    # log which files were skipped`,
	Args: cobra.NoArgs,
	RunE: runCgroup,
}

func init() {
	rootCmd.AddCommand(cgroupCmd)
}

func runCgroup(cmd *cobra.Command, _ []string) error {
	return emit(cmd, cgroupSection(cmd.Context()))
}
