package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/varon/sercheck/cmd/bench"
	"github.com/varon/sercheck/cmd/check"
	"github.com/varon/sercheck/cmd/serve"
	"github.com/varon/sercheck/cmd/util"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "sercheck",
		Short: "remote serializer verification harness",
		Long: fmt.Sprintf(`sercheck (v%s)

A verification harness for pluggable serialization engines. It round-trips
values through an engine running in a separate server process, so a
defective engine can crash without taking the caller down.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sercheck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sercheck v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(check.CheckCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "codec"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("protocol codec to use for request/reply messages (json, gob)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("level at which logs will be output (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
