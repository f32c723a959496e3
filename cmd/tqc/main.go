package main

import (
	"fmt"
	"os"

	"tqc/internal/cli"
	"tqc/internal/cli/commands"
	"tqc/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "tqc",
		Short:         "JUnit report attachment resolver and uploader",
		Long:          `Resolve the screenshots and other artifacts referenced by JUnit/XUnit reports and upload them, together with the reports, to a test plan.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Config from defaults, .env and the environment
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
