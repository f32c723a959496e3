package commands

import (
	"github.com/spf13/cobra"

	"tqc/internal/config"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config *config.Config
	deps   *Deps
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, deps *Deps) *HistoryCommand {
	return &HistoryCommand{
		config: cfg,
		deps:   deps,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := requireHistory(hc.config); err != nil {
		return err
	}

	ctx := cmd.Context()
	recorder, err := hc.deps.OpenHistory(ctx)
	if err != nil {
		return err
	}
	defer recorder.Close()

	batches, err := recorder.Recent(ctx, hc.config.Flags.Limit)
	if err != nil {
		return err
	}
	hc.deps.Formatter.PrintHistory(batches)
	return nil
}
