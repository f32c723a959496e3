package commands

import (
	"github.com/spf13/cobra"

	"tqc/internal/config"
	"tqc/internal/domain"
)

// ResolveCommand handles the resolve command
type ResolveCommand struct {
	config *config.Config
	deps   *Deps
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(cfg *config.Config, deps *Deps) *ResolveCommand {
	return &ResolveCommand{
		config: cfg,
		deps:   deps,
	}
}

// Execute runs the command
func (rc *ResolveCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	files, res, err := collectReports(ctx, rc.config, rc.deps, args)
	if err != nil {
		return err
	}

	report := domain.NewBatchReport(files, rc.config.GetEvidenceRoot(), res)
	if err := saveBatch(ctx, rc.config, rc.deps, report); err != nil {
		return err
	}

	return rc.deps.Formatter.PrintReport(report, rc.config.Flags.Format)
}
