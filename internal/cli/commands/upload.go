package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tqc/internal/config"
	"tqc/internal/domain"
	"tqc/internal/upload"
)

// UploadCommand handles the upload_test_run command
type UploadCommand struct {
	config *config.Config
	deps   *Deps
}

// NewUploadCommand creates a new UploadCommand
func NewUploadCommand(cfg *config.Config, deps *Deps) *UploadCommand {
	return &UploadCommand{
		config: cfg,
		deps:   deps,
	}
}

// Execute runs the command
func (uc *UploadCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := uc.config.Flags

	if flags.PlanID <= 0 {
		return upload.ErrPlanRequired
	}

	files, res, err := collectReports(ctx, uc.config, uc.deps, args)
	if err != nil {
		return err
	}

	if res != nil {
		if resolved := res.Resolved(); len(resolved) > 0 {
			color.Cyan("Attachments: %d", len(resolved))
			for _, p := range resolved {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
			}
		}
		warnUnresolved(res)
	}

	req := upload.Request{
		PlanID:          flags.PlanID,
		MilestoneID:     flags.MilestoneID,
		RunName:         flags.RunName,
		CreateManualRun: flags.CreateManualRun,
		XMLFiles:        files,
		Resolution:      res,
	}

	if flags.Verbose || flags.DryRun {
		parts, err := upload.BuildForm(req)
		if err != nil {
			return err
		}
		for _, p := range parts {
			value := p.Value
			if p.File != "" {
				value = p.File
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.Field, value)
		}
	}

	report := domain.NewBatchReport(files, uc.config.GetEvidenceRoot(), res)
	if flags.DryRun {
		color.Yellow("Dry run, nothing uploaded")
		return saveBatch(ctx, uc.config, uc.deps, report)
	}

	resp, err := uc.deps.Uploader.Upload(ctx, req)
	if err != nil {
		return err
	}
	report.Uploaded = true

	if err := saveBatch(ctx, uc.config, uc.deps, report); err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	color.Green("Test run uploaded")
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
