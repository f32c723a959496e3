package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tqc/internal/config"
	"tqc/internal/domain"
	"tqc/internal/ui"
	"tqc/internal/upload"
)

// collectReports expands the report patterns and, when an evidence
// directory is configured, resolves the attachments the reports reference.
// The resolution is nil without an evidence directory.
func collectReports(ctx context.Context, cfg *config.Config, deps *Deps, patterns []string) ([]string, *domain.AttachmentResolution, error) {
	files, err := deps.Scanner.Scan(patterns...)
	if err != nil {
		return nil, nil, err
	}
	files = deps.Filter.FilterByName(files, cfg.Flags.NameFilter)
	if len(files) == 0 {
		return nil, nil, upload.ErrNoFiles
	}
	deps.Logger.Debug("reports found", zap.Int("count", len(files)))

	root := cfg.GetEvidenceRoot()
	if root == "" {
		return files, nil, nil
	}

	deps.Pool.SetProgress(ui.NewProgressBar(len(files)))
	res, err := deps.Resolver.Resolve(ctx, files, root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve attachments: %w", err)
	}
	return files, res, nil
}

// saveBatch persists the report for the attachments viewer and, with
// --record, appends it to the history ledger.
func saveBatch(ctx context.Context, cfg *config.Config, deps *Deps, report *domain.BatchReport) error {
	if err := deps.Storage.Save(report); err != nil {
		return fmt.Errorf("failed to save batch report: %w", err)
	}

	if !cfg.Flags.Record {
		return nil
	}
	if err := requireHistory(cfg); err != nil {
		return err
	}
	recorder, err := deps.OpenHistory(ctx)
	if err != nil {
		return err
	}
	defer recorder.Close()

	if err := recorder.Record(ctx, report); err != nil {
		return err
	}
	deps.Logger.Debug("batch recorded", zap.String("id", report.ID))
	return nil
}

// warnUnresolved prints the markers that point at missing files
func warnUnresolved(res *domain.AttachmentResolution) {
	if res == nil {
		return
	}
	for _, p := range res.Unresolved() {
		color.Yellow("Attachment not found: %s", p)
	}
	for _, fe := range res.FileErrors() {
		color.Red("Skipped report %s: %s", fe.Path, fe.Message)
	}
}
