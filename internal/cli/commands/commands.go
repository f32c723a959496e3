package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tqc/internal/attachment"
	"tqc/internal/cli"
	"tqc/internal/config"
	"tqc/internal/discovery"
	"tqc/internal/execution"
	"tqc/internal/history"
	"tqc/internal/logging"
	"tqc/internal/marker"
	"tqc/internal/parser"
	"tqc/internal/storage"
	"tqc/internal/ui"
	"tqc/internal/upload"
)

// Uploader sends a test run to the test management host
type Uploader interface {
	Upload(ctx context.Context, req upload.Request) (any, error)
}

// Deps are the collaborators shared by all commands. They need the logger,
// which depends on --verbose, so they are built once flags are parsed.
type Deps struct {
	Logger    *zap.Logger
	Scanner   *discovery.Scanner
	Filter    *discovery.Filter
	Pool      *execution.WorkerPool
	Resolver  *attachment.Resolver
	Storage   storage.Storage
	Formatter *ui.Formatter
	Viewer    ui.Viewer
	Uploader  Uploader
	// OpenHistory connects to the batch ledger
	OpenHistory func(ctx context.Context) (history.Recorder, error)
}

// NewDeps wires the default implementations for cfg. Command output goes to out.
func NewDeps(cfg *config.Config, logger *zap.Logger, out io.Writer) *Deps {
	logger = logging.OrNop(logger)

	junitParser := parser.NewJUnitParser(logger)
	pool := execution.NewWorkerPool(cfg.Processors, execution.NewRunner(junitParser))
	resolver := attachment.NewResolver(pool, attachment.NewIndexer(logger), marker.NewAttachmentExtractor(), logger)

	return &Deps{
		Logger:    logger,
		Scanner:   discovery.NewScanner(cfg.PathsToIgnore),
		Filter:    discovery.NewFilter(),
		Pool:      pool,
		Resolver:  resolver,
		Storage:   storage.NewJSONStorage(cfg),
		Formatter: ui.NewFormatter(out),
		Viewer:    ui.NewAttachmentViewer(),
		Uploader:  upload.NewClient(cfg.Host, cfg.AccessToken, logger),
		OpenHistory: func(ctx context.Context) (history.Recorder, error) {
			recorder, err := history.Open(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return recorder, nil
		},
	}
}

// Commands holds all CLI commands
type Commands struct {
	config *config.Config
	deps   *Deps

	Resolve     *ResolveCommand
	Upload      *UploadCommand
	Attachments *AttachmentsCommand
	History     *HistoryCommand
}

// NewCommands creates all commands. They share one Deps value, filled in by
// the root command's pre-run hook.
func NewCommands(cfg *config.Config) *Commands {
	deps := &Deps{}
	return &Commands{
		config:      cfg,
		deps:        deps,
		Resolve:     NewResolveCommand(cfg, deps),
		Upload:      NewUploadCommand(cfg, deps),
		Attachments: NewAttachmentsCommand(deps),
		History:     NewHistoryCommand(cfg, deps),
	}
}

// SetDeps replaces the shared collaborators
func (c *Commands) SetDeps(deps *Deps) {
	*c.deps = *deps
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	cfg := c.config

	rootCmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Print debug logs and the upload form fields")
	rootCmd.PersistentFlags().StringVar(&flags.Host, "host", "", "Test management API host")
	rootCmd.PersistentFlags().StringVar(&flags.AccessToken, "access_token", "", "Access token sent as bearer token")
	rootCmd.PersistentFlags().BoolVar(&flags.Save, "save", false, "Save host and access token into "+config.DefaultEnvFile)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		flags.Apply(cfg)

		logger, err := logging.New(cfg.Flags.Verbose)
		if err != nil {
			return err
		}

		if cfg.Flags.Save {
			if err := cfg.Save(config.DefaultEnvFile); err != nil {
				return err
			}
			logger.Info("configuration saved", zap.String("file", config.DefaultEnvFile))
		}

		// Keep dependencies set through SetDeps
		if c.deps.Resolver == nil {
			c.SetDeps(NewDeps(cfg, logger, cmd.OutOrStdout()))
		}
		return nil
	}

	addReportFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&flags.EvidenceDir, "run_result_output_dir", "", "Directory (or glob) holding the run's attachments")
		cmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of report parsing workers (0 = use "+config.EnvProcessors+" or the default)")
		cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only keep reports whose file name matches (supports wildcards, e.g. '*chrome*.xml')")
		cmd.Flags().BoolVar(&flags.Record, "record", false, "Record the batch in the MySQL history ledger")
	}

	// Resolve command
	resolveCmd := &cobra.Command{
		Use:   "resolve <xmlfiles...>",
		Short: "Resolve the attachments referenced by JUnit reports",
		Long:  "Parse JUnit/XUnit reports, match every test case against the evidence directory and print the attachments found",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Resolve.Execute,
	}
	addReportFlags(resolveCmd)
	resolveCmd.Flags().StringVar(&flags.Format, "format", ui.FormatText, "Output format: text, json or yaml")
	_ = resolveCmd.MarkFlagRequired("run_result_output_dir")
	rootCmd.AddCommand(resolveCmd)

	// Upload command
	uploadCmd := &cobra.Command{
		Use:   "upload_test_run <xmlfiles...>",
		Short: "Upload JUnit reports and their attachments to a test plan",
		Long:  "Upload JUnit/XUnit reports to a test plan, together with the attachments resolved from --run_result_output_dir",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Upload.Execute,
	}
	addReportFlags(uploadCmd)
	uploadCmd.Flags().IntVar(&flags.PlanID, "plan_id", 0, "Test plan the run is created in")
	uploadCmd.Flags().IntVar(&flags.MilestoneID, "milestone_id", 0, "Milestone of the run")
	uploadCmd.Flags().StringVar(&flags.RunName, "run_name", "", "Name of the created run")
	uploadCmd.Flags().BoolVar(&flags.CreateManualRun, "create_manual_run", false, "Also create a manual run")
	uploadCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Resolve attachments and print the form without uploading")
	rootCmd.AddCommand(uploadCmd)

	// Attachments command
	attachmentsCmd := &cobra.Command{
		Use:   "attachments",
		Short: "Browse the attachments of the last batch interactively",
		Long:  "Display the resolved and unresolved attachments of the last batch in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Attachments.Execute,
	}
	rootCmd.AddCommand(attachmentsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded batches",
		Long:  "List the most recent batches from the MySQL history ledger (DB_* variables)",
		Args:  cobra.NoArgs,
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Number of batches to list")
	rootCmd.AddCommand(historyCmd)
}

func requireHistory(cfg *config.Config) error {
	if !cfg.HistoryEnabled() {
		return fmt.Errorf("history database is not configured (set DB_DATABASE)")
	}
	return nil
}
