package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachmentsCommand handles the attachments command
type AttachmentsCommand struct {
	deps *Deps
}

// NewAttachmentsCommand creates a new AttachmentsCommand
func NewAttachmentsCommand(deps *Deps) *AttachmentsCommand {
	return &AttachmentsCommand{deps: deps}
}

// Execute runs the command
func (ac *AttachmentsCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := ac.deps.Storage.Load()
	if err != nil {
		return fmt.Errorf("no batch to show, run resolve or upload_test_run first: %w", err)
	}
	return ac.deps.Viewer.View(report)
}
