package config

const (
	// DefaultHost is the test management API the reports are uploaded to
	DefaultHost = "https://api.testquality.com/api"
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultEnvFile is the env file read at startup and written by --save
	DefaultEnvFile = ".env"
	// DefaultStorageFile is the file name of the last batch report
	DefaultStorageFile = "last-batch.json"
	// DefaultStorageDir is the default output directory
	DefaultStorageDir = ".tqc"
	// DefaultProcessors is the default number of report parsing workers
	DefaultProcessors = 4
	// DefaultHistoryTable is the MySQL table of the batch ledger
	DefaultHistoryTable = "tqc_batches"
)

// DefaultPathsToIgnore are the directories skipped when globbing for reports
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	".git",
}
