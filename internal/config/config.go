package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Environment variables understood by Load
const (
	EnvHost        = "TQ_HOST"
	EnvAccessToken = "TQ_ACCESS_TOKEN"
	EnvStorageDir  = "TQ_STORAGE_DIR"
	EnvProcessors  = "TQ_PROCESSORS"
)

// Config holds all configuration for the application
type Config struct {
	// Remote settings
	Host        string
	AccessToken string

	// Project settings
	ProjectPath string

	// Output settings
	StorageFile string
	StorageDir  string

	// Execution settings
	Processors int

	// Paths to ignore when globbing for reports
	PathsToIgnore []string

	History HistoryConfig

	// Command flags
	Flags Flags
}

// HistoryConfig is the MySQL connection of the batch ledger
type HistoryConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Table    string
}

// Flags holds command-line flags
type Flags struct {
	Processors      int
	NameFilter      string
	EvidenceDir     string
	PlanID          int
	MilestoneID     int
	RunName         string
	CreateManualRun bool
	Verbose         bool
	DryRun          bool
	Record          bool
	Format          string
	Save            bool
	Limit           int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Host:        DefaultHost,
		ProjectPath: DefaultProjectPath,
		StorageFile: DefaultStorageFile,
		StorageDir:  DefaultStorageDir,
		Processors:  DefaultProcessors,
		History: HistoryConfig{
			Host:  "127.0.0.1",
			Port:  "3306",
			User:  "root",
			Table: DefaultHistoryTable,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config from defaults, the env file at envPath (optional)
// and the process environment. Variables already set in the environment win
// over the env file.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	cfg := New()
	setString(&cfg.Host, EnvHost)
	setString(&cfg.AccessToken, EnvAccessToken)
	setString(&cfg.StorageDir, EnvStorageDir)
	if v := os.Getenv(EnvProcessors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", EnvProcessors, v)
		}
		cfg.Processors = n
		cfg.Flags.Processors = n
	}

	setString(&cfg.History.Host, "DB_HOST")
	setString(&cfg.History.Port, "DB_PORT")
	setString(&cfg.History.User, "DB_USERNAME")
	setString(&cfg.History.Password, "DB_PASSWORD")
	setString(&cfg.History.Database, "DB_DATABASE")

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Save writes host and access token into the env file at envPath, keeping
// any other variables already in it.
func (c *Config) Save(envPath string) error {
	values, err := godotenv.Read(envPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", envPath, err)
		}
		values = make(map[string]string)
	}

	values[EnvHost] = c.Host
	if c.AccessToken != "" {
		values[EnvAccessToken] = c.AccessToken
	}

	if err := godotenv.Write(values, envPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", envPath, err)
	}
	return nil
}

// GetOutputPath returns the absolute path of the last batch report, so every
// command reads and writes the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := c.StorageDir
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	p = filepath.Join(p, c.StorageFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetEvidenceRoot returns the evidence directory flag, or "" when not given
func (c *Config) GetEvidenceRoot() string {
	return c.Flags.EvidenceDir
}

// HistoryEnabled reports whether a ledger database is configured
func (c *Config) HistoryEnabled() bool {
	return c.History.Database != ""
}

// HistoryDSN returns the MySQL DSN of the batch ledger
func (c *Config) HistoryDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.History.User
	dsn.Passwd = c.History.Password
	dsn.Net = "tcp"
	dsn.Addr = c.History.Host + ":" + c.History.Port
	dsn.DBName = c.History.Database
	dsn.ParseTime = true
	return dsn.FormatDSN()
}
