package cli

import "tqc/internal/config"

// Flags holds command-line flags
type Flags struct {
	Host            string
	AccessToken     string
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

// Apply copies the flags that override loaded configuration into cfg.
// Zero processors keeps the configured worker count.
func (f *Flags) Apply(cfg *config.Config) {
	cfg.Flags = f.ToConfigFlags()
	if f.Processors > 0 {
		cfg.Processors = f.Processors
	}
	cfg.Flags.Processors = cfg.Processors
	if f.Host != "" {
		cfg.Host = f.Host
	}
	if f.AccessToken != "" {
		cfg.AccessToken = f.AccessToken
	}
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:      f.Processors,
		NameFilter:      f.NameFilter,
		EvidenceDir:     f.EvidenceDir,
		PlanID:          f.PlanID,
		MilestoneID:     f.MilestoneID,
		RunName:         f.RunName,
		CreateManualRun: f.CreateManualRun,
		Verbose:         f.Verbose,
		DryRun:          f.DryRun,
		Record:          f.Record,
		Format:          f.Format,
		Save:            f.Save,
		Limit:           f.Limit,
	}
}
