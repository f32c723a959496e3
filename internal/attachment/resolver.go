package attachment

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"tqc/internal/domain"
	"tqc/internal/execution"
	"tqc/internal/logging"
	"tqc/internal/marker"
)

// Resolver cross-references test reports with an evidence directory
type Resolver struct {
	executor  execution.Executor
	indexer   *Indexer
	extractor marker.Extractor
	logger    *zap.Logger
	workDir   string
}

// NewResolver creates a new Resolver. Output-stream markers are resolved
// against the process working directory.
func NewResolver(executor execution.Executor, indexer *Indexer, extractor marker.Extractor, logger *zap.Logger) *Resolver {
	return &Resolver{
		executor:  executor,
		indexer:   indexer,
		extractor: extractor,
		logger:    logging.OrNop(logger),
	}
}

// SetWorkDir overrides the directory system-out/system-err markers are resolved against
func (r *Resolver) SetWorkDir(dir string) {
	r.workDir = dir
}

// Resolve collects the attachments referenced by xmlFiles. Without an
// evidence root nothing is done and a nil resolution is returned. Only an
// unreadable evidence root fails the batch; broken report files are recorded
// in the resolution and skipped.
func (r *Resolver) Resolve(ctx context.Context, xmlFiles []string, evidenceRoot string) (*domain.AttachmentResolution, error) {
	if evidenceRoot == "" {
		return nil, nil
	}

	root, err := LocateRoot(evidenceRoot)
	if err != nil {
		return nil, err
	}

	index, err := r.indexer.Index(root)
	if err != nil {
		return nil, err
	}

	reports, _, err := r.executor.Execute(ctx, xmlFiles)
	if err != nil {
		return nil, err
	}

	res := domain.NewAttachmentResolution()
	for _, report := range reports {
		if report.Err != nil {
			r.logger.Warn("skipping report", zap.String("path", report.Path), zap.Error(report.Err))
			res.AddFileError(report.Path, report.Err)
			continue
		}
		r.ResolveRecords(res, report.Records, root, index)
	}
	return res, nil
}

// ResolveRecords runs the marker and index strategies for every record and
// adds the results to res.
func (r *Resolver) ResolveRecords(res *domain.AttachmentResolution, records []domain.TestCaseRecord, root string, index Index) {
	for _, rec := range records {
		if p, ok := r.extractor.Extract(rec.Name); ok {
			r.classify(res, resolvePath(root, p))
		}

		if c, ok := index.Lookup(rec.Classname, rec.Name); ok {
			res.AddResolved(c.Path)
		}

		for _, stream := range []string{rec.SystemOut, rec.SystemErr} {
			if p, ok := r.extractor.Extract(stream); ok {
				r.classify(res, resolvePath(r.workDir, p))
			}
		}
	}
}

func (r *Resolver) classify(res *domain.AttachmentResolution, path string) {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		res.AddResolved(path)
		return
	}
	r.logger.Debug("attachment not found", zap.String("path", path))
	res.AddUnresolved(path)
}

// resolvePath makes p absolute against base. Absolute markers are kept;
// an empty base means the process working directory.
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if base == "" {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// LocateRoot turns the evidence root argument into an absolute directory.
// A glob pattern selects its first match.
func LocateRoot(pattern string) (string, error) {
	root := pattern
	if strings.ContainsAny(pattern, "*?[{") {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return "", &IndexUnavailableError{Root: pattern, Err: err}
		}
		if len(matches) == 0 {
			return "", &IndexUnavailableError{Root: pattern, Err: fs.ErrNotExist}
		}
		root = matches[0]
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &IndexUnavailableError{Root: root, Err: err}
	}
	return abs, nil
}
