package attachment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tqc/internal/domain"
	"tqc/internal/logging"
)

const (
	// featureExt marks a directory whose files are attachments of one feature
	featureExt = ".feature"
	// caseDelimiter separates suite and case in "<suite> -- <case>.png"
	caseDelimiter = "--"
)

// ErrIndexUnavailable matches any error caused by an unreadable evidence directory
var ErrIndexUnavailable = errors.New("evidence directory unavailable")

// IndexUnavailableError is returned when the evidence root cannot be read
type IndexUnavailableError struct {
	Root string
	Err  error
}

func (e *IndexUnavailableError) Error() string {
	return fmt.Sprintf("evidence directory %s unavailable: %v", e.Root, e.Err)
}

func (e *IndexUnavailableError) Unwrap() error { return e.Err }

func (e *IndexUnavailableError) Is(target error) bool { return target == ErrIndexUnavailable }

// Index is the list of attachment candidates in walk order
type Index []domain.AttachmentCandidate

// Lookup returns the first candidate whose suite id prefixes classname and
// whose case id matches name. Earlier candidates win over better ones.
func (idx Index) Lookup(classname, name string) (domain.AttachmentCandidate, bool) {
	for _, c := range idx {
		if !strings.HasPrefix(classname, c.TestsuiteID) {
			continue
		}
		if matchesCase(c.TestcaseID, name) {
			return c, true
		}
	}
	return domain.AttachmentCandidate{}, false
}

// matchesCase compares a test name with the case part of a file name, ignoring
// the extension and the blanks around the delimiter. Either may contain the other:
// screenshot names carry suffixes like " (failed)", test names carry free text.
// This widens the "case id inside the name" rule so that "suiteA--caseOne.png"
// matches "caseOne should pass"; see the index lookup entry in DESIGN.md. A very
// short name therefore matches any key containing it, and index order decides.
func matchesCase(testcaseID, name string) bool {
	name = strings.TrimSpace(name)
	key := strings.TrimSpace(strings.TrimSuffix(testcaseID, filepath.Ext(testcaseID)))
	if name == "" || key == "" {
		return false
	}
	return strings.Contains(key, name) || strings.Contains(name, key)
}

// ParseCandidateName splits "<suite> -- <case>" into its suite and case ids.
// One separator character before the delimiter is dropped from the suite id.
func ParseCandidateName(fileName string) (testsuiteID, testcaseID string, ok bool) {
	i := strings.Index(fileName, caseDelimiter)
	if i < 0 {
		return "", "", false
	}
	testsuiteID = fileName[:i]
	if n := len(testsuiteID); n > 0 && strings.ContainsRune(" -_.", rune(testsuiteID[n-1])) {
		testsuiteID = testsuiteID[:n-1]
	}
	if testsuiteID == "" {
		return "", "", false
	}
	return testsuiteID, fileName[i+len(caseDelimiter):], true
}

// Indexer walks an evidence directory and collects attachment candidates
type Indexer struct {
	logger *zap.Logger
}

// NewIndexer creates a new Indexer
func NewIndexer(logger *zap.Logger) *Indexer {
	return &Indexer{logger: logging.OrNop(logger)}
}

// Index walks root depth-first in lexical order. Only a failure to read root
// itself is returned; unreadable subdirectories are logged and skipped.
func (ix *Indexer) Index(root string) (Index, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &IndexUnavailableError{Root: root, Err: err}
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, &IndexUnavailableError{Root: abs, Err: err}
	}

	index := Index{}
	stack := pushDirs(nil, abs, entries)
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if filepath.Ext(dir) == featureExt {
			index = append(index, ix.collect(dir)...)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			ix.logger.Warn("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		stack = pushDirs(stack, dir, entries)
	}

	ix.logger.Debug("evidence directory indexed", zap.String("root", abs), zap.Int("candidates", len(index)))
	return index, nil
}

// pushDirs pushes the subdirectories of dir in reverse so they pop in lexical order
func pushDirs(stack []string, dir string, entries []os.DirEntry) []string {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].IsDir() {
			stack = append(stack, filepath.Join(dir, entries[i].Name()))
		}
	}
	return stack
}

func (ix *Indexer) collect(dir string) []domain.AttachmentCandidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		ix.logger.Warn("skipping unreadable feature directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	var candidates []domain.AttachmentCandidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		suite, testcase, ok := ParseCandidateName(e.Name())
		if !ok {
			ix.logger.Debug("file name has no suite delimiter", zap.String("file", e.Name()))
			continue
		}
		candidates = append(candidates, domain.AttachmentCandidate{
			TestsuiteID: suite,
			TestcaseID:  testcase,
			Path:        filepath.Join(dir, e.Name()),
		})
	}
	return candidates
}
