package attachment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tqc/internal/domain"
	"tqc/internal/execution"
	"tqc/internal/marker"
	"tqc/internal/parser"
)

func newTestResolver(workDir string) *Resolver {
	pool := execution.NewWorkerPool(2, execution.NewRunner(parser.NewJUnitParser(nil)))
	r := NewResolver(pool, NewIndexer(nil), marker.NewAttachmentExtractor(), nil)
	r.SetWorkDir(workDir)
	return r
}

func writeReport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type failingExecutor struct{ t *testing.T }

func (f failingExecutor) Execute(context.Context, []string) ([]domain.ParsedReport, time.Duration, error) {
	f.t.Fatal("executor must not be called")
	return nil, 0, nil
}

func TestResolver_NameMarker(t *testing.T) {
	evidence := t.TempDir()
	reports := t.TempDir()
	writeTree(t, evidence, "evidence/shot1.png")

	report := writeReport(t, reports, "report.xml", `<testsuite name="s">
  <testcase classname="s" name="present [ATTACHMENT|evidence/shot1.png]]"/>
  <testcase classname="s" name="absent [ATTACHMENT|evidence/shot2.png]]"/>
</testsuite>`)

	res, err := newTestResolver(reports).Resolve(context.Background(), []string{report}, evidence)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []string{filepath.Join(evidence, "evidence/shot1.png")}, res.Resolved())
	assert.Equal(t, []string{filepath.Join(evidence, "evidence/shot2.png")}, res.Unresolved())
}

func TestResolver_IndexMatch(t *testing.T) {
	evidence := t.TempDir()
	reports := t.TempDir()
	writeTree(t, evidence, "suiteA.feature/suiteA--caseOne.png")

	report := writeReport(t, reports, "report.xml", `<testsuites><testsuite name="suiteA">
  <testcase classname="suiteA" name="caseOne should pass"/>
</testsuite></testsuites>`)

	res, err := newTestResolver(reports).Resolve(context.Background(), []string{report}, evidence)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(evidence, "suiteA.feature/suiteA--caseOne.png")}, res.Resolved())
	assert.Empty(t, res.Unresolved())
}

func TestResolver_NoDuplicates(t *testing.T) {
	evidence := t.TempDir()
	reports := t.TempDir()
	writeTree(t, evidence, "suiteA.feature/suiteA--caseOne.png")

	// the same file is reachable from the name marker, the index and both streams
	content := `<testsuite name="suiteA">
  <testcase classname="suiteA" name="caseOne [[ATTACHMENT|suiteA.feature/suiteA--caseOne.png]]">
    <system-out>[[ATTACHMENT|` + filepath.Join(evidence, "suiteA.feature/suiteA--caseOne.png") + `]]</system-out>
  </testcase>
  <testcase classname="suiteA" name="caseOne again"/>
</testsuite>`
	first := writeReport(t, reports, "first.xml", content)
	second := writeReport(t, reports, "second.xml", content)

	res, err := newTestResolver(reports).Resolve(context.Background(), []string{first, second}, evidence)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(evidence, "suiteA.feature/suiteA--caseOne.png")}, res.Resolved())
	assert.Empty(t, res.Unresolved())
}

func TestResolver_OutputStreamsUseWorkDir(t *testing.T) {
	evidence := t.TempDir()
	workDir := t.TempDir()
	writeTree(t, workDir, "logs/run.log")
	// same relative path under the evidence root must not be picked
	writeTree(t, evidence, "logs/other.log")

	report := writeReport(t, workDir, "report.xml", `<testsuite name="s">
  <testcase classname="s" name="streams">
    <system-out>wrote [[ATTACHMENT|logs/run.log]]</system-out>
    <system-err>[[ATTACHMENT|logs/other.log]]</system-err>
  </testcase>
</testsuite>`)

	res, err := newTestResolver(workDir).Resolve(context.Background(), []string{report}, evidence)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(workDir, "logs/run.log")}, res.Resolved())
	assert.Equal(t, []string{filepath.Join(workDir, "logs/other.log")}, res.Unresolved())
}

func TestResolver_NoEvidenceRoot(t *testing.T) {
	r := NewResolver(failingExecutor{t: t}, NewIndexer(nil), marker.NewAttachmentExtractor(), nil)

	res, err := r.Resolve(context.Background(), []string{"whatever.xml"}, "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolver_UnreadableRootFailsBatch(t *testing.T) {
	r := NewResolver(failingExecutor{t: t}, NewIndexer(nil), marker.NewAttachmentExtractor(), nil)

	_, err := r.Resolve(context.Background(), []string{"a.xml"}, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexUnavailable))
}

func TestResolver_MalformedFileIsSkipped(t *testing.T) {
	evidence := t.TempDir()
	reports := t.TempDir()
	writeTree(t, evidence, "a.png", "b.png")

	good1 := writeReport(t, reports, "good1.xml", `<testsuite><testcase classname="x" name="[[ATTACHMENT|a.png]]"/></testsuite>`)
	broken := writeReport(t, reports, "broken.xml", `<testsuite><testcase classname="x" name="[[ATTACHMENT|c.png]]">`)
	foreign := writeReport(t, reports, "foreign.xml", `<assemblies/>`)
	good2 := writeReport(t, reports, "good2.xml", `<testsuite><testcase classname="x" name="[[ATTACHMENT|b.png]]"/></testsuite>`)

	res, err := newTestResolver(reports).Resolve(context.Background(), []string{good1, broken, foreign, good2}, evidence)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(evidence, "a.png"), filepath.Join(evidence, "b.png")}, res.Resolved())
	assert.Empty(t, res.Unresolved())
	require.Len(t, res.FileErrors(), 1)
	assert.Equal(t, broken, res.FileErrors()[0].Path)
}

func TestLocateRoot(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "results-1", "screens"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "results-2", "screens"), 0755))

	t.Run("plain path", func(t *testing.T) {
		root, err := LocateRoot(base)
		require.NoError(t, err)
		assert.Equal(t, base, root)
	})

	t.Run("glob picks first match", func(t *testing.T) {
		root, err := LocateRoot(filepath.Join(base, "results-*", "screens"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "results-1", "screens"), root)
	})

	t.Run("glob without match", func(t *testing.T) {
		_, err := LocateRoot(filepath.Join(base, "nothing-*"))
		assert.True(t, errors.Is(err, ErrIndexUnavailable))
	})
}
