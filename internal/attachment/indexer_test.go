package attachment

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates empty files (and their directories) below root
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("evidence"), 0644))
	}
}

func TestParseCandidateName(t *testing.T) {
	tests := []struct {
		file     string
		suite    string
		testcase string
		ok       bool
	}{
		{file: "suiteA--caseOne.png", suite: "suiteA", testcase: "caseOne.png", ok: true},
		{file: "Login -- user logs in (failed).png", suite: "Login", testcase: " user logs in (failed).png", ok: true},
		{file: "Login_--case.png", suite: "Login", testcase: "case.png", ok: true},
		{file: "a---b.png", suite: "a", testcase: "-b.png", ok: true},
		{file: "no-delimiter.png", ok: false},
		{file: "--orphan.png", ok: false},
		{file: " --orphan.png", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			suite, testcase, ok := ParseCandidateName(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.suite, suite)
			assert.Equal(t, tt.testcase, testcase)
		})
	}
}

func TestIndexer_Index(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"top-level.png",
		"b/Cart.feature/Cart -- adds item.png",
		"a/nested/Login.feature/Login -- user logs in (failed).png",
		"a/nested/Login.feature/Login -- user logs out.png",
		"a/nested/Login.feature/notes.txt",
		"a/nested/Login.feature/deeper/Login -- ignored.png",
		"a/plain/loose--file.png",
		"z.feature/Zed -- last.png",
	)

	index, err := NewIndexer(nil).Index(root)
	require.NoError(t, err)

	var paths []string
	for _, c := range index {
		rel, err := filepath.Rel(root, c.Path)
		require.NoError(t, err)
		paths = append(paths, rel)
		assert.True(t, filepath.IsAbs(c.Path))
	}

	assert.Equal(t, []string{
		"a/nested/Login.feature/Login -- user logs in (failed).png",
		"a/nested/Login.feature/Login -- user logs out.png",
		"b/Cart.feature/Cart -- adds item.png",
		"z.feature/Zed -- last.png",
	}, paths)

	assert.Equal(t, "Login", index[0].TestsuiteID)
	assert.Equal(t, " user logs in (failed).png", index[0].TestcaseID)
}

func TestIndexer_EmptyRoot(t *testing.T) {
	index, err := NewIndexer(nil).Index(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestIndexer_UnreadableRoot(t *testing.T) {
	indexer := NewIndexer(nil)

	t.Run("missing directory", func(t *testing.T) {
		_, err := indexer.Index(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexUnavailable))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("file instead of directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := indexer.Index(file)
		var target *IndexUnavailableError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, file, target.Root)
	})
}

func TestIndex_Lookup(t *testing.T) {
	index := Index{
		{TestsuiteID: "suite", TestcaseID: "caseOne.png", Path: "/e/first.png"},
		{TestsuiteID: "suiteA", TestcaseID: "caseOne.png", Path: "/e/second.png"},
		{TestsuiteID: "Login", TestcaseID: " user logs in (failed).png", Path: "/e/login.png"},
	}

	tests := []struct {
		name      string
		classname string
		testName  string
		want      string
		found     bool
	}{
		{name: "first match wins", classname: "suiteA", testName: "caseOne should pass", want: "/e/first.png", found: true},
		{name: "screenshot suffix", classname: "Login", testName: "user logs in", want: "/e/login.png", found: true},
		{name: "classname with namespace", classname: "Login.Feature", testName: "user logs in", want: "/e/login.png", found: true},
		{name: "suite mismatch", classname: "Logout", testName: "user logs in", found: false},
		{name: "case mismatch", classname: "Login", testName: "resets password", found: false},
		{name: "empty name", classname: "Login", testName: "  ", found: false},
		{name: "short name inside key", classname: "Login", testName: "logs", want: "/e/login.png", found: true},
		{name: "short name takes first key containing it", classname: "suiteA", testName: "One", want: "/e/first.png", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := index.Lookup(tt.classname, tt.testName)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got.Path)
		})
	}
}
