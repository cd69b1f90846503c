package mods

import (
	"context"
	"jfront/common"
	"jfront/logging"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

// writeTree creates the given files (relative path to content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	for name, content := range files {
		fpath := filepath.Join(root, filepath.FromSlash(name))
		if !assert.Nil(t, os.MkdirAll(filepath.Dir(fpath), 0755)) {
			t.FailNow()
		}

		if !assert.Nil(t, os.WriteFile(fpath, []byte(content), 0644)) {
			t.FailNow()
		}
	}
}

// baseNames returns the sorted file names of a list of URLs.
func baseNames(URLs []string) []string {
	var names []string
	for _, URL := range URLs {
		names = append(names, URL[strings.LastIndex(URL, "/")+1:])
	}

	sort.Strings(names)
	return names
}

const unitDoc = "classes: [{class: A}]\n"

func TestLoadBatch(t *testing.T) {
	logging.Initialize("", "silent")

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		common.BatchFileName: `
[batch]
name = "demo-batch"
sources = ["src", "extra/One.yaml"]
classpath = ["stubs"]
max-errors = 5
log-level = "warn"
`,
		"src/A.yaml":      unitDoc,
		"src/sub/B.yml":   unitDoc,
		"src/notes.txt":   "not a unit",
		"extra/One.yaml":  unitDoc,
		"stubs/lib.yaml":  unitDoc,
		"stubs/README.md": "# stubs",
	})

	ctx := context.Background()
	fs := afs.New()

	for _, manifestPath := range []string{root, filepath.Join(root, common.BatchFileName)} {
		batch, err := LoadBatch(ctx, fs, manifestPath)
		if !assert.Nil(t, err, manifestPath) {
			continue
		}

		assert.Equal(t, "demo-batch", batch.Name)
		assert.Equal(t, 5, batch.MaxErrors)
		assert.Equal(t, "warn", batch.LogLevel)
		assert.Equal(t, []string{"A.yaml", "B.yml", "One.yaml"}, baseNames(batch.Sources))
		assert.Equal(t, []string{"lib.yaml"}, baseNames(batch.Classpath))
	}
}

func TestLoadBatch_invalid(t *testing.T) {
	logging.Initialize("", "silent")

	testData := []struct {
		manifest    string
		expectError string
	}{
		{"[other]\nname = \"x\"\n", "missing [batch] table"},
		{"[batch]\nsources = [\"src\"]\n", "missing batch name"},
		{"[batch]\nname = \"9lives\"\nsources = [\"src\"]\n", "must be a valid identifier"},
		{"[batch]\nname = \"b\"\n", "must list at least one source"},
		{"[batch]\nname = \"b\"\nsources = [\"src\"]\nmax-errors = -1\n", "cannot be negative"},
		{"[batch]\nname = \"b\"\nsources = [\"src\"]\nlog-level = \"loud\"\n", "unknown log level `loud`"},
		{"[batch]\nname = \"b\"\nsources = [\"empty\"]\n", "contains no unit documents"},
		{"[batch\nname = ", "failed to decode batch manifest"},
	}

	ctx := context.Background()
	fs := afs.New()

	for _, item := range testData {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			common.BatchFileName: item.manifest,
			"src/A.yaml":         unitDoc,
			"empty/notes.txt":    "nothing here",
		})

		batch, err := LoadBatch(ctx, fs, root)
		assert.Nil(t, batch, item.manifest)
		if assert.NotNil(t, err, item.manifest) {
			assert.Contains(t, err.Error(), item.expectError, item.manifest)
		}
	}
}

func TestInitBatch(t *testing.T) {
	logging.Initialize("", "silent")

	root := t.TempDir()
	assert.NotNil(t, InitBatch("bad name", root, false))

	if !assert.Nil(t, InitBatch("demo", root, true)) {
		return
	}

	// an existing manifest is never overwritten
	err := InitBatch("demo", root, true)
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "already exists")
	}

	writeTree(t, root, map[string]string{"src/Main.yaml": unitDoc})

	batch, err := LoadBatch(context.Background(), afs.New(), root)
	if assert.Nil(t, err) {
		assert.Equal(t, "demo", batch.Name)
		assert.Equal(t, defaultMaxErrors, batch.MaxErrors)
		assert.Empty(t, batch.Classpath)
		assert.Equal(t, []string{"Main.yaml"}, baseNames(batch.Sources))
	}
}

func TestIsValidIdentifier(t *testing.T) {
	for _, name := range []string{"a", "demo", "_x", "my-batch", "Batch2"} {
		assert.True(t, IsValidIdentifier(name), name)
	}

	for _, name := range []string{"", "2x", "-x", "a b", "a.b"} {
		assert.False(t, IsValidIdentifier(name), name)
	}
}
