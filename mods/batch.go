package mods

import (
	"context"
	"fmt"
	"jfront/common"
	"jfront/logging"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
)

// tomlBatchFile represents the batch manifest as it is encoded in TOML
type tomlBatchFile struct {
	Batch *tomlBatch `toml:"batch"`
}

// tomlBatch represents a compilation batch as it is encoded in TOML
type tomlBatch struct {
	Name      string   `toml:"name"`
	Sources   []string `toml:"sources"`
	Classpath []string `toml:"classpath,omitempty"`
	MaxErrors int      `toml:"max-errors"`
	LogLevel  string   `toml:"log-level,omitempty"`
	Version   string   `toml:"jfront-version,omitempty"`
}

// Batch is a set of units compiled together: every unit may refer to every
// class of the batch regardless of order.
type Batch struct {
	Name string

	// Root is the URL of the directory containing the manifest.  Relative
	// source and classpath entries are resolved against it.
	Root string

	// Sources lists the URLs of the unit documents in the batch.
	Sources []string

	// Classpath lists the URLs of the class stub documents.
	Classpath []string

	// MaxErrors is the error threshold halting compilation between passes.
	// Zero means unlimited.
	MaxErrors int

	// LogLevel is the name of the log level requested by the manifest.  It is
	// empty if the manifest does not set one.
	LogLevel string
}

// LoadBatch loads and validates the batch manifest at the given path.  The
// path may name the manifest itself or the directory containing it.
// Directory entries in `sources` and `classpath` are expanded to the unit
// documents they contain.
func LoadBatch(ctx context.Context, fs afs.Service, manifestPath string) (*Batch, error) {
	URL := manifestPath
	if object, err := fs.Object(ctx, URL); err == nil && object.IsDir() {
		URL = url.Join(URL, common.BatchFileName)
	}

	buff, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read batch manifest %s", URL)
	}

	tbf := &tomlBatchFile{}
	if err := toml.Unmarshal(buff, tbf); err != nil {
		return nil, errors.Wrapf(err, "failed to decode batch manifest %s", URL)
	}

	if err := validateBatch(URL, tbf.Batch); err != nil {
		return nil, err
	}

	batch := &Batch{
		Name:      tbf.Batch.Name,
		Root:      baseDir(URL),
		MaxErrors: tbf.Batch.MaxErrors,
		LogLevel:  tbf.Batch.LogLevel,
	}

	if batch.Sources, err = expandEntries(ctx, fs, batch.Root, tbf.Batch.Sources); err != nil {
		return nil, err
	}

	if len(batch.Sources) == 0 {
		return nil, fmt.Errorf("batch `%s` contains no unit documents", batch.Name)
	}

	if batch.Classpath, err = expandEntries(ctx, fs, batch.Root, tbf.Batch.Classpath); err != nil {
		return nil, err
	}

	return batch, nil
}

// validateBatch checks that the top level manifest contents are valid
func validateBatch(URL string, tb *tomlBatch) error {
	if tb == nil {
		return fmt.Errorf("missing [batch] table in %s", URL)
	}

	if tb.Name == "" {
		return fmt.Errorf("missing batch name in %s", URL)
	}

	if !IsValidIdentifier(tb.Name) {
		return errors.New("batch name must be a valid identifier")
	}

	if len(tb.Sources) == 0 {
		return fmt.Errorf("batch `%s` must list at least one source", tb.Name)
	}

	if tb.MaxErrors < 0 {
		return fmt.Errorf("max-errors of batch `%s` cannot be negative", tb.Name)
	}

	switch tb.LogLevel {
	case "", "silent", "error", "warn", "warning", "verbose":
	default:
		return fmt.Errorf("unknown log level `%s` in batch `%s`", tb.LogLevel, tb.Name)
	}

	if tb.Version != "" && tb.Version != common.Version {
		logging.LogBuildWarning(
			"batch",
			fmt.Sprintf("version of batch `%s` (v%s) does not match current jfront version (v%s)", tb.Name, tb.Version, common.Version),
		)
	}

	return nil
}

// expandEntries resolves the entries of a source list against the batch root.
// A directory is replaced by the unit documents found under it, in listing
// order.
func expandEntries(ctx context.Context, fs afs.Service, root string, entries []string) ([]string, error) {
	var URLs []string
	seen := make(map[string]struct{})

	add := func(URL string) {
		if _, ok := seen[URL]; !ok {
			seen[URL] = struct{}{}
			URLs = append(URLs, URL)
		}
	}

	for _, entry := range entries {
		URL := entry
		if url.IsRelative(URL) {
			URL = url.Join(root, URL)
		}

		object, err := fs.Object(ctx, URL)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to locate %s", URL)
		}

		if !object.IsDir() {
			add(URL)
			continue
		}

		objects, err := fs.List(ctx, URL, option.NewRecursive(true))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list %s", URL)
		}

		for _, object := range objects {
			if object.IsDir() || !isUnitDocument(object.Name()) {
				continue
			}

			add(object.URL())
		}
	}

	return URLs, nil
}

// isUnitDocument returns whether a file name names a unit document.
func isUnitDocument(name string) bool {
	ext := path.Ext(name)
	return ext == common.UnitFileExtension || ext == ".yml"
}

// baseDir returns the URL of the directory containing the given URL.
func baseDir(URL string) string {
	if strings.Contains(URL, "://") {
		parent, _ := url.Split(URL, "file")
		return parent
	}

	return filepath.Dir(URL)
}

// IsValidIdentifier returns whether or not a given string would be a valid
// batch name.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
