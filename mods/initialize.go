package mods

import (
	"errors"
	"fmt"
	"jfront/common"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// defaultMaxErrors is the error threshold written into new manifests.
const defaultMaxErrors = 100

// InitBatch creates a new batch manifest with the given name in the given
// directory.  The new batch compiles every unit document under `src` against
// the stubs under `classpath`.
func InitBatch(name, path string, noClasspath bool) error {
	// convert the batch directory to the path to manifest file
	batchFilePath := filepath.Join(path, common.BatchFileName)

	// check to see if a batch already exists
	_, err := os.Stat(batchFilePath)
	if err == nil {
		return errors.New("batch manifest already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("batch manifest error: %s", err.Error())
	}

	// validate batch name
	if !IsValidIdentifier(name) {
		return errors.New("batch name must be a valid identifier")
	}

	batch := &tomlBatch{
		Name:      name,
		Sources:   []string{"src"},
		MaxErrors: defaultMaxErrors,
		Version:   common.Version,
	}

	if !noClasspath {
		batch.Classpath = []string{"classpath"}
	}

	// encode and save batch to file
	f, err := os.Create(batchFilePath)
	if err != nil {
		return fmt.Errorf("error creating batch manifest: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlBatchFile{Batch: batch}); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}
