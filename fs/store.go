package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/docmodel"
)

// Ensure FileStore implements docmodel.RecordStore at compile time.
var _ docmodel.RecordStore = (*FileStore)(nil)

// FileStore implements docmodel.RecordStore with atomic update semantics.
// Records are saved as JSON files to a temporary directory, then moved
// atomically on Commit.
type FileStore struct {
	baseDir string
	name    string

	// clean removes a temp directory left by an earlier interrupted run.
	clean    sync.Once
	cleanErr error
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *FileStore) prepare() error {
	s.clean.Do(func() {
		s.cleanErr = os.RemoveAll(s.tempDir())
	})
	return s.cleanErr
}

// Save writes rec to name.json. A name already saved gets a numeric suffix.
func (s *FileStore) Save(ctx context.Context, name string, rec docmodel.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.prepare(); err != nil {
		return err
	}

	relPath := filepath.FromSlash(name)
	if !filepath.IsLocal(relPath) {
		return docmodel.Errorf(docmodel.EINVALID, "path traversal in output name %q", name)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return docmodel.Errorf(docmodel.EINVALID, "record is not JSON encodable: %v", err)
	}
	data = append(data, '\n')

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	for n := 1; ; n++ {
		target := fullPath + ".json"
		if n > 1 {
			target = fmt.Sprintf("%s-%d.json", fullPath, n)
		}
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	if err := s.prepare(); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Nothing saved still produces an empty output directory
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved so far.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
