package repositories

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

// FileStore keeps the backing document in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore opens the JSON file at path, creating it with empty maps when
// it does not exist yet. An existing file that cannot be parsed is a storage
// error; the caller is expected to abort startup.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if _, err := s.Load(context.Background()); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errs.Storage("create database directory", err)
			}
		}
		if err := s.Save(context.Background(), models.NewDocument()); err != nil {
			return nil, err
		}
	default:
		return nil, errs.Storage("stat database", err)
	}
	return s, nil
}

// Path returns the file backing this store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errs.Storage("read database", err)
	}
	return decodeDocument(data)
}

// Save writes the document to a temporary file next to the target and renames
// it into place, so readers never observe a partial write.
func (s *FileStore) Save(_ context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errs.Storage("write database", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	_ = tmp.Chmod(0o644)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errs.Storage("write database", err)
	}
	if err := tmp.Close(); err != nil {
		return errs.Storage("write database", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errs.Storage("write database", err)
	}
	return nil
}
