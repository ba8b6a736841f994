package sharestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yanqian/stylecast/internal/domain/share"
)

const defaultDir = "data/share-results"

// FileRepository keeps one indented JSON document per result under dir.
type FileRepository struct {
	dir string
}

// NewFileRepository constructs the repository. The directory is created on
// first write.
func NewFileRepository(dir string) *FileRepository {
	if dir == "" {
		dir = defaultDir
	}
	return &FileRepository{dir: dir}
}

// Save writes <dir>/<id>.json through a temp file so readers never see a
// partial document.
func (r *FileRepository) Save(_ context.Context, result share.Result) error {
	if !share.ValidID(result.ID) {
		return fmt.Errorf("invalid share id %q", result.ID)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create share dir: %w", err)
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode share result: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, result.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write share result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close share result: %w", err)
	}
	if err := os.Rename(tmpName, r.path(result.ID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit share result: %w", err)
	}
	return nil
}

// Find loads <dir>/<id>.json.
func (r *FileRepository) Find(_ context.Context, id string) (share.Result, bool, error) {
	if !share.ValidID(id) {
		return share.Result{}, false, nil
	}
	payload, err := os.ReadFile(r.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return share.Result{}, false, nil
	}
	if err != nil {
		return share.Result{}, false, fmt.Errorf("read share result: %w", err)
	}
	var result share.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return share.Result{}, false, fmt.Errorf("decode share result: %w", err)
	}
	return result, true, nil
}

func (r *FileRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

var _ share.Repository = (*FileRepository)(nil)
