package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NordCoder/Uptimer/internal/domain/record"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const ext = ".json"

var _ record.Store = (*Store)(nil)

// Store keeps one JSON file per record at <dir>/<category>/<id>.json.
type Store struct {
	fs  afero.Fs
	dir string
}

func New(fsys afero.Fs, dir string) *Store {
	return &Store{fs: fsys, dir: dir}
}

func NewOS(dir string) *Store { return New(afero.NewOsFs(), dir) }

func (s *Store) path(category, id string) (string, error) {
	if err := checkKey(category); err != nil {
		return "", err
	}
	if err := checkKey(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, category, id+ext), nil
}

func checkKey(k string) error {
	if k == "" || k == "." || k == ".." || strings.ContainsAny(k, `/\`) {
		return fmt.Errorf("%w: %q", record.ErrInvalidKey, k)
	}
	return nil
}

func (s *Store) List(ctx context.Context, category string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkKey(category); err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(s.fs, filepath.Join(s.dir, category))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", category, err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Read(ctx context.Context, category, id string) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(category, id)
	if err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, record.ErrNotFound
		}
		return nil, fmt.Errorf("read %s/%s: %w", category, id, err)
	}
	var rec record.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", category, id, err)
	}
	return rec, nil
}

func (s *Store) Create(ctx context.Context, category, id string, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(category, id)
	if err != nil {
		return err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", category, id, err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", category, err)
	}
	f, err := s.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return record.ErrConflict
		}
		return fmt.Errorf("create %s/%s: %w", category, id, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s/%s: %w", category, id, err)
	}
	return f.Close()
}

// Update replaces an existing record. The new content is written to a temp
// file and renamed over the old one so readers never see a partial write.
func (s *Store) Update(ctx context.Context, category, id string, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(category, id)
	if err != nil {
		return err
	}
	if _, err := s.fs.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return record.ErrNotFound
		}
		return fmt.Errorf("stat %s/%s: %w", category, id, err)
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", category, id, err)
	}
	tmp := p + ".tmp-" + uuid.NewString()
	if err := afero.WriteFile(s.fs, tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s/%s: %w", category, id, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s/%s: %w", category, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, category, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(category, id)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return record.ErrNotFound
		}
		return fmt.Errorf("delete %s/%s: %w", category, id, err)
	}
	return nil
}

// Ping reports whether the base directory is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.fs.Stat(s.dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
