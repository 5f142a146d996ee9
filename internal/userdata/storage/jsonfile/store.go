// Package jsonfile provides a JSON-file-backed user-data storage
// implementation, one file per document under a local data directory.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smurphik/vkts/internal/userdata/storage"
)

// Store persists each document as one JSON file under the data directory.
type Store struct {
	dir string
}

var _ storage.Store = (*Store)(nil)

// Open prepares a file store rooted at dir. The directory and document
// files are created lazily by Ensure, not here.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

// Dir returns the data directory the store reads and writes.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Ensure creates the data directory and any missing document file with its
// default content. Existing files are left untouched.
func (s *Store) Ensure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.dir == "" {
		return fmt.Errorf("storage is not configured")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", s.dir, err)
	}
	for _, doc := range storage.Documents {
		path := s.filePath(doc)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, doc.DefaultContent(), 0o644); err != nil {
			return fmt.Errorf("write default %s: %w", path, err)
		}
	}
	return nil
}

// Load reads and decodes one whole document file.
func (s *Store) Load(ctx context.Context, doc storage.Document) (*storage.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.dir == "" {
		return nil, fmt.Errorf("storage is not configured")
	}
	path := s.filePath(doc)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	root := storage.NewObject()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return root, nil
}

// Save encodes and rewrites one whole document file. The write is a plain
// full-file rewrite, not atomic.
func (s *Store) Save(ctx context.Context, doc storage.Document, root *storage.Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.dir == "" {
		return fmt.Errorf("storage is not configured")
	}
	if root == nil {
		return fmt.Errorf("document root is required")
	}
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc, err)
	}
	path := s.filePath(doc)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *Store) filePath(doc storage.Document) string {
	return filepath.Join(s.dir, doc.FileName())
}
