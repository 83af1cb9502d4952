package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileDocument is the on-disk shape of a file-backed collection. NextID is a
// monotonic counter so identifiers are never reused after deletion.
type fileDocument[T any] struct {
	NextID uint `json:"next_id"`
	Items  []T  `json:"items"`
}

// fileCollection serialises a whole collection as one JSON document. Every
// mutation rewrites the file via a temp file and rename, guarded by an
// in-process lock. That protects a single server instance only; deployments
// with multiple writers need the SQL backend.
type fileCollection[T any] struct {
	path string
	mu   sync.RWMutex
}

func newFileCollection[T any](path string) *fileCollection[T] {
	return &fileCollection[T]{path: path}
}

func (c *fileCollection[T]) read() (fileDocument[T], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load()
}

func (c *fileCollection[T]) mutate(fn func(doc *fileDocument[T]) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return c.store(doc)
}

func (c *fileCollection[T]) load() (fileDocument[T], error) {
	raw, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return fileDocument[T]{NextID: 1, Items: []T{}}, nil
	}
	if err != nil {
		return fileDocument[T]{}, fmt.Errorf("read %s: %w", c.path, err)
	}

	var doc fileDocument[T]
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fileDocument[T]{}, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if doc.NextID == 0 {
		doc.NextID = 1
	}
	if doc.Items == nil {
		doc.Items = []T{}
	}
	return doc, nil
}

func (c *fileCollection[T]) store(doc fileDocument[T]) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
