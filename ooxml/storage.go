package ooxml

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage receives finished package members.
// Implementations can write to ZIP archives, directories or memory.
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// DirStorage writes package members to a directory structure on disk.
// This is useful for inspecting the generated XML.
type DirStorage struct {
	Dir string // root directory path
}

// NewDirStorage creates a storage rooted at dir. Parent directories are
// created on demand.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{
		Dir: dir,
	}
}

// WriteBlob writes a member below the root directory.
func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	fn := filepath.Join(ds.Dir, filepath.FromSlash(path))
	err := os.MkdirAll(filepath.Dir(fn), 0777)
	if err != nil {
		return ErrOutput.Wrap(err, path)
	}
	if err = os.WriteFile(fn, blob, 0666); err != nil {
		return ErrOutput.Wrap(err, path)
	}
	return nil
}

// ZipStorage writes package members into a ZIP archive.
type ZipStorage struct {
	z *zip.Writer
}

// NewZipStorage creates a ZIP storage over out, typically a file opened
// with os.Create.
func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

// WriteBlob adds a member to the archive.
func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	f, err := zs.z.Create(path)
	if err != nil {
		return ErrOutput.Wrap(err, path)
	}
	if _, err = f.Write(blob); err != nil {
		return ErrOutput.Wrap(err, path)
	}
	return nil
}

// Close finalizes the archive. The archive is unusable until Close
// returns.
func (zs *ZipStorage) Close() error {
	if err := zs.z.Close(); err != nil {
		return ErrOutput.Wrap(err, "zip directory")
	}
	return nil
}

// MemStorage keeps members in memory, keyed by path without the leading
// slash.
type MemStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
	order []string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{blobs: map[string][]byte{}}
}

func (ms *MemStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.blobs[path]; !ok {
		ms.order = append(ms.order, path)
	}
	ms.blobs[path] = append([]byte(nil), blob...)
	return nil
}

// Blob returns a stored member.
func (ms *MemStorage) Blob(path string) ([]byte, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	b, ok := ms.blobs[strings.TrimPrefix(path, "/")]
	return b, ok
}

// Paths returns member paths in the order they were first written.
func (ms *MemStorage) Paths() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.order...)
}
