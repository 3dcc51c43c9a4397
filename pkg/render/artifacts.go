// pkg/render/artifacts.go

package render

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// DefaultRoot is the directory artifacts are written under.
const DefaultRoot = "pdfs"

// Mirror receives a copy of every stored artifact.
type Mirror interface {
	Upload(ctx context.Context, key string, body []byte) error
}

// FileStore keeps rendered PDFs at {root}/{kind}s/{id}.pdf. Writing the same
// id again replaces the previous file.
type FileStore struct {
	root   string
	mirror Mirror
	log    zerolog.Logger
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithMirror uploads every saved artifact to m after it is written locally.
func WithMirror(m Mirror) FileStoreOption {
	return func(fs *FileStore) { fs.mirror = m }
}

// WithFileLogger sets the logger used for mirror failures.
func WithFileLogger(log zerolog.Logger) FileStoreOption {
	return func(fs *FileStore) { fs.log = log }
}

// NewFileStore stores artifacts under root, DefaultRoot when empty.
func NewFileStore(root string, opts ...FileStoreOption) *FileStore {
	if root == "" {
		root = DefaultRoot
	}
	fs := &FileStore{root: root, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Key is the artifact path relative to the store root.
func Key(kind document.Kind, id string) string {
	return filepath.ToSlash(filepath.Join(kind.String()+"s", id+".pdf"))
}

// Path is where the artifact for kind and id lives on disk.
func (fs *FileStore) Path(kind document.Kind, id string) string {
	return filepath.Join(fs.root, filepath.FromSlash(Key(kind, id)))
}

// Save writes data for kind and id and returns its path. The file is written
// to a temporary name and renamed into place, so readers never observe a
// partial artifact. A mirror failure is logged and does not fail the save.
func (fs *FileStore) Save(ctx context.Context, kind document.Kind, id string, data []byte) (string, error) {
	path := fs.Path(kind, id)
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}

	if fs.mirror != nil {
		if err := fs.mirror.Upload(ctx, Key(kind, id), data); err != nil {
			fs.log.Warn().Err(err).Str("path", path).Msg("artifact mirror upload failed")
		}
	}
	return path, nil
}

// Open opens a stored artifact for reading.
func (fs *FileStore) Open(kind document.Kind, id string) (*os.File, error) {
	path := fs.Path(kind, id)
	f, err := os.Open(path)
	if err != nil {
		return nil, &RenderError{Op: "open", Path: path, Err: err}
	}
	return f, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &RenderError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &RenderError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &RenderError{Op: "write", Path: tmp.Name(), Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &RenderError{Op: "close", Path: tmp.Name(), Err: err}
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return &RenderError{Op: "chmod", Path: tmp.Name(), Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &RenderError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
