package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// Upload is a photo on its way to a store.
type Upload struct {
	Name        string // stored object name, no directories
	ContentType string
	Size        int64
	Body        io.Reader
}

func (u Upload) validName() error {
	if u.Name == "" || filepath.Base(u.Name) != u.Name || u.Name == "." || u.Name == ".." {
		return fmt.Errorf("invalid photo name %q", u.Name)
	}
	return nil
}

// DiskPhotos keeps photos in the upload directory that is served under the static mount.
type DiskPhotos struct {
	dir     string
	mount   string
	baseURL string
}

// NewDiskPhotos creates dir if missing. With an empty baseURL the returned
// photo URLs are relative to the server root.
func NewDiskPhotos(dir, mount, baseURL string) (*DiskPhotos, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskPhotos{dir: dir, mount: mount, baseURL: baseURL}, nil
}

func (d *DiskPhotos) Dir() string {
	return d.dir
}

// Save streams the upload into a temporary file and renames it over any
// previous photo with the same name.
func (d *DiskPhotos) Save(ctx context.Context, upload Upload) (string, error) {
	if err := upload.validName(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := io.Copy(tmp, upload.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(d.dir, upload.Name)); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return d.URL(upload.Name), nil
}

// Delete removes a stored photo. A missing file is not an error.
func (d *DiskPhotos) Delete(_ context.Context, name string) error {
	if err := (Upload{Name: name}).validName(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(d.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *DiskPhotos) URL(name string) string {
	return d.baseURL + d.mount + "/" + url.PathEscape(name)
}
