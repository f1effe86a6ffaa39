// Package uploads persists product and composition images together with a
// bounded 200x200 preview derived from each original.
package uploads

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/image/webp"
)

// ErrBadExtension rejects an upload before anything touches the disk.
var ErrBadExtension = errors.New("file extension not allowed")

var allowedExt = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

const previewBound = 200

type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// Save validates the uploaded filename's extension, writes the original bytes
// under a fresh collision-resistant name and derives the preview. Returns the
// stored original and preview filenames.
func (s *Store) Save(name string, r io.Reader) (string, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !allowedExt[ext] {
		return "", "", ErrBadExtension
	}

	unique := strings.ReplaceAll(uuid.NewString(), "-", "") + "." + ext
	origPath := filepath.Join(s.Dir, unique)

	f, err := os.Create(origPath)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(origPath)
		return "", "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(origPath)
		return "", "", err
	}

	preview, err := s.makePreview(unique, ext)
	if err != nil {
		_ = os.Remove(origPath)
		return "", "", fmt.Errorf("preview: %w", err)
	}
	return unique, preview, nil
}

// makePreview downsizes to fit 200x200, aspect preserved. Webp sources are
// re-encoded as jpeg (Go has no webp encoder); everything else keeps its
// format, which flattens any alpha when the target is jpeg.
func (s *Store) makePreview(original, ext string) (string, error) {
	src, err := s.decode(original, ext)
	if err != nil {
		return "", err
	}
	thumb := imaging.Fit(src, previewBound, previewBound, imaging.Lanczos)

	preview := PreviewName(original)
	if err := imaging.Save(thumb, filepath.Join(s.Dir, preview)); err != nil {
		return "", err
	}
	return preview, nil
}

// PreviewName maps a stored original filename to its preview filename.
func PreviewName(original string) string {
	p := "preview_" + original
	if strings.HasSuffix(p, ".webp") {
		p = strings.TrimSuffix(p, ".webp") + ".jpg"
	}
	return p
}

func (s *Store) decode(name, ext string) (image.Image, error) {
	if ext == "webp" {
		f, err := os.Open(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return webp.Decode(f)
	}
	return imaging.Open(filepath.Join(s.Dir, name))
}

// Remove deletes stored files by name, best effort. Paths are flattened to
// their base name so database rows can never reach outside the upload dir.
func (s *Store) Remove(names ...string) {
	for _, n := range names {
		if n == "" {
			continue
		}
		_ = os.Remove(filepath.Join(s.Dir, filepath.Base(n)))
	}
}
