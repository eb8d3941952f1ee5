// Package icons loads skill icon assets from disk.
package icons

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	apperrors "github.com/louisbranch/skillbar/internal/platform/errors"
)

var extensions = []string{".jpg", ".png"}

// Dir reads icons laid out as <Root>/skills/<id>.jpg, falling back to .png.
type Dir struct {
	Root string
}

// NewDir returns a loader rooted at root.
func NewDir(root string) Dir {
	return Dir{Root: root}
}

// Path returns the first existing icon file for id.
func (d Dir) Path(id int) (string, error) {
	if id < 0 {
		return "", missing(id, fmt.Errorf("negative skill id"))
	}
	base := filepath.Join(d.Root, "skills", strconv.Itoa(id))
	for _, ext := range extensions {
		path := base + ext
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", missing(id, err)
		}
	}
	return "", missing(id, fs.ErrNotExist)
}

// LoadIcon decodes the icon for id.
func (d Dir) LoadIcon(ctx context.Context, id int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.Path(id)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, missing(id, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, missing(id, fmt.Errorf("decode %s: %w", filepath.Base(path), err))
	}
	return img, nil
}

func missing(id int, cause error) error {
	return apperrors.WrapWithMetadata(
		apperrors.CodeIconMissing,
		"icon for skill "+strconv.Itoa(id),
		map[string]string{"SkillID": strconv.Itoa(id)},
		cause,
	)
}
