// Package compositor assembles skill icons into a single horizontal strip.
package compositor

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"

	apperrors "github.com/louisbranch/skillbar/internal/platform/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// IconLoader resolves a skill id to its icon raster.
type IconLoader interface {
	LoadIcon(ctx context.Context, id int) (image.Image, error)
}

// IconLoaderFunc adapts a function to IconLoader.
type IconLoaderFunc func(ctx context.Context, id int) (image.Image, error)

// LoadIcon calls f.
func (f IconLoaderFunc) LoadIcon(ctx context.Context, id int) (image.Image, error) {
	return f(ctx, id)
}

// Compose renders ids left to right into a len(ids)*tileSize by tileSize
// image, scaling every icon to exactly one tile. Icons load concurrently; any
// failure fails the whole strip.
func Compose(ctx context.Context, ids []int, tileSize int, loader IconLoader) (*image.RGBA, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no icons to compose")
	}
	if loader == nil {
		return nil, fmt.Errorf("icon loader is required")
	}

	icons := make([]image.Image, len(ids))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		group.Go(func() error {
			icon, err := loader.LoadIcon(groupCtx, id)
			if err != nil {
				return iconMissing(id, err)
			}
			if icon == nil {
				return iconMissing(id, fmt.Errorf("loader returned no image"))
			}
			icons[i] = icon
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, len(ids)*tileSize, tileSize))
	for i, icon := range icons {
		tile := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		xdraw.CatmullRom.Scale(canvas, tile, icon, icon.Bounds(), xdraw.Src, nil)
	}
	return canvas, nil
}

// EncodePNG writes img as a PNG attachment body.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return apperrors.Wrap(apperrors.CodeRenderFailed, "encode png", err)
	}
	return nil
}

func iconMissing(id int, cause error) error {
	if apperrors.HasCode(cause, apperrors.CodeIconMissing) {
		return cause
	}
	return apperrors.WrapWithMetadata(
		apperrors.CodeIconMissing,
		"load icon",
		map[string]string{"SkillID": strconv.Itoa(id)},
		cause,
	)
}
