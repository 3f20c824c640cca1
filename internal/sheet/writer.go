package sheet

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// SpriteWriter receives finished sprites keyed by grid position. WriteSprite
// returns the name it stored the sprite under, for the run manifest. The
// orchestrator calls it from a single goroutine in row-major order.
type SpriteWriter interface {
	WriteSprite(row, col int, img *image.NRGBA) (string, error)
}

// DirWriter writes sprites as PNG files under a root directory, one
// subdirectory per row: row_000/sprite_000.png, row_000/sprite_001.png, and
// so on. PNG keeps the alpha channel lossless.
type DirWriter struct {
	Root string
}

// NewDirWriter creates a writer rooted at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{Root: dir}
}

// WriteSprite stores one sprite, creating the row directory on first use.
// The returned name is relative to the writer's root.
func (w *DirWriter) WriteSprite(row, col int, img *image.NRGBA) (string, error) {
	rowDir := fmt.Sprintf("row_%03d", row)
	if err := os.MkdirAll(filepath.Join(w.Root, rowDir), 0755); err != nil {
		return "", fmt.Errorf("creating row directory: %w", err)
	}

	name := filepath.Join(rowDir, fmt.Sprintf("sprite_%03d.png", col))
	f, err := os.Create(filepath.Join(w.Root, name))
	if err != nil {
		return "", fmt.Errorf("creating sprite file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding sprite: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing sprite file: %w", err)
	}

	return name, nil
}
