package sheet

import (
	"image"
	"path/filepath"
	"testing"

	"sprite-splitter/pkg/colorutil"
	"sprite-splitter/pkg/geometry"
)

func TestManifestRoundTrip(t *testing.T) {
	result := &Result{
		SheetWidth:  200,
		SheetHeight: 100,
		Rows:        1,
		Written:     1,
		Skipped:     1,
		Stats:       Stats{WidthMean: 90, HeightMean: 90},
		Sprites: []SpriteResult{
			{
				Row:        0,
				Col:        0,
				Bounds:     geometry.NewRectInt(0, 5, 90, 90),
				Background: colorutil.BGR{R: 200},
				Image:      image.NewNRGBA(image.Rect(0, 0, 22, 22)),
				File:       "row_000/sprite_000.png",
			},
			{
				Row:        0,
				Col:        1,
				Bounds:     geometry.NewRectInt(100, 5, 90, 90),
				SkipReason: "segmenting: empty cell matrix",
			},
		},
	}

	opts := DefaultOptions()
	m := BuildManifest(result, "sheet.png", opts)
	path := filepath.Join(t.TempDir(), ManifestName)
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if loaded.Version != 1 {
		t.Errorf("Version = %d, want 1", loaded.Version)
	}
	if loaded.Source != "sheet.png" {
		t.Errorf("Source = %q, want sheet.png", loaded.Source)
	}
	if loaded.SheetWidth != 200 || loaded.SheetHeight != 100 {
		t.Errorf("sheet size = %dx%d, want 200x100", loaded.SheetWidth, loaded.SheetHeight)
	}
	if loaded.Options != opts {
		t.Errorf("Options = %+v, want %+v", loaded.Options, opts)
	}
	if len(loaded.Sprites) != 2 {
		t.Fatalf("len(Sprites) = %d, want 2", len(loaded.Sprites))
	}

	written := loaded.Sprites[0]
	if written.File != "row_000/sprite_000.png" || written.Width != 22 || written.Height != 22 {
		t.Errorf("written record = %+v", written)
	}
	if written.Background != (colorutil.BGR{R: 200}) {
		t.Errorf("written background = %+v, want red", written.Background)
	}

	skipped := loaded.Sprites[1]
	if skipped.File != "" || skipped.SkipReason == "" {
		t.Errorf("skipped record = %+v", skipped)
	}
	if skipped.Bounds != geometry.NewRectInt(100, 5, 90, 90) {
		t.Errorf("skipped bounds = %+v", skipped.Bounds)
	}
}
