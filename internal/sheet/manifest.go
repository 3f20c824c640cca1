package sheet

import (
	"encoding/json"
	"os"
	"time"

	"sprite-splitter/internal/version"
	"sprite-splitter/pkg/colorutil"
	"sprite-splitter/pkg/geometry"
)

// ManifestName is the file written next to the sprite directories.
const ManifestName = "manifest.json"

// Manifest records what a run produced. Downstream tools (sprite editors,
// atlas packers) read it to map files back to sheet positions.
type Manifest struct {
	Version int       `json:"version"`
	Tool    string    `json:"tool"`
	Created time.Time `json:"created"`

	Source      string  `json:"source"`
	SheetWidth  int     `json:"sheet_width"`
	SheetHeight int     `json:"sheet_height"`
	Options     Options `json:"options"`

	Rows    int            `json:"rows"`
	Written int            `json:"written"`
	Skipped int            `json:"skipped,omitempty"`
	Stats   Stats          `json:"stats"`
	Sprites []SpriteRecord `json:"sprites"`
}

// SpriteRecord describes one cell's outcome.
type SpriteRecord struct {
	Row        int              `json:"row"`
	Col        int              `json:"col"`
	Bounds     geometry.RectInt `json:"bounds"`
	Background colorutil.BGR    `json:"background"`
	File       string           `json:"file,omitempty"`
	Width      int              `json:"width,omitempty"`
	Height     int              `json:"height,omitempty"`
	SkipReason string           `json:"skip_reason,omitempty"`
}

// BuildManifest assembles the manifest for a finished run.
func BuildManifest(result *Result, source string, opts Options) *Manifest {
	m := &Manifest{
		Version:     1,
		Tool:        version.Name + " " + version.Version,
		Created:     time.Now(),
		Source:      source,
		SheetWidth:  result.SheetWidth,
		SheetHeight: result.SheetHeight,
		Options:     opts,
		Rows:        result.Rows,
		Written:     result.Written,
		Skipped:     result.Skipped,
		Stats:       result.Stats,
		Sprites:     make([]SpriteRecord, 0, len(result.Sprites)),
	}

	for _, s := range result.Sprites {
		rec := SpriteRecord{
			Row:        s.Row,
			Col:        s.Col,
			Bounds:     s.Bounds,
			Background: s.Background,
			File:       s.File,
			SkipReason: s.SkipReason,
		}
		if s.Image != nil {
			b := s.Image.Bounds()
			rec.Width = b.Dx()
			rec.Height = b.Dy()
		}
		m.Sprites = append(m.Sprites, rec)
	}

	return m
}

// Save writes the manifest as indented JSON.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
