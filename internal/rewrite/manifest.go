package rewrite

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Manifest is the rewrite section of the hosting platform config file.
type Manifest struct {
	Rewrites Rules `json:"rewrites"`
}

func NewManifest(rules ...Rule) Manifest {
	return Manifest{Rewrites: rules}
}

// WriteTo writes the manifest as indented JSON followed by a newline.
func (m Manifest) WriteTo(w io.Writer) (int64, error) {
	if err := m.Rewrites.Validate(); err != nil {
		return 0, err
	}
	if m.Rewrites == nil {
		m.Rewrites = Rules{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode rewrite manifest: %w", err)
	}
	n, err := w.Write(append(data, '\n'))
	return int64(n), err
}

func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode rewrite manifest: %w", err)
	}
	if err := m.Rewrites.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
