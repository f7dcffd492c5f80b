package timing

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Loader parses one timing file format into a Song.
// New formats are added as new Loader implementations in DefaultLoaders.
type Loader interface {
	// Name is a short human readable format name.
	Name() string
	// Extensions lists the lower case file extensions handled, including the dot.
	Extensions() []string
	// Load parses a complete document. No partial Song is returned on error.
	Load(r io.Reader) (*Song, error)
}

// DefaultLoaders are the formats the player understands.
var DefaultLoaders = []Loader{
	JSONLoader{},
}

// LoaderFor picks the loader responsible for path based on its extension.
func LoaderFor(path string, loaders []Loader) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := lo.Find(loaders, func(l Loader) bool {
		return lo.Contains(l.Extensions(), ext)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(loaders), ", "))
	}
	return loader, nil
}

// SupportedExtensions lists every extension handled by loaders.
func SupportedExtensions(loaders []Loader) []string {
	return lo.Uniq(lo.FlatMap(loaders, func(l Loader, _ int) []string {
		return l.Extensions()
	}))
}

// IsTimingFile reports whether path has an extension one of loaders handles.
func IsTimingFile(path string, loaders []Loader) bool {
	_, err := LoaderFor(path, loaders)
	return err == nil
}

// LoadFile reads and parses the timing file at path using DefaultLoaders.
func LoadFile(path string) (*Song, error) {
	loader, err := LoaderFor(path, DefaultLoaders)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	song, err := loader.Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return song, nil
}
