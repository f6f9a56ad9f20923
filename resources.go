package luminal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinFontPrefix marks resource names served from the Go font family.
const BuiltinFontPrefix = "gofont:"

var builtinFonts = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
	"mono":    gomono.TTF,
}

// Resources resolves resource names to bytes. A name is looked up in the
// bundle first, then relative to Root on the filesystem, then among the
// built-in fonts (names such as "gofont:regular").
//
// The zero value resolves against the working directory only.
type Resources struct {
	Bundle fs.FS
	Root   string
}

// NewResources returns a resolver over bundle (may be nil) and root.
func NewResources(bundle fs.FS, root string) *Resources {
	return &Resources{Bundle: bundle, Root: root}
}

// Load returns the bytes of the named resource.
func (r *Resources) Load(name string) ([]byte, error) {
	if r == nil {
		r = &Resources{}
	}

	if r.Bundle != nil {
		data, err := fs.ReadFile(r.Bundle, strings.TrimPrefix(name, "/"))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("read bundled resource %q: %w", name, err)
		}
	}

	path := name
	if r.Root != "" && !filepath.IsAbs(name) {
		path = filepath.Join(r.Root, name)
	}
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read resource %q: %w", path, err)
	}

	if key, ok := strings.CutPrefix(name, BuiltinFontPrefix); ok {
		if ttf, ok := builtinFonts[key]; ok {
			return ttf, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
}

// LoadString returns the named resource as text.
func (r *Resources) LoadString(name string) (string, error) {
	data, err := r.Load(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
