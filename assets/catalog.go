// Package assets maps logical asset names to handles. A Catalog is filled once
// at startup through a host-specific Loader and is read-only afterwards, so it
// can be shared between frame passes without synchronisation.
package assets

import (
	"fmt"
	"path"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/pkg/errors"
)

// Kind tells a Loader how to decode an asset.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindImage
	KindSound
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindSound:
		return "sound"
	default:
		return "unknown"
	}
}

// KindOf derives the asset kind from the file extension of name.
func KindOf(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return KindImage
	case ".wav", ".ogg", ".mp3":
		return KindSound
	default:
		return KindUnknown
	}
}

// Handle is an opaque reference to a loaded asset. The zero Handle is never
// returned by Load.
type Handle uint32

var (
	// ErrAssetLoad is matched by every error returned for a missing or
	// undecodable asset.
	ErrAssetLoad = errors.New("asset load failed")
	// ErrSealed is returned when a new name is loaded after Seal.
	ErrSealed = errors.New("asset catalog is sealed")
)

// LoadError records which asset failed and why.
type LoadError struct {
	Name string
	Kind Kind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors walk through the error.
func (e *LoadError) Cause() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrAssetLoad }

// Loader turns an asset name into a host resource (an image, a decoded sound, ...).
type Loader interface {
	Load(name string, kind Kind) (any, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string, kind Kind) (any, error)

func (f LoaderFunc) Load(name string, kind Kind) (any, error) { return f(name, kind) }

// Catalog resolves names to handles and handles to resources.
type Catalog struct {
	loader    Loader
	byName    map[string]Handle
	names     []string
	kinds     []Kind
	resources *intmap.Map[Handle, any]
	sealed    bool
}

// NewCatalog creates an empty catalog backed by loader.
func NewCatalog(loader Loader) *Catalog {
	return &Catalog{
		loader:    loader,
		byName:    make(map[string]Handle),
		resources: intmap.New[Handle, any](16),
	}
}

// Load returns the handle for name, loading the asset on first use.
// Loading the same name again returns the same handle without touching the loader.
func (c *Catalog) Load(name string) (Handle, error) {
	if h, ok := c.byName[name]; ok {
		return h, nil
	}
	if c.sealed {
		return 0, errors.Wrapf(ErrSealed, "load %q", name)
	}

	kind := KindOf(name)
	if kind == KindUnknown {
		return 0, &LoadError{Name: name, Kind: kind, Err: errors.New("unsupported file extension")}
	}

	resource, err := c.loader.Load(name, kind)
	if err != nil {
		return 0, &LoadError{Name: name, Kind: kind, Err: err}
	}

	c.names = append(c.names, name)
	c.kinds = append(c.kinds, kind)
	h := Handle(len(c.names))
	c.byName[name] = h
	c.resources.Put(h, resource)
	return h, nil
}

// Seal forbids loading names that are not in the catalog yet.
func (c *Catalog) Seal() {
	c.sealed = true
}

// Sealed reports whether Seal has been called.
func (c *Catalog) Sealed() bool {
	return c.sealed
}

// Handle returns the handle of an already loaded name.
func (c *Catalog) Handle(name string) (Handle, bool) {
	h, ok := c.byName[name]
	return h, ok
}

// MustHandle is like Handle but panics when name was never loaded.
func (c *Catalog) MustHandle(name string) Handle {
	h, ok := c.byName[name]
	if !ok {
		panic("asset not loaded: " + name)
	}
	return h
}

// Resource returns what the loader produced for h.
func (c *Catalog) Resource(h Handle) (any, bool) {
	return c.resources.Get(h)
}

// Name returns the name h was loaded from, or "" for an unknown handle.
func (c *Catalog) Name(h Handle) string {
	if h == 0 || int(h) > len(c.names) {
		return ""
	}
	return c.names[h-1]
}

// Kind returns the kind of the asset behind h.
func (c *Catalog) Kind(h Handle) Kind {
	if h == 0 || int(h) > len(c.kinds) {
		return KindUnknown
	}
	return c.kinds[h-1]
}

// Len returns the number of loaded assets.
func (c *Catalog) Len() int {
	return c.resources.Len()
}

// Resource returns the resource behind h converted to T.
func Resource[T any](c *Catalog, h Handle) (T, bool) {
	var zero T
	r, ok := c.Resource(h)
	if !ok {
		return zero, false
	}
	v, ok := r.(T)
	return v, ok
}
