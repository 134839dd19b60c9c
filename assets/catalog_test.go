package assets_test

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ebeclick/assets"
)

type countingLoader struct {
	calls map[string]int
	fail  map[string]error
}

func (l *countingLoader) Load(name string, kind assets.Kind) (any, error) {
	if l.calls == nil {
		l.calls = make(map[string]int)
	}
	l.calls[name]++
	if err := l.fail[name]; err != nil {
		return nil, err
	}
	return kind.String() + ":" + name, nil
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, assets.KindImage, assets.KindOf("farm.png"))
	assert.Equal(t, assets.KindImage, assets.KindOf("sprites/Chicken.PNG"))
	assert.Equal(t, assets.KindSound, assets.KindOf("dog03.wav"))
	assert.Equal(t, assets.KindUnknown, assets.KindOf("notes.txt"))
	assert.Equal(t, assets.KindUnknown, assets.KindOf("noext"))
}

func TestCatalogLoadIsIdempotent(t *testing.T) {
	loader := &countingLoader{}
	catalog := assets.NewCatalog(loader)

	first, err := catalog.Load("chicken.png")
	require.NoError(t, err)
	second, err := catalog.Load("chicken.png")
	require.NoError(t, err)
	other, err := catalog.Load("dog.png")
	require.NoError(t, err)

	assert.NotZero(t, first)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 1, loader.calls["chicken.png"])
	assert.Equal(t, 2, catalog.Len())

	assert.Equal(t, "chicken.png", catalog.Name(first))
	assert.Equal(t, assets.KindImage, catalog.Kind(first))
	assert.Equal(t, first, catalog.MustHandle("chicken.png"))

	res, ok := assets.Resource[string](catalog, first)
	require.True(t, ok)
	assert.Equal(t, "image:chicken.png", res)

	_, ok = assets.Resource[int](catalog, first)
	assert.False(t, ok)
}

func TestCatalogUnknownHandle(t *testing.T) {
	catalog := assets.NewCatalog(assets.NameLoader)

	_, ok := catalog.Resource(0)
	assert.False(t, ok)
	assert.Empty(t, catalog.Name(7))
	assert.Equal(t, assets.KindUnknown, catalog.Kind(0))

	_, ok = catalog.Handle("farm.png")
	assert.False(t, ok)
	assert.Panics(t, func() { catalog.MustHandle("farm.png") })
}

func TestCatalogLoadErrors(t *testing.T) {
	loader := &countingLoader{fail: map[string]error{"dog03.wav": io.ErrUnexpectedEOF}}
	catalog := assets.NewCatalog(loader)

	_, err := catalog.Load("dog03.wav")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assets.ErrAssetLoad))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "dog03.wav")

	var loadErr *assets.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, assets.KindSound, loadErr.Kind)

	_, err = catalog.Load("readme.md")
	assert.True(t, errors.Is(err, assets.ErrAssetLoad))
	assert.Zero(t, loader.calls["readme.md"])

	assert.Zero(t, catalog.Len())
}

func TestCatalogSeal(t *testing.T) {
	catalog := assets.NewCatalog(assets.NameLoader)

	h, err := catalog.Load("farm.png")
	require.NoError(t, err)
	catalog.Seal()
	assert.True(t, catalog.Sealed())

	again, err := catalog.Load("farm.png")
	require.NoError(t, err)
	assert.Equal(t, h, again)

	_, err = catalog.Load("dog.png")
	assert.True(t, errors.Is(err, assets.ErrSealed))
	assert.False(t, errors.Is(err, assets.ErrAssetLoad))
}

func TestFSLoader(t *testing.T) {
	files := fstest.MapFS{
		"farm.png":    {Data: []byte("png bytes")},
		"dog03.wav":   {Data: []byte("wav bytes")},
		"chicken.png": {Data: []byte("broken")},
	}

	loader := &assets.FSLoader{
		FS: files,
		Images: func(name string, r io.Reader) (any, error) {
			if name == "chicken.png" {
				return nil, errors.New("not a png")
			}
			b, err := io.ReadAll(r)
			return len(b), err
		},
	}
	catalog := assets.NewCatalog(loader)

	farm, err := catalog.Load("farm.png")
	require.NoError(t, err)
	size, ok := assets.Resource[int](catalog, farm)
	require.True(t, ok)
	assert.Equal(t, len("png bytes"), size)

	sound, err := catalog.Load("dog03.wav")
	require.NoError(t, err)
	name, _ := assets.Resource[string](catalog, sound)
	assert.Equal(t, "dog03.wav", name, "sounds without a decoder resolve to their name")

	_, err = catalog.Load("chicken.png")
	assert.True(t, errors.Is(err, assets.ErrAssetLoad))
	assert.Contains(t, err.Error(), "decode")

	_, err = catalog.Load("killChicken.wav")
	assert.True(t, errors.Is(err, assets.ErrAssetLoad))
	assert.Contains(t, err.Error(), "open")
}
