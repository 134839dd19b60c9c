package assets

import (
	"io"
	"io/fs"

	"github.com/pkg/errors"
)

// Decoder turns the bytes of one asset file into a host resource.
type Decoder func(name string, r io.Reader) (any, error)

// FSLoader reads assets from a file system and hands them to a decoder per kind.
// A kind without a decoder only checks that the file can be opened and
// yields the asset name as its resource.
type FSLoader struct {
	FS     fs.FS
	Images Decoder
	Sounds Decoder
}

func (l *FSLoader) Load(name string, kind Kind) (any, error) {
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	var decode Decoder
	switch kind {
	case KindImage:
		decode = l.Images
	case KindSound:
		decode = l.Sounds
	}
	if decode == nil {
		return name, nil
	}

	resource, err := decode(name, f)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return resource, nil
}

// NameLoader loads nothing and yields each asset's name as its resource.
// Scripted runs use it when no asset directory is available.
var NameLoader = LoaderFunc(func(name string, _ Kind) (any, error) {
	return name, nil
})
