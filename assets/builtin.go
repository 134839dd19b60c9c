package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed builtin
var builtin embed.FS

// Builtin holds a small placeholder copy of every file the game loads, so
// the game runs without an asset directory.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// Dir returns the file system rooted at dir. An empty dir selects Builtin.
func Dir(dir string) fs.FS {
	if dir == "" {
		return Builtin()
	}
	return os.DirFS(dir)
}
