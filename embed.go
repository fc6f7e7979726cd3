// Package splitnav provides the embedded demo catalog and an overlay
// filesystem that checks local disk first, falling back to embedded files.
package splitnav

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed demo/catalog.yaml
var rawDemo embed.FS

// Demo is the embedded demo filesystem with the "demo/" prefix stripped.
var Demo = mustSub(rawDemo, "demo")

// DemoCatalog is the name of the default catalog inside Demo.
const DemoCatalog = "catalog.yaml"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := os.Open(filepath.Join(o.localDir, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}
