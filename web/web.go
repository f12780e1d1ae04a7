// Package web embeds the classification page and its assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var files embed.FS

// Index returns the classification page
func Index() []byte {
	b, err := files.ReadFile("index.html")
	if err != nil {
		panic(err)
	}
	return b
}

// Static returns the asset tree served under /static
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
