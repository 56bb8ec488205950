package mirror

import (
	"net/http"
	"os"
)

type fileSystem struct {
	translate Translator
}

// NewFileSystem returns a http.FileSystem opening every name through translate.
// http.FileServer cleans the request path before calling Open.
func NewFileSystem(translate Translator) http.FileSystem {
	return &fileSystem{translate}
}

func (f *fileSystem) Open(name string) (http.File, error) {
	file, err := os.Open(f.translate(name))
	if err != nil {
		return nil, err
	}
	return file, nil
}
