package mirror

import (
	"strings"
)

const (
	// ReservedChar cannot appear in file names on some filesystems.
	ReservedChar = ":"
	// SubstituteChar stands in for ReservedChar on disk.
	SubstituteChar = "_"
)

// Translator maps the path of a request to the file system path to serve.
type Translator func(requestPath string) string

// TranslatePath replaces the first ReservedChar in requestPath with SubstituteChar
// and appends the result to root as is.
//
// Only the first occurrence is rewritten, so a mirror path holding several colons
// cannot be stored on disk.
func TranslatePath(root string, requestPath string) string {
	return root + strings.Replace(requestPath, ReservedChar, SubstituteChar, 1)
}

func RootTranslator(root string) Translator {
	return func(requestPath string) string {
		return TranslatePath(root, requestPath)
	}
}
