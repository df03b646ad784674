package render

import (
	"io/fs"
	"os"
)

// osFS reads paths straight through the operating system. Unlike os.DirFS it
// is not rooted, so callers can reference templates anywhere by relative or
// absolute path.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }
