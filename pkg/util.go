package pkg

import (
	"fmt"
	"os"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation.
// The slice must not be modified afterwards.
func BytesToString(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// EnsureDir creates dir (and its parents) when missing. It fails when the
// path exists but is not a directory.
func EnsureDir(dir string) error {
	stat, err := os.Stat(dir)
	switch {
	case err == nil && stat.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", dir)
	case !os.IsNotExist(err):
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
