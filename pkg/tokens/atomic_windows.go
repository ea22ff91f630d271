//go:build windows

package tokens

import "os"

// renameio does not support Windows.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
